// Package metrics is a registry of named computations over tabular patent
// data. Each metric takes a Frame and returns a single number; a missing
// expected column yields the default value 0.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Patent table column names, as exported by the upstream Excel tables.
const (
	ColPublicationNumber = "公开号"
	ColIPC               = "IPC分类号"
	ColCitationCountry   = "引用国别"
	ColCitedCount        = "被引用次数"
)

// Frame is a column-oriented table of patent records. All columns share the
// same row count.
type Frame struct {
	rows    int
	columns map[string][]string
}

// NewFrame builds a Frame from named columns. Columns of unequal length are
// an error.
func NewFrame(columns map[string][]string) (*Frame, error) {
	rows := -1
	for name, values := range columns {
		if rows == -1 {
			rows = len(values)
			continue
		}
		if len(values) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(values), rows)
		}
	}
	if rows == -1 {
		rows = 0
	}

	copied := make(map[string][]string, len(columns))
	for name, values := range columns {
		copied[name] = append([]string(nil), values...)
	}
	return &Frame{rows: rows, columns: copied}, nil
}

// Len returns the row count.
func (f *Frame) Len() int { return f.rows }

// Column returns the named column and whether it exists.
func (f *Frame) Column(name string) ([]string, bool) {
	values, ok := f.columns[name]
	return values, ok
}

// Numeric returns the parseable numeric values of the named column.
func (f *Frame) Numeric(name string) []float64 {
	values, ok := f.columns[name]
	if !ok {
		return nil
	}
	result := make([]float64, 0, len(values))
	for _, v := range values {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			result = append(result, n)
		}
	}
	return result
}

// Func computes one metric over a frame.
type Func func(*Frame) float64

// registry maps metric names to their implementations. The names match the
// binding functions referenced by causal graph variables.
var registry = map[string]Func{
	"calc_tech_intensity":    TechIntensity,
	"calc_tech_independence": TechIndependence,
	"calc_ipc_entropy":       IPCEntropy,
}

// Compute runs the named metric over the frame. Unknown names are an error;
// metrics themselves never fail, they default to 0.
func Compute(name string, frame *Frame) (float64, error) {
	fn, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("unknown metric %q", name)
	}
	return fn(frame), nil
}

// Names returns the registered metric names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TechIntensity is the number of patent records in the frame.
func TechIntensity(frame *Frame) float64 {
	return float64(frame.Len())
}

// TechIndependence is the mean of the citation-country code column, rounded
// to 4 decimals. A missing column or one without numeric values yields 0.
func TechIndependence(frame *Frame) float64 {
	values := frame.Numeric(ColCitationCountry)
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return round4(sum / float64(len(values)))
}

// IPCEntropy is the Shannon entropy of the IPC class distribution, rounded
// to 4 decimals. The epsilon keeps log2 defined when a probability underflows;
// a single-class column comes out as 0.
func IPCEntropy(frame *Frame) float64 {
	values, ok := frame.Column(ColIPC)
	if !ok || len(values) == 0 {
		return 0
	}

	counts := map[string]int{}
	total := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
		total++
	}
	if total == 0 {
		return 0
	}

	const epsilon = 1e-9
	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p+epsilon)
	}
	if entropy < 0 {
		entropy = 0
	}
	return round4(entropy)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
