// Package patents maps raw patent export tables onto typed records and
// metric-ready frames.
package patents

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yppgo/patentgraph/pkg/loader"
	loadercsv "github.com/yppgo/patentgraph/pkg/loader/csv"
	"github.com/yppgo/patentgraph/pkg/metrics"
)

// PatentRecord is a single row of a patent export.
type PatentRecord struct {
	PublicationNumber string `json:"publication_number"`
	IPC               string `json:"ipc"`
	CitationCountry   string `json:"citation_country"`
	CitedCount        int    `json:"cited_count"`
}

// columnAliases maps the canonical column names onto header variants seen in
// exports from different patent databases.
var columnAliases = map[string][]string{
	metrics.ColPublicationNumber: {metrics.ColPublicationNumber, "公开(公告)号", "publication_number"},
	metrics.ColIPC:               {metrics.ColIPC, "IPC", "ipc"},
	metrics.ColCitationCountry:   {metrics.ColCitationCountry, "citation_country"},
	metrics.ColCitedCount:        {metrics.ColCitedCount, "被引次数", "cited_count"},
}

// ParseRecords parses a patent export table into typed records. The first row
// is the header; unknown columns are ignored.
func ParseRecords(rows [][]string) ([]PatentRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("patent table needs a header and at least one data row")
	}

	idx := headerIndex(rows[0])
	if _, ok := idx[metrics.ColPublicationNumber]; !ok {
		return nil, fmt.Errorf("patent table is missing required column %s", metrics.ColPublicationNumber)
	}

	records := make([]PatentRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := PatentRecord{
			PublicationNumber: cell(row, idx, metrics.ColPublicationNumber),
			IPC:               cell(row, idx, metrics.ColIPC),
			CitationCountry:   cell(row, idx, metrics.ColCitationCountry),
		}
		if rec.PublicationNumber == "" {
			continue
		}
		if raw := cell(row, idx, metrics.ColCitedCount); raw != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
				rec.CitedCount = n
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("patent table contains no usable rows")
	}

	return records, nil
}

// Frame converts records into a metric-ready frame with the canonical columns.
func Frame(records []PatentRecord) (*metrics.Frame, error) {
	columns := map[string][]string{
		metrics.ColPublicationNumber: make([]string, len(records)),
		metrics.ColIPC:               make([]string, len(records)),
		metrics.ColCitationCountry:   make([]string, len(records)),
		metrics.ColCitedCount:        make([]string, len(records)),
	}

	for i, rec := range records {
		columns[metrics.ColPublicationNumber][i] = rec.PublicationNumber
		columns[metrics.ColIPC][i] = rec.IPC
		columns[metrics.ColCitationCountry][i] = rec.CitationCountry
		columns[metrics.ColCitedCount][i] = strconv.Itoa(rec.CitedCount)
	}

	return metrics.NewFrame(columns)
}

// LoadFrame reads a patent table document and converts it into a frame in one
// step. The document loader decides how the raw bytes are obtained.
func LoadFrame(ctx context.Context, base loader.DocumentLoader, doc loader.Document) (*metrics.Frame, error) {
	content, err := base.GetText(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("loading patent table: %w", err)
	}

	rows, err := loadercsv.Records(content)
	if err != nil {
		return nil, err
	}

	records, err := ParseRecords(rows)
	if err != nil {
		return nil, err
	}

	return Frame(records)
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		for canonical, aliases := range columnAliases {
			for _, alias := range aliases {
				if strings.EqualFold(name, alias) {
					if _, taken := idx[canonical]; !taken {
						idx[canonical] = i
					}
				}
			}
		}
	}
	return idx
}

func cell(row []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
