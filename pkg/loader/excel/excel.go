package excel

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/yppgo/patentgraph/pkg/loader"
	"github.com/yppgo/patentgraph/pkg/loader/csv"

	"golang.org/x/sync/singleflight"
)

// Sheet holds the parsed content of a single worksheet.
type Sheet struct {
	Name    string
	Content []byte
}

// ExcelLoader converts Excel workbooks to CSV text via unoconv.
type ExcelLoader struct {
	loader loader.DocumentLoader

	cache   map[string][]Sheet
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewExcelLoader creates a new ExcelLoader with the given base loader.
func NewExcelLoader(base loader.DocumentLoader) *ExcelLoader {
	return &ExcelLoader{
		loader: base,
		cache:  make(map[string][]Sheet),
	}
}

// GetText retrieves the workbook and returns the parsed CSV text of all
// sheets. Multi-sheet workbooks get a "--- name ---" header per sheet.
func (l *ExcelLoader) GetText(ctx context.Context, doc loader.Document) ([]byte, error) {
	sheets, err := l.GetSheets(ctx, doc)
	if err != nil {
		return nil, err
	}

	if len(sheets) == 1 {
		return sheets[0].Content, nil
	}

	var output strings.Builder
	for i, sheet := range sheets {
		if i > 0 {
			output.WriteByte('\n')
		}
		output.WriteString("--- " + sheet.Name + " ---\n")
		output.Write(sheet.Content)
	}

	return []byte(output.String()), nil
}

// GetSheets converts the workbook and parses every sheet individually.
func (l *ExcelLoader) GetSheets(ctx context.Context, doc loader.Document) ([]Sheet, error) {
	key := loader.CacheKey(doc)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := l.loader.GetText(ctx, doc)
		if err != nil {
			return nil, err
		}

		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(doc.FilePath)), ".")
		if ext == "" {
			ext = "xlsx"
		}

		converted, err := loader.TransformExcelToCsv(content, ext)
		if err != nil {
			return nil, fmt.Errorf("converting excel to csv: %w", err)
		}

		names := make([]string, 0, len(converted))
		for name := range converted {
			names = append(names, name)
		}
		sort.Strings(names)

		sheets := make([]Sheet, 0, len(converted))
		for _, name := range names {
			parsed, err := csv.ParseCSV(converted[name])
			if err != nil {
				continue
			}
			sheets = append(sheets, Sheet{Name: name, Content: parsed})
		}

		if len(sheets) == 0 {
			return nil, fmt.Errorf("excel workbook contains no parseable sheets")
		}

		l.cacheMu.Lock()
		l.cache[key] = sheets
		l.cacheMu.Unlock()

		return sheets, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]Sheet), nil
}

// GetBase64 returns the base64 encoded workbook content.
func (l *ExcelLoader) GetBase64(ctx context.Context, doc loader.Document) (loader.DocumentBase64, error) {
	content, err := l.loader.GetText(ctx, doc)
	if err != nil {
		return loader.DocumentBase64{}, err
	}

	enc := base64.StdEncoding.EncodeToString(content)

	fileType := "data:application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;base64,"
	switch strings.ToLower(filepath.Ext(doc.FilePath)) {
	case ".xls":
		fileType = "data:application/vnd.ms-excel;base64,"
	}

	return loader.DocumentBase64{
		Base64:   enc,
		FileType: fileType,
	}, nil
}
