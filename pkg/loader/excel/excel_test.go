package excel

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/yppgo/patentgraph/pkg/loader"
)

// memLoader serves workbook bytes from memory and counts reads.
type memLoader struct {
	content []byte
	reads   int
}

func (m *memLoader) GetText(ctx context.Context, doc loader.Document) ([]byte, error) {
	m.reads++
	return m.content, nil
}

func (m *memLoader) GetBase64(ctx context.Context, doc loader.Document) (loader.DocumentBase64, error) {
	return loader.DocumentBase64{}, nil
}

func TestGetBase64FileType(t *testing.T) {
	content := []byte("workbook-bytes")

	tests := []struct {
		name     string
		filePath string
		wantType string
	}{
		{
			name:     "xlsx",
			filePath: "patents.xlsx",
			wantType: "data:application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;base64,",
		},
		{
			name:     "xls",
			filePath: "patents.xls",
			wantType: "data:application/vnd.ms-excel;base64,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewExcelLoader(&memLoader{content: content})
			doc := loader.NewTableDocument(loader.NewDocumentParams{
				ID:       tt.filePath,
				FilePath: tt.filePath,
				Loader:   l,
			})

			result, err := l.GetBase64(context.Background(), doc)
			if err != nil {
				t.Fatal(err)
			}
			if result.FileType != tt.wantType {
				t.Errorf("FileType = %q, want %q", result.FileType, tt.wantType)
			}

			decoded, err := base64.StdEncoding.DecodeString(result.Base64)
			if err != nil {
				t.Fatal(err)
			}
			if string(decoded) != string(content) {
				t.Errorf("decoded content = %q, want %q", decoded, content)
			}
		})
	}
}

func TestGetTextJoinsSheets(t *testing.T) {
	// TransformExcelToCsv needs unoconv, so drive GetText through a
	// pre-populated cache the way GetSheets would fill it.
	l := NewExcelLoader(&memLoader{})
	doc := loader.NewTableDocument(loader.NewDocumentParams{
		ID:       "multi.xlsx",
		FilePath: "multi.xlsx",
		Loader:   l,
	})

	l.cache[loader.CacheKey(doc)] = []Sheet{
		{Name: "2023", Content: []byte("公开号,IPC\nCN1,A01B\n")},
		{Name: "2024", Content: []byte("公开号,IPC\nCN2,C02F\n")},
	}

	text, err := l.GetText(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}

	got := string(text)
	if !strings.Contains(got, "--- 2023 ---") || !strings.Contains(got, "--- 2024 ---") {
		t.Errorf("multi-sheet text is missing sheet headers: %q", got)
	}
	if strings.Index(got, "--- 2023 ---") > strings.Index(got, "--- 2024 ---") {
		t.Errorf("sheets are not in sorted order: %q", got)
	}
}

func TestGetTextSingleSheet(t *testing.T) {
	l := NewExcelLoader(&memLoader{})
	doc := loader.NewTableDocument(loader.NewDocumentParams{
		ID:       "single.xlsx",
		FilePath: "single.xlsx",
		Loader:   l,
	})

	csv := []byte("公开号,IPC\nCN1,A01B\n")
	l.cache[loader.CacheKey(doc)] = []Sheet{{Name: "Sheet1", Content: csv}}

	text, err := l.GetText(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != string(csv) {
		t.Errorf("single-sheet text = %q, want the sheet content without a header", text)
	}
}

func TestGetSheetsCaches(t *testing.T) {
	base := &memLoader{}
	l := NewExcelLoader(base)
	doc := loader.NewTableDocument(loader.NewDocumentParams{
		ID:       "cached.xlsx",
		FilePath: "cached.xlsx",
		Loader:   l,
	})

	l.cache[loader.CacheKey(doc)] = []Sheet{{Name: "Sheet1", Content: []byte("a,b\n")}}

	for i := 0; i < 3; i++ {
		if _, err := l.GetSheets(context.Background(), doc); err != nil {
			t.Fatal(err)
		}
	}
	if base.reads != 0 {
		t.Errorf("base loader read %d times, want 0 (cache hit)", base.reads)
	}
}
