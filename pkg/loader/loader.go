package loader

import (
	"context"
)

type DocumentType string

const (
	DocumentTypePaper DocumentType = "paper"
	DocumentTypeTable DocumentType = "table"
	DocumentTypeWeb   DocumentType = "web"
)

type DocumentBase64 struct {
	Base64   string `json:"base64"`
	FileType string `json:"file_type"`
}

// Document represents a source the extraction pipelines can read: a paper
// text, a patent data table, or a web page. The actual content is retrieved
// via the associated DocumentLoader.
type Document struct {
	ID       string
	FilePath string
	Type     DocumentType
	Loader   DocumentLoader
}

// NewDocumentParams defines the input parameters for creating a Document.
type NewDocumentParams struct {
	ID       string
	FilePath string
	Loader   DocumentLoader
}

// NewPaperDocument creates a Document for literature text (plain text or
// extracted PDF text on disk).
func NewPaperDocument(params NewDocumentParams) Document {
	return Document{
		ID:       params.ID,
		FilePath: params.FilePath,
		Type:     DocumentTypePaper,
		Loader:   params.Loader,
	}
}

// NewTableDocument creates a Document for a tabular source (CSV or Excel
// patent tables).
func NewTableDocument(params NewDocumentParams) Document {
	return Document{
		ID:       params.ID,
		FilePath: params.FilePath,
		Type:     DocumentTypeTable,
		Loader:   params.Loader,
	}
}

// NewWebDocument creates a Document whose FilePath is a URL.
func NewWebDocument(params NewDocumentParams) Document {
	return Document{
		ID:       params.ID,
		FilePath: params.FilePath,
		Type:     DocumentTypeWeb,
		Loader:   params.Loader,
	}
}

// GetText retrieves the raw text content of the document using its Loader.
func (d *Document) GetText(ctx context.Context) ([]byte, error) {
	return d.Loader.GetText(ctx, *d)
}

// GetBase64 retrieves the base64-encoded content of the document.
func (d *Document) GetBase64(ctx context.Context) (DocumentBase64, error) {
	return d.Loader.GetBase64(ctx, *d)
}

// DocumentLoader defines the interface for loading document contents.
// Implementations may load from disk, the web, or wrap another loader with
// format conversion.
type DocumentLoader interface {
	GetText(ctx context.Context, doc Document) ([]byte, error)
	GetBase64(ctx context.Context, doc Document) (DocumentBase64, error)
}

// CacheKey generates a unique cache key for a Document based on its ID and path.
func CacheKey(doc Document) string {
	return doc.ID + ":" + doc.FilePath
}
