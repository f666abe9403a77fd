package io

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"strings"
	"sync"

	"github.com/yppgo/patentgraph/pkg/loader"

	"golang.org/x/sync/singleflight"
)

func getBase64Prefix(filePath string) string {
	nameSplit := strings.Split(filePath, ".")
	if len(nameSplit) < 2 {
		return "data:application/octet-stream;base64,"
	}
	ext := nameSplit[len(nameSplit)-1]
	mimeType := mime.TypeByExtension("." + ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,", mimeType)
}

// FileLoader loads documents directly from the local filesystem with caching.
type FileLoader struct {
	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewFileLoader creates a new filesystem-based document loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{
		cache: make(map[string][]byte),
	}
}

// GetText reads the document content from the filesystem. Results are cached.
func (l *FileLoader) GetText(ctx context.Context, doc loader.Document) ([]byte, error) {
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

		result, err := os.ReadFile(doc.FilePath)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// GetBase64 reads the document and returns it encoded as base64 with the
// appropriate MIME type.
func (l *FileLoader) GetBase64(ctx context.Context, doc loader.Document) (loader.DocumentBase64, error) {
	f, err := l.GetText(ctx, doc)
	if err != nil {
		return loader.DocumentBase64{}, err
	}

	result := base64.StdEncoding.EncodeToString(f)
	fileTypePrefix := getBase64Prefix(doc.FilePath)
	return loader.DocumentBase64{
		Base64:   result,
		FileType: fileTypePrefix,
	}, nil
}
