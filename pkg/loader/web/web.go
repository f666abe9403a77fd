package web

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/yppgo/patentgraph/pkg/loader"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/sync/singleflight"
)

// WebLoader loads content from web URLs and extracts readable text. For HTML
// pages it uses readability to extract the main article content; this is how
// online literature gets into the extraction pipeline.
type WebLoader struct {
	fallback loader.DocumentLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewWebLoader creates a new web loader without a fallback loader.
func NewWebLoader() *WebLoader {
	return &WebLoader{
		cache: make(map[string][]byte),
	}
}

// NewWebLoaderWithFallback creates a web loader with a fallback for non-HTML
// content.
func NewWebLoaderWithFallback(fallback loader.DocumentLoader) *WebLoader {
	return &WebLoader{
		fallback: fallback,
		cache:    make(map[string][]byte),
	}
}

// GetText fetches a URL and extracts readable text content.
func (l *WebLoader) GetText(ctx context.Context, doc loader.Document) ([]byte, error) {
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

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.FilePath, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		contentType := resp.Header.Get("Content-Type")
		if strings.Contains(contentType, "text/html") {
			pageURL, err := url.Parse(doc.FilePath)
			if err != nil {
				return nil, fmt.Errorf("failed to parse url: %w", err)
			}
			article, err := readability.FromReader(resp.Body, pageURL)
			if err != nil {
				return nil, fmt.Errorf("failed to parse html: %w", err)
			}
			var builder strings.Builder
			if err := article.RenderText(&builder); err != nil {
				return nil, fmt.Errorf("failed to render article text: %w", err)
			}

			text := []byte(builder.String())

			l.cacheMu.Lock()
			l.cache[key] = text
			l.cacheMu.Unlock()

			return text, nil
		}

		if l.fallback != nil {
			return l.fallback.GetText(ctx, doc)
		}

		result, err := io.ReadAll(resp.Body)
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

// GetBase64 fetches a URL and returns its content encoded as base64.
func (l *WebLoader) GetBase64(ctx context.Context, doc loader.Document) (loader.DocumentBase64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.FilePath, nil)
	if err != nil {
		return loader.DocumentBase64{}, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return loader.DocumentBase64{}, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return loader.DocumentBase64{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		u, _ := url.Parse(doc.FilePath)
		ext := path.Ext(u.Path)
		contentType = mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	return loader.DocumentBase64{
		Base64:   base64.StdEncoding.EncodeToString(data),
		FileType: fmt.Sprintf("data:%s;base64,", contentType),
	}, nil
}
