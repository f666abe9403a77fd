// Package downloader fetches paper PDFs from a list of mirror sites,
// trying each mirror in order until one yields a PDF.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/yppgo/patentgraph/pkg/logger"
)

// DefaultMirrors are the mirror roots tried in order when none are
// configured.
var DefaultMirrors = []string{
	"https://sci-hub.wf",
	"https://sci-hub.st",
	"https://sci-hub.se",
	"https://sci-hub.ru",
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36"

// pdfLinkPatterns find the embedded PDF URL in a mirror's landing page.
var pdfLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<iframe[^>]+src="([^"]+\.pdf[^"]*)"`),
	regexp.MustCompile(`(?i)<embed[^>]+src="([^"]+\.pdf[^"]*)"`),
	regexp.MustCompile(`(?i)href="([^"]+\.pdf[^"]*)"`),
	regexp.MustCompile(`(?i)location\.href\s*=\s*["']([^"']+\.pdf[^"']*)["']`),
}

// Downloader resolves DOIs to PDF files via mirror sites.
//
// A Downloader should be created using NewDownloader.
type Downloader struct {
	mirrors   []string
	client    *http.Client
	userAgent string
}

// NewDownloaderParams configures a Downloader. Zero values fall back to
// DefaultMirrors, a 30 second timeout and a browser user agent.
type NewDownloaderParams struct {
	Mirrors   []string
	Timeout   time.Duration
	UserAgent string
}

func NewDownloader(params NewDownloaderParams) *Downloader {
	mirrors := params.Mirrors
	if len(mirrors) == 0 {
		mirrors = DefaultMirrors
	}
	timeout := params.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Downloader{
		mirrors:   mirrors,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Download fetches the PDF for a DOI into destDir and returns the written
// file path. Mirrors are tried strictly in order; any failure (timeout, bad
// status, no PDF link on the page) moves on to the next mirror. The error
// reports the DOI only after every mirror has failed.
func (d *Downloader) Download(ctx context.Context, doi string, destDir string) (string, error) {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return "", fmt.Errorf("empty doi")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	for _, mirror := range d.mirrors {
		path, err := d.tryMirror(ctx, mirror, doi, destDir)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logger.Warn("[Downloader] Mirror failed", "mirror", mirror, "doi", doi, "err", err)
			continue
		}
		logger.Info("[Downloader] PDF downloaded", "mirror", mirror, "doi", doi, "path", path)
		return path, nil
	}

	return "", fmt.Errorf("all %d mirrors failed for doi %s", len(d.mirrors), doi)
}

func (d *Downloader) tryMirror(ctx context.Context, mirror, doi, destDir string) (string, error) {
	pageURL := mirror + "/" + url.QueryEscape(doi)

	body, contentType, err := d.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	// some mirrors serve the PDF directly
	if isPDF(contentType, body) {
		return d.write(doi, destDir, body)
	}

	pdfURL := findPDFLink(string(body))
	if pdfURL == "" {
		return "", fmt.Errorf("no pdf link on landing page")
	}
	pdfURL, err = resolveLink(pageURL, pdfURL)
	if err != nil {
		return "", err
	}

	pdfBody, pdfType, err := d.fetch(ctx, pdfURL)
	if err != nil {
		return "", err
	}
	if !isPDF(pdfType, pdfBody) {
		return "", fmt.Errorf("linked resource is not a pdf (%s)", pdfType)
	}

	return d.write(doi, destDir, pdfBody)
}

func (d *Downloader) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (d *Downloader) write(doi, destDir string, body []byte) (string, error) {
	filename := strings.ReplaceAll(doi, "/", "_") + ".pdf"
	path := filepath.Join(destDir, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}
	return path, nil
}

func isPDF(contentType string, body []byte) bool {
	if strings.HasPrefix(contentType, "application/pdf") {
		return true
	}
	return len(body) >= 4 && string(body[:4]) == "%PDF"
}

func findPDFLink(page string) string {
	for _, pattern := range pdfLinkPatterns {
		if match := pattern.FindStringSubmatch(page); match != nil {
			return match[1]
		}
	}
	return ""
}

// resolveLink handles the scheme-relative and host-relative URLs mirrors
// embed in their landing pages.
func resolveLink(pageURL, link string) (string, error) {
	if strings.HasPrefix(link, "//") {
		return "https:" + link, nil
	}
	if strings.HasPrefix(link, "/") {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return "", err
		}
		return parsed.Scheme + "://" + parsed.Host + link, nil
	}
	return link, nil
}
