package writer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Downloader stores the resource at url in the file dest.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

type HTTPDownloader struct {
	httpClient *http.Client
	userAgent  string
}

func NewHTTPDownloader(httpClient *http.Client, userAgent string) *HTTPDownloader {
	return &HTTPDownloader{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

func (d *HTTPDownloader) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return f.Close()
}
