package unsplash

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/alexisbeaulieu97/mosaic/internal/gallery"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// DownloadPath is where record is saved inside dir.
func DownloadPath(dir string, record gallery.ImageRecord) string {
	name := unsafeName.ReplaceAllString(record.ID, "_")
	if name == "" {
		name = "image"
	}
	return filepath.Join(dir, name+".jpg")
}

// downloadClient derives the client used for image bodies. It has no overall
// timeout; only the wait for response headers is bounded and the caller's
// context governs the body.
func downloadClient(search *http.Client, headerTimeout time.Duration) *http.Client {
	dl := *search
	dl.Timeout = 0
	if dl.Transport == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.ResponseHeaderTimeout = headerTimeout
		dl.Transport = transport
	}
	return &dl
}

// Download saves the image of record into dir and returns the file path.
// The file appears only once fully written.
func (c *Client) Download(ctx context.Context, record gallery.ImageRecord, dir string) (string, error) {
	if record.URL == "" {
		return "", fmt.Errorf("download %q: empty image url", record.ID)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, record.URL, nil)
	if err != nil {
		return "", fmt.Errorf("download %q: %w", record.ID, err)
	}
	resp, err := c.downloads.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %q: %w", record.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download %q: unexpected status %d", record.ID, resp.StatusCode)
	}

	target := DownloadPath(dir, record)
	tmp, err := os.CreateTemp(dir, ".mosaic-*.part")
	if err != nil {
		return "", fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("download %q: %w", record.ID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename temporary file: %w", err)
	}

	c.log.WithFields(map[string]any{"id": record.ID, "path": target}).Info("image downloaded")
	return target, nil
}
