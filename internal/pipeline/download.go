package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// downloadImage fetches the document's source image over plain HTTP GET into
// a temp file and returns the file's path. The caller owns cleanup.
func (p *Processor) downloadImage(ctx context.Context, imageURL string) (string, error) {
	const op = "downloadImage"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%s: invalid image URL %q: %w", op, imageURL, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: fetch failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: fetch of %q returned status %d", op, imageURL, resp.StatusCode)
	}

	file, err := os.CreateTemp("", tempPattern(sanitizeFilename(imageBasename(imageURL))))
	if err != nil {
		return "", fmt.Errorf("%s: failed to create temp file: %w", op, err)
	}
	tmpPath := file.Name()

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		removeFile(tmpPath)
		return "", fmt.Errorf("%s: write failed: %w", op, err)
	}
	if err := file.Close(); err != nil {
		removeFile(tmpPath)
		return "", fmt.Errorf("%s: close failed: %w", op, err)
	}

	return tmpPath, nil
}

// imageBasename extracts the final path element of the image URL.
func imageBasename(imageURL string) string {
	if u, err := url.Parse(imageURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(imageURL)
}

// tempPattern builds an os.CreateTemp pattern that keeps the sanitized name
// and its extension while getting a unique path per download. The extension
// matters: the OCR backends derive the upload MIME type from it.
func tempPattern(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-*" + ext
}

// sanitizeFilename keeps the name safe to place under the temp directory:
// anything outside [A-Za-z0-9._-] becomes an underscore.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "document"
	}
	return out
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
