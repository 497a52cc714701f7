// Package ocr extracts per-page text from scanned instrument files using
// Google Cloud document-analysis services.
//
// Two backends are provided: Document AI (primary, mirrors a form-recognizer
// style prebuilt processor) and Cloud Vision document text detection. Both
// block until analysis completes and return one entry per page, each page's
// text formed by joining the recognized lines with a single space. Page keys
// are zero-based indices as strings.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
package ocr

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"deedflow/internal/store"
)

// Service is the OCR contract consumed by the processing pipeline.
type Service interface {
	// AnalyzeFile runs OCR over a locally-stored document file and returns
	// the ordered per-page text. An empty slice (no error) means the
	// service recognized nothing; the caller decides what that means.
	AnalyzeFile(ctx context.Context, path string) ([]store.Page, error)
}

// mimeTypeFor maps a file path to the MIME type sent to the analysis service.
func mimeTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".tif", ".tiff":
		return "image/tiff"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/pdf"
}

// joinLines collapses line fragments into the single-space-joined page text.
func joinLines(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
