package ocr

import (
	"context"
	"fmt"
	"os"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"deedflow/internal/logger"
	"deedflow/internal/store"
)

const (
	// MaxDocumentSizeBytes is the maximum file size for synchronous
	// Document AI processing (20MB).
	MaxDocumentSizeBytes = 20 * 1024 * 1024

	// defaultProcessTimeout bounds a single ProcessDocument round trip.
	defaultProcessTimeout = 120 * time.Second
)

// DocumentAIConfig holds the processor coordinates for Document AI.
type DocumentAIConfig struct {
	ProjectID   string
	Location    string
	ProcessorID string
	Timeout     time.Duration
}

// DocumentAIService implements Service using Google Document AI.
type DocumentAIService struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
	log    zerolog.Logger
}

// NewDocumentAIService creates the service with credentials from environment.
// Expects: GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS.
func NewDocumentAIService(ctx context.Context, config DocumentAIConfig) (*DocumentAIService, error) {
	const op = "NewDocumentAIService"

	if config.ProjectID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "project ID is required")
	}
	if config.ProcessorID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "processor ID is required")
	}
	if config.Location == "" {
		config.Location = "us"
	}
	if config.Timeout == 0 {
		config.Timeout = defaultProcessTimeout
	}

	var clientOptions []option.ClientOption

	// Regional endpoint for non-us locations
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(clientOptions) == 0 {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return NewDocumentAIServiceWithClient(config, client), nil
}

// NewDocumentAIServiceWithClient creates the service with an explicit client (for testing).
func NewDocumentAIServiceWithClient(config DocumentAIConfig, client *documentai.DocumentProcessorClient) *DocumentAIService {
	return &DocumentAIService{
		client: client,
		config: config,
		log:    logger.WithComponent("document-ai"),
	}
}

// AnalyzeFile submits the file to the processor and returns per-page text.
func (s *DocumentAIService) AnalyzeFile(ctx context.Context, path string) ([]store.Page, error) {
	const op = "AnalyzeFile"

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read document file")
	}
	if len(content) > MaxDocumentSizeBytes {
		return nil, WrapOCRError(op, ErrDocumentTooLarge, fmt.Sprintf("file size: %d bytes", len(content)))
	}

	processCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: s.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeTypeFor(path),
			},
		},
	}

	resp, err := s.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Document AI call failed: %v", err))
	}

	doc := resp.GetDocument()
	if doc == nil {
		return nil, WrapOCRError(op, ErrOCRFailed, "no document in Document AI response")
	}

	pages := make([]store.Page, 0, len(doc.GetPages()))
	for i, page := range doc.GetPages() {
		lines := make([]string, 0, len(page.GetLines()))
		for _, line := range page.GetLines() {
			lines = append(lines, anchorText(doc, line.GetLayout()))
		}
		pages = append(pages, store.NewPage(i, joinLines(lines)))
	}

	s.log.Debug().
		Str("path", path).
		Int("pages", len(pages)).
		Msg("Document AI analysis completed")

	return pages, nil
}

// processorName builds the fully-qualified processor resource name.
func (s *DocumentAIService) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		s.config.ProjectID, s.config.Location, s.config.ProcessorID)
}

// anchorText resolves a layout's text anchor against the document's full text.
func anchorText(doc *documentaipb.Document, layout *documentaipb.Document_Page_Layout) string {
	anchor := layout.GetTextAnchor()
	if anchor == nil {
		return ""
	}
	segments := anchor.GetTextSegments()
	if len(segments) == 0 {
		return anchor.GetContent()
	}

	text := doc.GetText()
	var out string
	for _, seg := range segments {
		start, end := seg.GetStartIndex(), seg.GetEndIndex()
		if start < 0 || end < start || end > int64(len(text)) {
			continue
		}
		out += text[start:end]
	}
	return out
}

// Close closes the underlying Document AI client.
func (s *DocumentAIService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
