package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"deedflow/internal/logger"
	"deedflow/internal/store"
)

// VisionService implements Service using Cloud Vision document text detection.
// Vision's file annotation path accepts PDF and TIFF input only; it is kept
// as an alternate backend for deployments without a Document AI processor.
type VisionService struct {
	client *vision.ImageAnnotatorClient
	log    zerolog.Logger
}

// NewVisionService creates the service with credentials from environment.
// It expects either GOOGLE_APPLICATION_CREDENTIALS path or GOOGLE_CREDENTIALS JSON in env.
func NewVisionService(ctx context.Context) (*VisionService, error) {
	const op = "NewVisionService"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return NewVisionServiceWithClient(client), nil
}

// NewVisionServiceWithClient creates the service with an explicit client (for testing).
func NewVisionServiceWithClient(client *vision.ImageAnnotatorClient) *VisionService {
	return &VisionService{
		client: client,
		log:    logger.WithComponent("vision-ocr"),
	}
}

// AnalyzeFile runs document text detection and returns per-page text.
func (s *VisionService) AnalyzeFile(ctx context.Context, path string) ([]store.Page, error) {
	const op = "AnalyzeFile"

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read document file")
	}
	if len(content) > MaxDocumentSizeBytes {
		return nil, WrapOCRError(op, ErrDocumentTooLarge, fmt.Sprintf("file size: %d bytes", len(content)))
	}

	req := &visionpb.BatchAnnotateFilesRequest{
		Requests: []*visionpb.AnnotateFileRequest{
			{
				InputConfig: &visionpb.InputConfig{
					Content:  content,
					MimeType: mimeTypeFor(path),
				},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := s.client.BatchAnnotateFiles(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrOCRFailed, "no response from Vision API")
	}

	fileResp := resp.Responses[0]
	if fileResp.Error != nil {
		return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", fileResp.Error.Message))
	}

	pages := make([]store.Page, 0, len(fileResp.Responses))
	for i, pageResp := range fileResp.Responses {
		if pageResp.Error != nil {
			return nil, WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("error processing page %d: %s", i+1, pageResp.Error.Message))
		}
		text := ""
		if pageResp.FullTextAnnotation != nil {
			// Vision separates lines with newlines; collapse to single spaces.
			text = strings.Join(strings.Fields(pageResp.FullTextAnnotation.GetText()), " ")
		}
		pages = append(pages, store.NewPage(i, text))
	}

	s.log.Debug().
		Str("path", path).
		Int("pages", len(pages)).
		Msg("Vision analysis completed")

	return pages, nil
}

// Close closes the underlying Vision client.
func (s *VisionService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
