// Package pipeline drives scanned instrument records through OCR, per-page
// text correction, and metadata extraction, managing each document's status
// transitions along the way.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"

	"deedflow/internal/llm"
	"deedflow/internal/logger"
	"deedflow/internal/ocr"
	"deedflow/internal/schema"
	"deedflow/internal/store"
)

// extractionAttempts is the total attempt budget per field set: the first
// call plus exactly one retry, no backoff.
const extractionAttempts = 2

// MetadataExtractor is the field-extraction contract consumed by the
// processor.
type MetadataExtractor interface {
	Extract(ctx context.Context, id string, fields schema.FieldSet) (map[string]any, error)
}

// Config holds the processor's dependencies. Store, OCR, Completer and
// Extractor are required; HTTPClient and Now default when nil.
type Config struct {
	Store      store.Store
	OCR        ocr.Service
	Completer  llm.Completer
	Extractor  MetadataExtractor
	HTTPClient *http.Client
	Now        func() time.Time
}

// Processor is the per-document state machine plus the batch driver.
type Processor struct {
	store      store.Store
	ocr        ocr.Service
	completer  llm.Completer
	extractor  MetadataExtractor
	httpClient *http.Client
	now        func() time.Time
	log        zerolog.Logger

	// guards against overlapping batch passes from the scheduler and the
	// HTTP trigger; an overlapping invocation is skipped, not queued
	mu sync.Mutex
}

// New creates a processor with explicit dependencies.
func New(cfg Config) *Processor {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Processor{
		store:      cfg.Store,
		ocr:        cfg.OCR,
		completer:  cfg.Completer,
		extractor:  cfg.Extractor,
		httpClient: cfg.HTTPClient,
		now:        cfg.Now,
		log:        logger.WithComponent("pipeline"),
	}
}

// ProcessPending queries the store for workable documents and runs each
// through the state machine, strictly sequentially, in store order. One
// document's failure never aborts the batch. If another pass is already
// running the call returns immediately without touching any document.
func (p *Processor) ProcessPending(ctx context.Context) error {
	const op = "ProcessPending"

	if !p.mu.TryLock() {
		p.log.Info().Msg("Previous batch pass still running, skipping")
		return nil
	}
	defer p.mu.Unlock()

	docs, err := p.store.FindPending(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	p.log.Info().Int("documents", len(docs)).Msg("Starting batch pass")
	for _, doc := range docs {
		p.ProcessDocument(ctx, doc)
	}
	p.log.Info().Int("documents", len(docs)).Msg("Batch pass finished")

	return nil
}

// ProcessDocument runs one document through the state machine. Any failure
// is caught here, logged, and converted into a failed status write.
func (p *Processor) ProcessDocument(ctx context.Context, doc store.Document) {
	id := doc.ID.Hex()

	if err := p.processDocument(ctx, doc); err != nil {
		p.log.Error().
			Err(err).
			Str("document_id", id).
			Msg("Processing failed")
		if err := p.store.SetStatus(ctx, id, store.StatusFailed); err != nil {
			p.log.Error().
				Err(err).
				Str("document_id", id).
				Msg("Failed to record failed status")
		}
	}
}

func (p *Processor) processDocument(ctx context.Context, doc store.Document) error {
	id := doc.ID.Hex()

	if err := p.store.SetStatus(ctx, id, store.StatusProcessing); err != nil {
		return err
	}

	// Populated ocr_output is cached input: skip download and OCR entirely.
	extracted := doc.OCROutput
	if len(extracted) == 0 {
		pages, err := p.runOCR(ctx, doc)
		if err != nil {
			return err
		}
		if len(pages) == 0 {
			return fmt.Errorf("no text extracted for document %s", id)
		}
		extracted = pages
	}

	corrected, err := p.correctPages(ctx, extracted)
	if err != nil {
		return err
	}

	if err := p.store.Update(ctx, id, map[string]any{
		"ocr_output": extracted,
		"json_data":  corrected,
	}); err != nil {
		return err
	}

	processedDate := p.now().UTC().Format(time.RFC3339)

	// Extraction reads json_data back through the store, so the update
	// above must land first.
	finalAssignment := p.extractWithRetry(ctx, id, schema.FinalAssignment(), "final_assignment")
	finalRelease := p.extractWithRetry(ctx, id, schema.FinalRelease(), "final_release")

	return p.store.Update(ctx, id, map[string]any{
		"status":           store.StatusProcessed,
		"processed_date":   processedDate,
		"final_assignment": finalAssignment,
		"final_release":    finalRelease,
	})
}

// runOCR downloads the document's image to a temp file, analyzes it, and
// always removes the file, success or failure.
func (p *Processor) runOCR(ctx context.Context, doc store.Document) ([]store.Page, error) {
	if doc.Image == "" {
		return nil, fmt.Errorf("document %s has no image reference and no cached OCR output", doc.ID.Hex())
	}

	tmpPath, err := p.downloadImage(ctx, doc.Image)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := removeFile(tmpPath); err != nil {
			p.log.Warn().
				Err(err).
				Str("path", tmpPath).
				Msg("Failed to remove temporary file")
		}
	}()

	return p.ocr.AnalyzeFile(ctx, tmpPath)
}

// correctPages runs text correction over every page, sequentially, keeping
// each page's original index key.
func (p *Processor) correctPages(ctx context.Context, pages []store.Page) ([]store.Page, error) {
	corrected := make([]store.Page, 0, len(pages))
	for _, page := range pages {
		text, err := llm.CorrectPage(ctx, p.completer, page.Text())
		if err != nil {
			return nil, err
		}
		corrected = append(corrected, store.Page{page.Index(): text})
	}
	return corrected, nil
}

// extractWithRetry attempts one field-set extraction with a single immediate
// retry. On double failure it logs and returns nil so the document record
// carries an explicit null for that field map.
func (p *Processor) extractWithRetry(ctx context.Context, id string, fields schema.FieldSet, name string) map[string]any {
	var values map[string]any
	err := retry.Do(
		func() error {
			var err error
			values, err = p.extractor.Extract(ctx, id, fields)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(extractionAttempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("document_id", id).
			Str("field_set", name).
			Msg("Metadata extraction failed after retry")
		return nil
	}
	return values
}
