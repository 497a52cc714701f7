package cmd

import (
	"context"
	"fmt"

	"deedflow/internal/config"
	"deedflow/internal/extract"
	"deedflow/internal/llm"
	"deedflow/internal/ocr"
	"deedflow/internal/pipeline"
	"deedflow/internal/store"
)

// buildProcessor constructs the full dependency graph for a batch processor.
// The returned store must be closed by the caller.
func buildProcessor(ctx context.Context, cfg *config.Config) (*pipeline.Processor, *store.MongoStore, error) {
	st, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.DatabaseName, cfg.CollectionName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create document store: %w", err)
	}

	var ocrService ocr.Service
	switch cfg.OCRProvider {
	case config.OCRProviderVision:
		ocrService, err = ocr.NewVisionService(ctx)
	default:
		ocrService, err = ocr.NewDocumentAIService(ctx, ocr.DocumentAIConfig{
			ProjectID:   cfg.GoogleCloudProject,
			Location:    cfg.GoogleCloudLocation,
			ProcessorID: cfg.DocumentAIProcessorID,
		})
	}
	if err != nil {
		st.Close(ctx)
		return nil, nil, fmt.Errorf("failed to create OCR service: %w", err)
	}

	completer := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	processor := pipeline.New(pipeline.Config{
		Store:     st,
		OCR:       ocrService,
		Completer: completer,
		Extractor: extract.NewExtractor(st, completer),
	})

	return processor, st, nil
}
