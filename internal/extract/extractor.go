// Package extract asks the completion service to fill in a field set from a
// document's corrected page text, and validates what comes back. The model
// is prompted to answer with a JSON object; responses that do not parse and
// validate are reported as errors, never silently dropped.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"deedflow/internal/llm"
	"deedflow/internal/logger"
	"deedflow/internal/schema"
	"deedflow/internal/store"
)

// ErrBadResponse is returned when the completion body is not a valid field
// object (non-JSON, not an object, or failing schema validation).
var ErrBadResponse = errors.New("completion response is not a valid field object")

const extractionSystemPrompt = "You are a helpful assistant that extracts specific information from document content."

// Extractor resolves a document's corrected text and extracts field values.
type Extractor struct {
	store     store.Store
	completer llm.Completer
	log       zerolog.Logger
}

// NewExtractor creates an extractor with explicit dependencies.
func NewExtractor(st store.Store, completer llm.Completer) *Extractor {
	return &Extractor{
		store:     st,
		completer: completer,
		log:       logger.WithComponent("extract"),
	}
}

// Extract asks the completion service to fill in the field set from the
// document's corrected page text. Returns store.ErrNotFound when the ID does
// not resolve, ErrBadResponse when the reply is not a usable field object.
func (e *Extractor) Extract(ctx context.Context, id string, fields schema.FieldSet) (map[string]any, error) {
	const op = "Extract"

	doc, err := e.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	combined := combineContent(doc.JSONData)

	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal field set: %w", op, err)
	}

	messages := []llm.Message{
		llm.SystemMessage(extractionSystemPrompt),
		llm.UserMessage(fmt.Sprintf(
			"Extract the following information from this content, filling in the values for each field:\n%s\n\nFields: %s",
			combined, fieldsJSON)),
	}

	response, err := e.completer.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	values, err := ParseFieldObject([]byte(response))
	if err != nil {
		e.log.Error().
			Err(err).
			Str("document_id", id).
			Str("response", truncate(response, 512)).
			Msg("Failed to parse metadata response")
		return nil, err
	}

	e.log.Debug().
		Str("document_id", id).
		Int("fields_requested", len(fields)).
		Int("fields_returned", len(values)).
		Msg("Metadata extraction completed")

	return values, nil
}

// combineContent space-joins every page's corrected text in stored order.
func combineContent(pages []store.Page) string {
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		parts = append(parts, page.Text())
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
