package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a document ID does not resolve to a record.
var ErrNotFound = errors.New("document not found")

// Document is a scanned instrument record. Records are created upstream with
// StatusNotProcessed and mutated exclusively by the processing pipeline.
type Document struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status Status             `bson:"status" json:"status"`

	// Image is the URL of the source scan. Optional when OCROutput is
	// already populated.
	Image string `bson:"image,omitempty" json:"image,omitempty"`

	// OCROutput holds the raw per-page OCR text. Once populated it is
	// treated as cached input and OCR is never re-run for this document.
	OCROutput []Page `bson:"ocr_output,omitempty" json:"ocr_output,omitempty"`

	// JSONData holds the LLM-corrected per-page text, positionally aligned
	// with OCROutput.
	JSONData []Page `bson:"json_data,omitempty" json:"json_data,omitempty"`

	// ProcessedDate is an ISO-8601 UTC timestamp set on successful completion.
	ProcessedDate string `bson:"processed_date,omitempty" json:"processed_date,omitempty"`

	// FinalAssignment and FinalRelease map field names to extracted values.
	// Explicitly null when extraction failed twice.
	FinalAssignment map[string]any `bson:"final_assignment,omitempty" json:"final_assignment,omitempty"`
	FinalRelease    map[string]any `bson:"final_release,omitempty" json:"final_release,omitempty"`
}

// Store is the document collection contract consumed by the pipeline.
type Store interface {
	// FindPending returns all documents whose status is in PendingStatuses,
	// in store order.
	FindPending(ctx context.Context) ([]Document, error)

	// FindByID resolves a document by its hex ID. Returns ErrNotFound when
	// no record matches.
	FindByID(ctx context.Context, id string) (*Document, error)

	// Update applies a partial field update to the document with the given
	// hex ID. A nil value stores an explicit null.
	Update(ctx context.Context, id string, fields map[string]any) error

	// SetStatus updates only the document's status field.
	SetStatus(ctx context.Context, id string, status Status) error
}
