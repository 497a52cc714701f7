package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"deedflow/internal/llm"
	"deedflow/internal/schema"
	"deedflow/internal/store"
)

type stubStore struct {
	doc *store.Document
}

func (s *stubStore) FindPending(ctx context.Context) ([]store.Document, error) { return nil, nil }

func (s *stubStore) FindByID(ctx context.Context, id string) (*store.Document, error) {
	if s.doc == nil || s.doc.ID.Hex() != id {
		return nil, fmt.Errorf("FindByID: %w: %s", store.ErrNotFound, id)
	}
	return s.doc, nil
}

func (s *stubStore) Update(ctx context.Context, id string, fields map[string]any) error { return nil }

func (s *stubStore) SetStatus(ctx context.Context, id string, status store.Status) error { return nil }

type stubCompleter struct {
	response string
	err      error
	calls    [][]llm.Message
}

func (c *stubCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	c.calls = append(c.calls, messages)
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

func testDocument() *store.Document {
	return &store.Document{
		ID:     primitive.NewObjectID(),
		Status: store.StatusProcessing,
		JSONData: []store.Page{
			store.NewPage(0, "ASSIGNMENT OF MORTGAGE recorded 2019-03-01"),
			store.NewPage(1, "Loan Number 12345"),
		},
	}
}

func TestExtractUnknownID(t *testing.T) {
	e := NewExtractor(&stubStore{}, &stubCompleter{})

	_, err := e.Extract(context.Background(), primitive.NewObjectID().Hex(), schema.FinalAssignment())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExtractPromptContents(t *testing.T) {
	doc := testDocument()
	completer := &stubCompleter{response: `{"Loan Number": "12345"}`}
	e := NewExtractor(&stubStore{doc: doc}, completer)

	values, err := e.Extract(context.Background(), doc.ID.Hex(), schema.FinalAssignment())
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if values["Loan Number"] != "12345" {
		t.Errorf("Loan Number = %v, want 12345", values["Loan Number"])
	}

	if len(completer.calls) != 1 {
		t.Fatalf("completer called %d times, want 1", len(completer.calls))
	}
	messages := completer.calls[0]
	if len(messages) != 2 {
		t.Fatalf("prompt has %d messages, want system + user", len(messages))
	}
	if !strings.Contains(messages[0].Content, "extracts specific information") {
		t.Errorf("unexpected system prompt: %q", messages[0].Content)
	}

	user := messages[1].Content
	// Pages space-joined in stored order, followed by the field set.
	if !strings.Contains(user, "ASSIGNMENT OF MORTGAGE recorded 2019-03-01 Loan Number 12345") {
		t.Errorf("user prompt missing combined page content:\n%s", user)
	}
	if !strings.Contains(user, `"Record Type 'Z'"`) {
		t.Errorf("user prompt missing field names:\n%s", user)
	}
}

func TestExtractCompletionFailure(t *testing.T) {
	doc := testDocument()
	e := NewExtractor(&stubStore{doc: doc}, &stubCompleter{err: llm.ErrCompletionFailed})

	_, err := e.Extract(context.Background(), doc.ID.Hex(), schema.FinalRelease())
	if !errors.Is(err, llm.ErrCompletionFailed) {
		t.Fatalf("err = %v, want ErrCompletionFailed", err)
	}
}

func TestExtractNonJSONResponse(t *testing.T) {
	doc := testDocument()
	e := NewExtractor(&stubStore{doc: doc}, &stubCompleter{response: "I could not find any fields."})

	_, err := e.Extract(context.Background(), doc.ID.Hex(), schema.FinalAssignment())
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
}

func TestExtractArrayResponse(t *testing.T) {
	doc := testDocument()
	e := NewExtractor(&stubStore{doc: doc}, &stubCompleter{response: `["Loan Number", "12345"]`})

	_, err := e.Extract(context.Background(), doc.ID.Hex(), schema.FinalAssignment())
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
}

func TestExtractNestedValuesResponse(t *testing.T) {
	doc := testDocument()
	e := NewExtractor(&stubStore{doc: doc}, &stubCompleter{
		response: `{"Loan Number": {"value": "12345"}, "Assignor Name(s) ": ["First Bank"]}`,
	})

	_, err := e.Extract(context.Background(), doc.ID.Hex(), schema.FinalAssignment())
	if !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
}
