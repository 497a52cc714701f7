package ocr

import (
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

func TestMimeTypeFor(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/tmp/doc.pdf", "application/pdf"},
		{"/tmp/scan.tif", "image/tiff"},
		{"/tmp/scan.tiff", "image/tiff"},
		{"/tmp/doc.png", "image/png"},
		{"/tmp/photo.jpg", "image/jpeg"},
		{"/tmp/mystery", "application/pdf"},
	}
	for _, tt := range tests {
		if got := mimeTypeFor(tt.path); got != tt.want {
			t.Errorf("mimeTypeFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestJoinLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"basic", []string{"ASSIGNMENT OF", "MORTGAGE"}, "ASSIGNMENT OF MORTGAGE"},
		{"trims fragments", []string{" Loan Number \n", "12345 "}, "Loan Number 12345"},
		{"skips blanks", []string{"a", "   ", "b"}, "a b"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinLines(tt.lines); got != tt.want {
				t.Errorf("joinLines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnchorText(t *testing.T) {
	doc := &documentaipb.Document{
		Text: "ASSIGNMENT OF MORTGAGE\nLoan Number 12345\n",
	}
	layout := &documentaipb.Document_Page_Layout{
		TextAnchor: &documentaipb.Document_TextAnchor{
			TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
				{StartIndex: 0, EndIndex: 22},
			},
		},
	}

	if got := anchorText(doc, layout); got != "ASSIGNMENT OF MORTGAGE" {
		t.Errorf("anchorText = %q", got)
	}

	// Out-of-range segments are skipped rather than panicking.
	layout.TextAnchor.TextSegments[0].EndIndex = 9999
	if got := anchorText(doc, layout); got != "" {
		t.Errorf("anchorText with bad segment = %q, want empty", got)
	}

	// Anchors without segments fall back to inline content.
	layout.TextAnchor = &documentaipb.Document_TextAnchor{Content: "inline"}
	if got := anchorText(doc, layout); got != "inline" {
		t.Errorf("anchorText with inline content = %q", got)
	}

	if got := anchorText(doc, &documentaipb.Document_Page_Layout{}); got != "" {
		t.Errorf("anchorText with nil anchor = %q, want empty", got)
	}
}
