package corpus

import (
	"errors"
	"testing"

	"github.com/cognicore/annot/pkg/annot/internalerr"
)

func TestNewDocumentStableID(t *testing.T) {
	a := NewDocument("Rust is made by Mozilla")
	b := NewDocument("Rust is made by Mozilla")

	if a.ID != b.ID {
		t.Errorf("Same text should give same ID, got %s and %s", a.ID, b.ID)
	}
	if len(a.ID) != 16 {
		t.Errorf("Expected 16-char hex ID, got %q", a.ID)
	}
}

func TestNewDocumentDistinctIDs(t *testing.T) {
	a := NewDocument("Rust is made by Mozilla")
	b := NewDocument("Python was created by Guido van Rossum")

	if a.ID == b.ID {
		t.Errorf("Different texts should give different IDs, both %s", a.ID)
	}
}

func TestDocumentValidate(t *testing.T) {
	d := Document{ID: "x", Text: "hello world", Spans: []Span{{0, 5, "GREETING"}}}
	if err := d.Validate(); err != nil {
		t.Errorf("Valid spans should pass, got %v", err)
	}
}

func TestDocumentValidateOutOfRange(t *testing.T) {
	d := Document{ID: "x", Text: "hi", Spans: []Span{{0, 10, "X"}}}
	err := d.Validate()
	if err == nil {
		t.Fatal("Span past end of text should fail validation")
	}
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestDocumentValidateEmptySpan(t *testing.T) {
	d := Document{ID: "x", Text: "hi", Spans: []Span{{1, 1, "X"}}}
	if err := d.Validate(); err == nil {
		t.Error("Zero-width span should fail validation")
	}
}

func TestDocumentCovered(t *testing.T) {
	d := Document{ID: "x", Text: "Rust is made by Mozilla"}
	got := d.Covered(Span{16, 23, "ORG"})
	if got != "Mozilla" {
		t.Errorf("Expected Mozilla, got %q", got)
	}
}

func TestClearSpans(t *testing.T) {
	d := Document{ID: "x", Text: "hello", Spans: []Span{{0, 5, "X"}}}
	d.ClearSpans()
	if len(d.Spans) != 0 {
		t.Errorf("Expected no spans after clear, got %d", len(d.Spans))
	}
}
