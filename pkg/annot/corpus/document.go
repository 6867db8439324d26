package corpus

import (
	"fmt"
	"hash/fnv"

	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// Span marks a half-open byte range [Start, End) in a document's text,
// attributed to an entity label.
type Span struct {
	Start uint
	End   uint
	Label string
}

// Document is a unit of text together with the spans found in it.
// The ID is derived from the text content, so two documents with the
// same text always share an ID.
type Document struct {
	ID    string
	Text  string
	Spans []Span
}

// NewDocument wraps raw text in a Document with a content-derived ID
// and no spans.
func NewDocument(text string) Document {
	return Document{ID: HashText(text), Text: text}
}

// HashText returns the fixed-width hex ID for a text, computed with
// FNV-64a over the raw bytes.
func HashText(text string) string {
	h := fnv.New64a()
	h.Write([]byte(text))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Validate checks that every span stays inside the text and is non-empty.
func (d *Document) Validate() error {
	for _, sp := range d.Spans {
		if sp.Start >= sp.End || sp.End > uint(len(d.Text)) {
			return fmt.Errorf("span (%d, %d, %s) out of range for text of %d bytes: %w",
				sp.Start, sp.End, sp.Label, len(d.Text), internalerr.ErrInvalidInput)
		}
	}
	return nil
}

// Covered returns the substring of the text a span points at.
func (d *Document) Covered(sp Span) string {
	return d.Text[sp.Start:sp.End]
}

// ClearSpans drops all spans from the document. Matching is additive, so
// callers re-annotating a document must clear first to avoid accumulating
// duplicate spans.
func (d *Document) ClearSpans() {
	d.Spans = nil
}
