package corpus

import (
	"fmt"
	"strings"

	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// Store is the in-memory annotation store: an ordered collection of
// documents plus the entity set used to annotate them. Documents keep
// their insertion order; identity is the content-derived ID.
type Store struct {
	docs     []Document
	index    map[string]int
	entities *EntitySet
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		index:    make(map[string]int),
		entities: NewEntitySet(),
	}
}

// AddDocument appends a document. If a document with the same ID is
// already present, the incoming spans are appended to the existing entry
// instead of creating a duplicate. The same ID carrying different text is
// an invariant violation and surfaces as an error.
func (s *Store) AddDocument(d Document) error {
	if d.ID == "" {
		d.ID = HashText(d.Text)
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if i, ok := s.index[d.ID]; ok {
		if s.docs[i].Text != d.Text {
			return fmt.Errorf("document %s: id collision with different text: %w", d.ID, internalerr.ErrDuplicate)
		}
		s.docs[i].Spans = append(s.docs[i].Spans, d.Spans...)
		return nil
	}
	s.index[d.ID] = len(s.docs)
	s.docs = append(s.docs, d)
	return nil
}

// AddEntity inserts an entity into the store's entity set. Duplicate
// (name, label) pairs are ignored.
func (s *Store) AddEntity(e Entity) error {
	return s.entities.Add(e)
}

// Documents returns the documents in store order. The slice is shared
// with the store; callers annotating in place operate on store state.
func (s *Store) Documents() []Document {
	return s.docs
}

// Document returns the document with the given ID.
func (s *Store) Document(id string) (Document, bool) {
	if i, ok := s.index[id]; ok {
		return s.docs[i], true
	}
	return Document{}, false
}

// Entities returns the entity set's contents in insertion order.
func (s *Store) Entities() []Entity {
	return s.entities.Entities()
}

// EntitySet returns the store's entity set.
func (s *Store) EntitySet() *EntitySet {
	return s.entities
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	return len(s.docs)
}

// FindByLabel returns every document with at least one span whose label
// matches, ignoring case. Store order is preserved.
func (s *Store) FindByLabel(label string) []Document {
	var out []Document
	for _, d := range s.docs {
		for _, sp := range d.Spans {
			if strings.EqualFold(sp.Label, label) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// FindByEntity returns every document where some span covers the given
// entity name, ignoring case. The comparison runs against the covered
// text rather than the entity table, so it also works for stores decoded
// from formats that carry no separate entity list.
func (s *Store) FindByEntity(name string) []Document {
	var out []Document
	for _, d := range s.docs {
		for _, sp := range d.Spans {
			if strings.EqualFold(d.Covered(sp), name) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// LabelCounts returns the total span count per label across all
// documents. The result is recomputed on every call; spans may have been
// appended since the last one.
func (s *Store) LabelCounts() map[string]int {
	counts := make(map[string]int)
	for _, d := range s.docs {
		for _, sp := range d.Spans {
			counts[sp.Label]++
		}
	}
	return counts
}

// ClearSpans drops the spans of every document. This is the deliberate
// reset before re-running a matching pass; matching itself only ever
// appends.
func (s *Store) ClearSpans() {
	for i := range s.docs {
		s.docs[i].ClearSpans()
	}
}

// Stats summarizes the store for reporting.
type Stats struct {
	Documents int
	Entities  int
	Spans     int
	Labels    map[string]int
}

// Stats computes current store statistics.
func (s *Store) Stats() Stats {
	labels := s.LabelCounts()
	spans := 0
	for _, n := range labels {
		spans += n
	}
	return Stats{
		Documents: len(s.docs),
		Entities:  s.entities.Len(),
		Spans:     spans,
		Labels:    labels,
	}
}
