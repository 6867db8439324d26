// Package match finds entity occurrences in document text and emits
// (start, end, label) spans with byte offsets into the original text.
//
// A Matcher compiles the entity set into a single aho-corasick automaton
// once and reuses it for every document in a batch, instead of scanning
// per entity per document.
package match

import (
	"fmt"
	"sort"

	ahocorasick "github.com/BobuSumisu/aho-corasick"

	"github.com/cognicore/annot/pkg/annot/corpus"
	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// Matcher matches a fixed entity set against document text. It is
// immutable after construction and safe for concurrent use.
type Matcher struct {
	entities      []corpus.Entity
	caseSensitive bool
	trie          *ahocorasick.Trie
	pattern       []int // entity index -> pattern index
	patLen        []int // pattern index -> pattern byte length
}

// New compiles a matcher for the given entities. Entity order is
// preserved: spans come out in entity-iteration order, then left to right
// within each entity. When caseSensitive is false, entity names and text
// are folded with the same rule before comparison.
//
// An entity with an empty name is rejected here rather than producing
// zero-width matches later.
func New(entities []corpus.Entity, caseSensitive bool) (*Matcher, error) {
	m := &Matcher{caseSensitive: caseSensitive}

	patIndex := make(map[string]int)
	var patterns []string
	for _, e := range entities {
		if e.Name == "" {
			return nil, fmt.Errorf("entity with label %q has empty name: %w", e.Label, internalerr.ErrInvalidInput)
		}
		p := e.Name
		if !caseSensitive {
			p = foldString(p)
		}
		idx, ok := patIndex[p]
		if !ok {
			idx = len(patterns)
			patIndex[p] = idx
			patterns = append(patterns, p)
		}
		m.entities = append(m.entities, e)
		m.pattern = append(m.pattern, idx)
	}

	if len(patterns) > 0 {
		m.trie = ahocorasick.NewTrieBuilder().AddStrings(patterns).Build()
		m.patLen = make([]int, len(patterns))
		for i, p := range patterns {
			m.patLen[i] = len(p)
		}
	}
	return m, nil
}

// Entities returns the entity set the matcher was built from, in
// matching order.
func (m *Matcher) Entities() []corpus.Entity {
	return m.entities
}

// Match scans text and returns the spans of every entity occurrence.
// Occurrences of the same entity never overlap: matching advances past
// each one before continuing. Spans produced by different entities are
// not reconciled against each other and may overlap or nest; downstream
// consumers must tolerate that.
func (m *Matcher) Match(text string) []corpus.Span {
	if m.trie == nil || text == "" {
		return nil
	}

	haystack := text
	var table []int
	if !m.caseSensitive {
		haystack, table = foldText(text)
	}

	hits := m.trie.MatchString(haystack)
	starts := make([][]int, len(m.patLen))
	for _, h := range hits {
		p := int(h.Pattern())
		starts[p] = append(starts[p], int(h.Pos()))
	}
	for _, s := range starts {
		sort.Ints(s)
	}

	var spans []corpus.Span
	for i, e := range m.entities {
		p := m.pattern[i]
		plen := m.patLen[p]
		next := 0
		for _, pos := range starts[p] {
			if pos < next {
				continue
			}
			end := pos + plen
			next = end
			s, t := pos, end
			if table != nil {
				s, t = table[pos], table[end]
			}
			spans = append(spans, corpus.Span{Start: uint(s), End: uint(t), Label: e.Label})
		}
	}
	return spans
}

// Annotate appends the matched spans to the document. Annotation is
// additive: re-running a pass accumulates spans unless the caller clears
// them first.
func (m *Matcher) Annotate(d *corpus.Document) {
	d.Spans = append(d.Spans, m.Match(d.Text)...)
}
