package corpus

import (
	"fmt"

	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// Entity is a named string paired with a category label, the unit being
// searched for in text. Identity is the (name, label) pair.
type Entity struct {
	Name  string
	Label string
}

// EntitySet is an insertion-ordered set of entities keyed by (name, label).
type EntitySet struct {
	entities []Entity
	index    map[Entity]struct{}
}

// NewEntitySet creates an empty entity set.
func NewEntitySet() *EntitySet {
	return &EntitySet{index: make(map[Entity]struct{})}
}

// Add inserts an entity if its (name, label) pair is not already present.
// Duplicates are a silent no-op. An empty name is rejected: it would match
// at every position of every text.
func (s *EntitySet) Add(e Entity) error {
	if e.Name == "" {
		return fmt.Errorf("entity with label %q has empty name: %w", e.Label, internalerr.ErrInvalidInput)
	}
	if _, ok := s.index[e]; ok {
		return nil
	}
	s.index[e] = struct{}{}
	s.entities = append(s.entities, e)
	return nil
}

// Contains reports whether the exact (name, label) pair is in the set.
func (s *EntitySet) Contains(e Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes an entity from the set, preserving the order of the rest.
func (s *EntitySet) Remove(e Entity) {
	if _, ok := s.index[e]; !ok {
		return
	}
	delete(s.index, e)
	for i, have := range s.entities {
		if have == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
}

// Entities returns the entities in insertion order. The caller must not
// modify the returned slice.
func (s *EntitySet) Entities() []Entity {
	return s.entities
}

// Len returns the number of entities in the set.
func (s *EntitySet) Len() int {
	return len(s.entities)
}
