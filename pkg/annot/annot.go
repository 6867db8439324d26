// Package annot turns raw text corpora and curated entity lists into
// span-annotated NER training data. The Annotator facade wires the
// filter, match, corpus and codec packages into one pipeline: filter the
// inputs, match every entity against every document, and export the
// resulting store in a standard interchange format.
package annot

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/annot/pkg/annot/codec"
	"github.com/cognicore/annot/pkg/annot/config"
	"github.com/cognicore/annot/pkg/annot/corpus"
	"github.com/cognicore/annot/pkg/annot/internalerr"
	"github.com/cognicore/annot/pkg/annot/match"
)

// Annotator is the main pipeline facade.
type Annotator struct {
	cfg      *config.Config
	store    *corpus.Store
	excludes map[string]struct{}
	workers  int
	entropy  *ulid.MonotonicEntropy
	runID    string
}

// Options configures an Annotator instance.
type Options struct {
	// Config drives filtering and export; nil uses config.Default.
	Config *config.Config
	// Workers bounds the matching concurrency; <= 0 uses one per CPU.
	Workers int
}

// New creates an Annotator with an empty store.
func New(opts Options) *Annotator {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return &Annotator{
		cfg:      cfg,
		store:    corpus.NewStore(),
		excludes: make(map[string]struct{}),
		workers:  opts.Workers,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// FromJSONL bootstraps an Annotator from a previously exported JSONL
// stream instead of running the matcher. Documents, spans and the
// entities inferred from them populate the store directly.
func FromJSONL(r io.Reader, opts Options) (*Annotator, error) {
	store, err := codec.DecodeJSONL(r)
	if err != nil {
		return nil, err
	}
	a := New(opts)
	a.store = store
	return a, nil
}

// FromSpacy bootstraps an Annotator from a spaCy tuple export.
func FromSpacy(r io.Reader, opts Options) (*Annotator, error) {
	store, err := codec.DecodeSpacy(r)
	if err != nil {
		return nil, err
	}
	a := New(opts)
	a.store = store
	return a, nil
}

// AddText wraps a raw text in a document and adds it to the store.
// When text filtering is enabled in the config, a rejected text is
// dropped and AddText reports false. Identical texts collapse into one
// document.
func (a *Annotator) AddText(text string) bool {
	if a.cfg.Texts.Input.Filter && !a.cfg.Texts.Filters.Accepts(text) {
		return false
	}
	// A fresh document has no spans, so this can only merge by content.
	if err := a.store.AddDocument(corpus.NewDocument(text)); err != nil {
		return false
	}
	return true
}

// AddDocument adds a caller-constructed document, bypassing text filters.
func (a *Annotator) AddDocument(d corpus.Document) error {
	return a.store.AddDocument(d)
}

// AddEntity adds an entity to the set to be matched. When entity
// filtering is enabled, names failing the filters are silently dropped.
// An empty name is always an error.
func (a *Annotator) AddEntity(e corpus.Entity) error {
	if e.Name == "" {
		return fmt.Errorf("entity with label %q has empty name: %w", e.Label, internalerr.ErrInvalidInput)
	}
	if a.cfg.Entities.Input.Filter && !a.cfg.Entities.Filters.Accepts(e.Name) {
		return nil
	}
	return a.store.AddEntity(e)
}

// SetExcludes replaces the exclusion list: entity names dropped from the
// set right before matching, by exact string match.
func (a *Annotator) SetExcludes(names []string) {
	a.excludes = make(map[string]struct{}, len(names))
	for _, n := range names {
		a.excludes[n] = struct{}{}
	}
}

// Store returns the annotation store.
func (a *Annotator) Store() *corpus.Store {
	return a.store
}

// RunID returns the ULID of the most recent Process call.
func (a *Annotator) RunID() string {
	return a.runID
}

// Process runs a matching pass: the current entity set, minus excludes,
// against every document in the store. Case sensitivity follows the
// texts filter config. Matching is additive; call Store().ClearSpans()
// first to redo a pass from scratch. Returns the annotated store.
func (a *Annotator) Process(ctx context.Context) (*corpus.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.runID = ulid.MustNew(ulid.Now(), a.entropy).String()

	entities := a.store.Entities()
	kept := make([]corpus.Entity, 0, len(entities))
	for _, e := range entities {
		if _, ok := a.excludes[e.Name]; ok {
			continue
		}
		kept = append(kept, e)
	}

	matcher, err := match.New(kept, a.cfg.Texts.Filters.CaseSensitive)
	if err != nil {
		return nil, err
	}
	matcher.AnnotateAll(a.store.Documents(), a.workers)
	return a.store, nil
}

// Save writes the store to the configured output path in the configured
// format and returns the path written.
func (a *Annotator) Save() (string, error) {
	if a.cfg.Annotations.Output.Path == "" {
		return "", fmt.Errorf("annotations output path not set: %w", internalerr.ErrInvalidConfig)
	}
	return codec.Save(a.cfg.Annotations.Output.Path, a.cfg.Format(), a.store)
}

// WriteJSONL exports the store as JSONL.
func (a *Annotator) WriteJSONL(w io.Writer) error { return codec.EncodeJSONL(w, a.store) }

// WriteSpacy exports the store as a spaCy tuple array.
func (a *Annotator) WriteSpacy(w io.Writer) error { return codec.EncodeSpacy(w, a.store) }

// WriteSpacyChunked exports spaCy tuples in batches of at most batchSize.
func (a *Annotator) WriteSpacyChunked(w io.Writer, batchSize int) error {
	return codec.EncodeSpacyChunked(w, a.store, batchSize)
}

// WriteCONLL exports the store as BIO-tagged tokens.
func (a *Annotator) WriteCONLL(w io.Writer) error { return codec.EncodeCONLL(w, a.store) }

// WriteCSV exports the store as flattened CSV rows.
func (a *Annotator) WriteCSV(w io.Writer) error { return codec.EncodeCSV(w, a.store) }

// WriteBrat exports the store as BRAT standoff files under dir.
func (a *Annotator) WriteBrat(dir string) error { return codec.WriteBrat(dir, a.store) }

// FindByLabel returns the documents carrying at least one span with the
// given label, ignoring case.
func (a *Annotator) FindByLabel(label string) []corpus.Document {
	return a.store.FindByLabel(label)
}

// FindByEntity returns the documents where some span covers the given
// entity name, ignoring case.
func (a *Annotator) FindByEntity(name string) []corpus.Document {
	return a.store.FindByEntity(name)
}
