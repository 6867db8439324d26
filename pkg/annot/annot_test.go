package annot

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cognicore/annot/pkg/annot/config"
	"github.com/cognicore/annot/pkg/annot/corpus"
	"github.com/cognicore/annot/pkg/annot/internalerr"
)

func TestProcessEndToEnd(t *testing.T) {
	a := New(Options{})
	a.AddText("Rust is made by Mozilla")
	a.AddText("Python was created by Guido van Rossum")

	for _, e := range []corpus.Entity{
		{Name: "Mozilla", Label: "ORG"},
		{Name: "Rust", Label: "PL"},
		{Name: "Python", Label: "PL"},
		{Name: "Guido van Rossum", Label: "PERSON"},
	} {
		if err := a.AddEntity(e); err != nil {
			t.Fatal(err)
		}
	}

	store, err := a.Process(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	counts := store.LabelCounts()
	if counts["ORG"] != 1 || counts["PL"] != 2 || counts["PERSON"] != 1 {
		t.Errorf("Unexpected label counts: %v", counts)
	}
	if a.RunID() == "" {
		t.Error("Process should mint a run ID")
	}
}

func TestProcessAppliesExcludes(t *testing.T) {
	a := New(Options{})
	a.AddText("Rust is made by Mozilla")
	a.AddEntity(corpus.Entity{Name: "Mozilla", Label: "ORG"})
	a.AddEntity(corpus.Entity{Name: "Rust", Label: "PL"})
	a.SetExcludes([]string{"Mozilla"})

	store, err := a.Process(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	counts := store.LabelCounts()
	if counts["ORG"] != 0 {
		t.Errorf("Excluded entity must not match, got %v", counts)
	}
	if counts["PL"] != 1 {
		t.Errorf("Remaining entities still match, got %v", counts)
	}
}

func TestProcessCaseSensitivity(t *testing.T) {
	cfg := config.Default()
	cfg.Texts.Filters.CaseSensitive = true

	a := New(Options{Config: cfg})
	a.AddText("rust is made by Mozilla")
	a.AddEntity(corpus.Entity{Name: "Mozilla", Label: "ORG"})
	a.AddEntity(corpus.Entity{Name: "Rust", Label: "PL"})

	store, err := a.Process(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	spans := store.Documents()[0].Spans
	if len(spans) != 1 || spans[0] != (corpus.Span{Start: 16, End: 23, Label: "ORG"}) {
		t.Errorf("Case-sensitive matching should find only Mozilla, got %v", spans)
	}
}

func TestProcessIsAdditive(t *testing.T) {
	a := New(Options{})
	a.AddText("go go go")
	a.AddEntity(corpus.Entity{Name: "go", Label: "PL"})

	if _, err := a.Process(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Process(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := a.Store().LabelCounts()["PL"]; got != 6 {
		t.Errorf("Two passes without clearing should accumulate, got %d", got)
	}

	a.Store().ClearSpans()
	if _, err := a.Process(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := a.Store().LabelCounts()["PL"]; got != 3 {
		t.Errorf("Expected 3 spans after clear and re-process, got %d", got)
	}
}

func TestAddTextFiltering(t *testing.T) {
	cfg := config.Default()
	cfg.Texts.Input.Filter = true
	cfg.Texts.Filters.MinLength = 10

	a := New(Options{Config: cfg})
	if a.AddText("short") {
		t.Error("Text failing the filter should be dropped")
	}
	if !a.AddText("long enough to pass") {
		t.Error("Text passing the filter should be kept")
	}
	if a.Store().Len() != 1 {
		t.Errorf("Expected 1 document, got %d", a.Store().Len())
	}
}

func TestAddTextDeduplicatesByContent(t *testing.T) {
	a := New(Options{})
	a.AddText("same text")
	a.AddText("same text")
	if a.Store().Len() != 1 {
		t.Errorf("Identical texts should collapse, got %d documents", a.Store().Len())
	}
}

func TestAddEntityFiltering(t *testing.T) {
	cfg := config.Default()
	cfg.Entities.Input.Filter = true
	cfg.Entities.Filters.MinLength = 3

	a := New(Options{Config: cfg})
	if err := a.AddEntity(corpus.Entity{Name: "ab", Label: "X"}); err != nil {
		t.Fatalf("Filtered entity is silently dropped, got %v", err)
	}
	if err := a.AddEntity(corpus.Entity{Name: "abc", Label: "X"}); err != nil {
		t.Fatal(err)
	}
	if got := len(a.Store().Entities()); got != 1 {
		t.Errorf("Expected 1 entity, got %d", got)
	}
}

func TestAddEntityEmptyName(t *testing.T) {
	a := New(Options{})
	err := a.AddEntity(corpus.Entity{Name: "", Label: "X"})
	if err == nil {
		t.Fatal("Empty entity name should be an error")
	}
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestFromJSONLBootstrap(t *testing.T) {
	input := `{"text":"Rust is made by Mozilla","label":[[16,23,"ORG"]]}` + "\n"
	a, err := FromJSONL(strings.NewReader(input), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if a.Store().Len() != 1 {
		t.Fatalf("Expected 1 document, got %d", a.Store().Len())
	}
	docs := a.FindByEntity("mozilla")
	if len(docs) != 1 {
		t.Errorf("Expected to find the bootstrapped document, got %d", len(docs))
	}
	if len(a.FindByLabel("ORG")) != 1 {
		t.Errorf("Expected to find by label ORG")
	}
}

func TestRoundTripThroughFacade(t *testing.T) {
	a := New(Options{})
	a.AddText("Rust is made by Mozilla")
	a.AddEntity(corpus.Entity{Name: "Mozilla", Label: "ORG"})
	if _, err := a.Process(context.Background()); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := a.WriteJSONL(&buf); err != nil {
		t.Fatal(err)
	}

	b, err := FromJSONL(&buf, Options{})
	if err != nil {
		t.Fatal(err)
	}
	orig := a.Store().Documents()[0]
	got := b.Store().Documents()[0]
	if got.ID != orig.ID || got.Text != orig.Text || len(got.Spans) != len(orig.Spans) {
		t.Errorf("Round trip changed the document: %+v vs %+v", got, orig)
	}
}

func TestSaveRequiresOutputPath(t *testing.T) {
	a := New(Options{})
	_, err := a.Save()
	if err == nil {
		t.Fatal("Save without output path should fail")
	}
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
