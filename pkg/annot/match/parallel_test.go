package match

import (
	"fmt"
	"testing"

	"github.com/cognicore/annot/pkg/annot/corpus"
)

func TestAnnotateAllPreservesOrder(t *testing.T) {
	m, err := New([]corpus.Entity{{Name: "tok", Label: "X"}}, true)
	if err != nil {
		t.Fatal(err)
	}

	var docs []corpus.Document
	for i := 0; i < 100; i++ {
		docs = append(docs, corpus.NewDocument(fmt.Sprintf("doc %d has tok in it", i)))
	}

	m.AnnotateAll(docs, 8)

	for i, d := range docs {
		if d.Text != fmt.Sprintf("doc %d has tok in it", i) {
			t.Fatalf("Document order changed at %d", i)
		}
		if len(d.Spans) != 1 {
			t.Fatalf("Document %d: expected 1 span, got %d", i, len(d.Spans))
		}
	}
}

func TestAnnotateAllMatchesSequential(t *testing.T) {
	m, err := New([]corpus.Entity{
		{Name: "alpha", Label: "A"},
		{Name: "beta", Label: "B"},
	}, false)
	if err != nil {
		t.Fatal(err)
	}

	var parallel, sequential []corpus.Document
	for i := 0; i < 50; i++ {
		text := fmt.Sprintf("Alpha %d then beta then ALPHA again", i)
		parallel = append(parallel, corpus.NewDocument(text))
		sequential = append(sequential, corpus.NewDocument(text))
	}

	m.AnnotateAll(parallel, 4)
	m.AnnotateAll(sequential, 1)

	for i := range parallel {
		if !spansEqual(parallel[i].Spans, sequential[i].Spans) {
			t.Fatalf("Document %d: parallel %v != sequential %v", i, parallel[i].Spans, sequential[i].Spans)
		}
	}
}

func TestAnnotateAllEmpty(t *testing.T) {
	m, err := New([]corpus.Entity{{Name: "x", Label: "X"}}, true)
	if err != nil {
		t.Fatal(err)
	}
	m.AnnotateAll(nil, 4)
}
