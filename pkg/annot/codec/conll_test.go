package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cognicore/annot/pkg/annot/corpus"
)

func TestEncodeCONLLTagging(t *testing.T) {
	s := corpus.NewStore()
	d := corpus.NewDocument("Python was created by Guido van Rossum")
	d.Spans = []corpus.Span{
		{Start: 0, End: 6, Label: "PL"},
		{Start: 22, End: 38, Label: "PERSON"},
	}
	if err := s.AddDocument(d); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeCONLL(&buf, s); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"Python\tB-PL",
		"was\tO",
		"created\tO",
		"by\tO",
		"Guido\tB-PERSON",
		"van\tI-PERSON",
		"Rossum\tI-PERSON",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("Expected:\n%q\ngot:\n%q", want, buf.String())
	}
}

func TestEncodeCONLLBlankLineBetweenDocuments(t *testing.T) {
	s := corpus.NewStore()
	s.AddDocument(corpus.NewDocument("one two"))
	s.AddDocument(corpus.NewDocument("three"))

	var buf bytes.Buffer
	if err := EncodeCONLL(&buf, s); err != nil {
		t.Fatal(err)
	}

	want := "one\tO\ntwo\tO\n\nthree\tO\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestEncodeCONLLPartialTokenCoverage(t *testing.T) {
	s := corpus.NewStore()
	d := corpus.NewDocument("grapheme cluster")
	// Span covering only part of the first token still claims it.
	d.Spans = []corpus.Span{{Start: 0, End: 5, Label: "X"}}
	if err := s.AddDocument(d); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeCONLL(&buf, s); err != nil {
		t.Fatal(err)
	}

	want := "grapheme\tB-X\ncluster\tO\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestTokenize(t *testing.T) {
	toks := tokenize("  a bb\tccc\n")
	if len(toks) != 3 {
		t.Fatalf("Expected 3 tokens, got %d", len(toks))
	}
	text := "  a bb\tccc\n"
	words := []string{"a", "bb", "ccc"}
	for i, tok := range toks {
		if text[tok.start:tok.end] != words[i] {
			t.Errorf("Token %d: expected %q, got %q", i, words[i], text[tok.start:tok.end])
		}
	}
}
