// Package codec encodes annotation stores to the interchange formats used
// by NER training tools (JSONL, spaCy tuples, CoNLL BIO, BRAT standoff,
// CSV) and decodes JSONL and spaCy back into stores.
//
// Decoding is strict: the first malformed record aborts the whole load so
// a bad input can never produce a store with silent gaps.
package codec

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/annot/pkg/annot/corpus"
	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// Format selects an annotation interchange format.
type Format int

const (
	Jsonl Format = iota
	Spacy
	Conll
	Brat
	CSV
)

// ParseFormat maps a config string onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jsonl":
		return Jsonl, nil
	case "spacy":
		return Spacy, nil
	case "conll":
		return Conll, nil
	case "brat":
		return Brat, nil
	case "csv":
		return CSV, nil
	default:
		return Jsonl, fmt.Errorf("unknown format %q: %w", s, internalerr.ErrInvalidConfig)
	}
}

func (f Format) String() string {
	switch f {
	case Jsonl:
		return "jsonl"
	case Spacy:
		return "spacy"
	case Conll:
		return "conll"
	case Brat:
		return "brat"
	case CSV:
		return "csv"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Ext returns the file extension the format is written with. Brat has
// none; it writes a directory of .txt/.ann pairs.
func (f Format) Ext() string {
	switch f {
	case Jsonl:
		return ".jsonl"
	case Spacy:
		return ".json"
	case Conll:
		return ".txt"
	case CSV:
		return ".csv"
	default:
		return ""
	}
}

// Encode writes the store to w in this format. Brat is not stream
// encodable (it produces one file pair per document); use Save or
// WriteBrat for it.
func (f Format) Encode(w io.Writer, s *corpus.Store) error {
	switch f {
	case Jsonl:
		return EncodeJSONL(w, s)
	case Spacy:
		return EncodeSpacy(w, s)
	case Conll:
		return EncodeCONLL(w, s)
	case CSV:
		return EncodeCSV(w, s)
	default:
		return fmt.Errorf("format %s cannot encode to a single stream: %w", f, internalerr.ErrInvalidInput)
	}
}

// Save writes the store to path in the given format, swapping the path's
// extension for the format's own. For Brat the extension-stripped path is
// used as the output directory. Returns the path actually written.
func Save(path string, f Format, s *corpus.Store) (string, error) {
	base := strings.TrimSuffix(path, trailingExt(path))
	if f == Brat {
		if err := WriteBrat(base, s); err != nil {
			return "", err
		}
		return base, nil
	}

	out := base + f.Ext()
	file, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if err := f.Encode(file, s); err != nil {
		return "", err
	}
	return out, nil
}

func trailingExt(path string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		return path[i:]
	}
	return ""
}
