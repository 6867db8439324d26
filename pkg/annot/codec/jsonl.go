package codec

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cognicore/annot/pkg/annot/corpus"
	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// spanTriple serializes a span as the [start, end, label] array every
// supported JSON format uses.
type spanTriple corpus.Span

func (t spanTriple) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.Start, t.End, t.Label})
}

func (t *spanTriple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("span has %d elements, want 3", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Start); err != nil {
		return fmt.Errorf("span start: %v", err)
	}
	if err := json.Unmarshal(raw[1], &t.End); err != nil {
		return fmt.Errorf("span end: %v", err)
	}
	if err := json.Unmarshal(raw[2], &t.Label); err != nil {
		return fmt.Errorf("span label: %v", err)
	}
	return nil
}

func toTriples(spans []corpus.Span) []spanTriple {
	out := make([]spanTriple, len(spans))
	for i, sp := range spans {
		out[i] = spanTriple(sp)
	}
	return out
}

func toSpans(triples []spanTriple) []corpus.Span {
	out := make([]corpus.Span, len(triples))
	for i, t := range triples {
		out[i] = corpus.Span(t)
	}
	return out
}

type jsonlRecord struct {
	ID    string       `json:"id"`
	Text  string       `json:"text"`
	Label []spanTriple `json:"label"`
}

// EncodeJSONL writes one JSON object per document:
// {"id": ..., "text": ..., "label": [[start, end, label], ...]}.
func EncodeJSONL(w io.Writer, s *corpus.Store) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, d := range s.Documents() {
		rec := jsonlRecord{ID: d.ID, Text: d.Text, Label: toTriples(d.Spans)}
		if rec.Label == nil {
			rec.Label = []spanTriple{}
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeJSONL reads JSONL records back into a store. Entities are
// synthesized from the text each span covers and deduplicated by
// (name, label). A record missing its text, or carrying a span outside
// the text bounds, aborts the load with the record number.
func DecodeJSONL(r io.Reader) (*corpus.Store, error) {
	store := corpus.NewStore()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, recordErr(Jsonl, line, err)
		}
		if err := addRecord(store, rec.ID, rec.Text, toSpans(rec.Label)); err != nil {
			return nil, recordErr(Jsonl, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return store, nil
}

// addRecord validates one decoded record and folds it into the store,
// synthesizing entities from the covered substrings.
func addRecord(store *corpus.Store, id, text string, spans []corpus.Span) error {
	if text == "" {
		return fmt.Errorf("missing text: %w", internalerr.ErrMalformedRecord)
	}
	if id == "" {
		id = corpus.HashText(text)
	}
	doc := corpus.Document{ID: id, Text: text, Spans: spans}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, internalerr.ErrMalformedRecord)
	}
	if err := store.AddDocument(doc); err != nil {
		return err
	}
	for _, sp := range spans {
		if err := store.AddEntity(corpus.Entity{Name: doc.Covered(sp), Label: sp.Label}); err != nil {
			return err
		}
	}
	return nil
}

func recordErr(f Format, n int, err error) error {
	if errors.Is(err, internalerr.ErrMalformedRecord) || errors.Is(err, internalerr.ErrDuplicate) {
		return fmt.Errorf("%s: record %d: %w", f, n, err)
	}
	return fmt.Errorf("%s: record %d: %v: %w", f, n, err, internalerr.ErrMalformedRecord)
}
