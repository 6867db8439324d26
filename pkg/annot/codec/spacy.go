package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cognicore/annot/pkg/annot/corpus"
	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// spacyRecord serializes as the two-element array spaCy training data
// uses: ["text", {"entities": [[start, end, label], ...]}].
type spacyRecord struct {
	Text string
	Ents []spanTriple
}

type spacyEntities struct {
	Entities []spanTriple `json:"entities"`
}

func (r spacyRecord) MarshalJSON() ([]byte, error) {
	ents := r.Ents
	if ents == nil {
		ents = []spanTriple{}
	}
	return json.Marshal([]interface{}{r.Text, spacyEntities{Entities: ents}})
}

func (r *spacyRecord) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("record has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Text); err != nil {
		return fmt.Errorf("record text: %v", err)
	}
	var ents spacyEntities
	if err := json.Unmarshal(raw[1], &ents); err != nil {
		return fmt.Errorf("record entities: %v", err)
	}
	r.Ents = ents.Entities
	return nil
}

func spacyRecords(s *corpus.Store) []spacyRecord {
	docs := s.Documents()
	recs := make([]spacyRecord, len(docs))
	for i, d := range docs {
		recs[i] = spacyRecord{Text: d.Text, Ents: toTriples(d.Spans)}
	}
	return recs
}

// EncodeSpacy writes the store as a single JSON array of spaCy tuples.
func EncodeSpacy(w io.Writer, s *corpus.Store) error {
	return json.NewEncoder(w).Encode(spacyRecords(s))
}

// EncodeSpacyChunked writes the store as an array of batches, each
// holding at most batchSize tuples, for consumers that train in
// fixed-size batches. batchSize <= 0 falls back to a single batch.
func EncodeSpacyChunked(w io.Writer, s *corpus.Store, batchSize int) error {
	recs := spacyRecords(s)
	if batchSize <= 0 || batchSize >= len(recs) {
		return json.NewEncoder(w).Encode([][]spacyRecord{recs})
	}
	var batches [][]spacyRecord
	for start := 0; start < len(recs); start += batchSize {
		end := start + batchSize
		if end > len(recs) {
			end = len(recs)
		}
		batches = append(batches, recs[start:end])
	}
	return json.NewEncoder(w).Encode(batches)
}

// DecodeSpacy reads a spaCy tuple array back into a store, synthesizing
// entities from the covered substrings the same way DecodeJSONL does.
// Document IDs are recomputed from the text; the format does not carry
// them.
func DecodeSpacy(r io.Reader) (*corpus.Store, error) {
	var recs []spacyRecord
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("spacy: %v: %w", err, internalerr.ErrMalformedRecord)
	}
	store := corpus.NewStore()
	for i, rec := range recs {
		if err := addRecord(store, "", rec.Text, toSpans(rec.Ents)); err != nil {
			return nil, recordErr(Spacy, i+1, err)
		}
	}
	return store, nil
}
