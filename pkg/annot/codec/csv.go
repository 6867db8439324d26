package codec

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cognicore/annot/pkg/annot/corpus"
)

// EncodeCSV writes flattened rows id,text,start,end,label with one row
// per span. A document without spans still emits one row, with the span
// fields left empty, so every document is represented.
func EncodeCSV(w io.Writer, s *corpus.Store) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "start", "end", "label"}); err != nil {
		return err
	}
	for _, d := range s.Documents() {
		if len(d.Spans) == 0 {
			if err := cw.Write([]string{d.ID, d.Text, "", "", ""}); err != nil {
				return err
			}
			continue
		}
		for _, sp := range d.Spans {
			row := []string{
				d.ID,
				d.Text,
				strconv.FormatUint(uint64(sp.Start), 10),
				strconv.FormatUint(uint64(sp.End), 10),
				sp.Label,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
