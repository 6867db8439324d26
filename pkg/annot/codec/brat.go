package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/annot/pkg/annot/corpus"
)

// WriteBrat writes the store as BRAT standoff annotation into dir: for
// every document a <id>.txt file with the raw text and a <id>.ann file
// with one line per span:
//
//	T<n>\t<label> <start> <end>\t<covered text>
//
// The directory is created if missing.
func WriteBrat(dir string, s *corpus.Store) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, d := range s.Documents() {
		txtPath := filepath.Join(dir, d.ID+".txt")
		if err := os.WriteFile(txtPath, []byte(d.Text), 0o644); err != nil {
			return err
		}

		var ann strings.Builder
		for i, sp := range d.Spans {
			fmt.Fprintf(&ann, "T%d\t%s %d %d\t%s\n", i+1, sp.Label, sp.Start, sp.End, d.Covered(sp))
		}
		annPath := filepath.Join(dir, d.ID+".ann")
		if err := os.WriteFile(annPath, []byte(ann.String()), 0o644); err != nil {
			return err
		}
	}
	return nil
}
