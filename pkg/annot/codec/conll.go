package codec

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/annot/pkg/annot/corpus"
)

// tokenRange is a whitespace-delimited token's byte range in the text.
type tokenRange struct {
	start int
	end   int
}

func tokenize(text string) []tokenRange {
	var toks []tokenRange
	start := -1
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = append(toks, tokenRange{start, i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
		i += n
	}
	if start >= 0 {
		toks = append(toks, tokenRange{start, len(text)})
	}
	return toks
}

// EncodeCONLL writes BIO-tagged tokens, one "token<TAB>tag" pair per
// line with a blank line between documents. Tokens split on whitespace; a
// span's first covered token is tagged B-<label>, later covered tokens
// I-<label>, everything else O. When spans overlap on a token, the span
// appearing first in the document keeps it.
func EncodeCONLL(w io.Writer, s *corpus.Store) error {
	bw := bufio.NewWriter(w)
	for i, d := range s.Documents() {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		toks := tokenize(d.Text)
		tags := make([]string, len(toks))
		for t := range tags {
			tags[t] = "O"
		}
		for _, sp := range d.Spans {
			first := true
			for t, tok := range toks {
				if tok.start >= int(sp.End) || tok.end <= int(sp.Start) {
					continue
				}
				if tags[t] == "O" {
					if first {
						tags[t] = "B-" + sp.Label
					} else {
						tags[t] = "I-" + sp.Label
					}
				}
				first = false
			}
		}
		for t, tok := range toks {
			if _, err := fmt.Fprintf(bw, "%s\t%s\n", d.Text[tok.start:tok.end], tags[t]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
