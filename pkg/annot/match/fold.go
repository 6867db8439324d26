package match

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// foldString lower-cases a string rune by rune. The same rule is applied
// to entity names and document text so both sides fold identically.
func foldString(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// foldText lower-cases text rune by rune and returns the folded string
// together with a table mapping every folded byte offset back to a byte
// offset in the original text. The table carries len(folded)+1 entries so
// the exclusive end of a folded range maps onto the exclusive end of the
// original range. Spans found in the folded text translate to spans valid
// in the original, even when folding changes a rune's encoded width.
func foldText(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))
	table := make([]int, 0, len(text)+1)
	for i, r := range text {
		lr := unicode.ToLower(r)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			table = append(table, i)
		}
		b.WriteRune(lr)
	}
	table = append(table, len(text))
	return b.String(), table
}
