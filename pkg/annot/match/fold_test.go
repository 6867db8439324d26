package match

import "testing"

func TestFoldTextASCII(t *testing.T) {
	folded, table := foldText("Hello World")
	if folded != "hello world" {
		t.Errorf("Expected hello world, got %q", folded)
	}
	for i := range folded {
		if table[i] != i {
			t.Fatalf("ASCII folding must map offsets identically, table[%d]=%d", i, table[i])
		}
	}
	if table[len(folded)] != len("Hello World") {
		t.Errorf("End sentinel should map to original length")
	}
}

func TestFoldTextWidthChange(t *testing.T) {
	// "İ" is 2 bytes, folds to 1-byte "i".
	text := "İst"
	folded, table := foldText(text)
	if folded != "ist" {
		t.Fatalf("Expected ist, got %q", folded)
	}
	if table[0] != 0 {
		t.Errorf("Folded start should map to original start, got %d", table[0])
	}
	if table[1] != 2 {
		t.Errorf("Second folded byte should map past the 2-byte rune, got %d", table[1])
	}
	if table[len(folded)] != len(text) {
		t.Errorf("End sentinel should be %d, got %d", len(text), table[len(folded)])
	}
}

func TestFoldStringMatchesFoldText(t *testing.T) {
	for _, s := range []string{"Mozilla", "İstanbul", "ÉLÉPHANT", "mixed Case 123"} {
		folded, _ := foldText(s)
		if folded != foldString(s) {
			t.Errorf("foldText and foldString disagree on %q: %q vs %q", s, folded, foldString(s))
		}
	}
}
