// Package filter decides whether candidate strings (raw texts or entity
// names) are admitted into an annotation run. Filtering is a pure
// predicate: it never fails, it only accepts or rejects.
package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Filters holds the acceptance rules for one input. All configured rules
// must hold at once. The zero value disables every rule and leaves the
// length unbounded; Default returns the documented defaults.
type Filters struct {
	// Alphanumeric requires every character to be a letter or digit.
	Alphanumeric bool `yaml:"alphanumeric"`
	// CaseSensitive does not filter anything; it is carried here so the
	// matcher can pick its comparison mode from the same config block.
	CaseSensitive bool `yaml:"case_sensitive"`
	// MinLength and MaxLength bound the candidate length in characters,
	// not bytes.
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
	// Punctuation rejects candidates containing punctuation.
	Punctuation bool `yaml:"punctuation"`
	// Numbers rejects candidates made up exclusively of digits.
	Numbers bool `yaml:"numbers"`
	// SpecialCharacters rejects candidates containing characters outside
	// letters, digits and whitespace, except those listed in
	// AcceptSpecialCharacters.
	SpecialCharacters bool `yaml:"special_characters"`
	// AcceptSpecialCharacters lists characters exempt from the
	// SpecialCharacters rule, one exemption per character.
	AcceptSpecialCharacters string `yaml:"accept_special_characters"`
}

// Default returns the default filter config: no rules enabled and lengths
// bounded at 1024 characters. Every candidate up to that length passes.
func Default() Filters {
	return Filters{MaxLength: 1024}
}

// Accepts reports whether a candidate passes every configured rule.
func (f Filters) Accepts(candidate string) bool {
	n := utf8.RuneCountInString(candidate)
	if n < f.MinLength {
		return false
	}
	if f.MaxLength > 0 && n > f.MaxLength {
		return false
	}
	if f.Alphanumeric && !allAlphanumeric(candidate) {
		return false
	}
	if f.Numbers && n > 0 && allDigits(candidate) {
		return false
	}
	if f.Punctuation && containsPunctuation(candidate) {
		return false
	}
	if f.SpecialCharacters && containsSpecial(candidate, f.allowed()) {
		return false
	}
	return true
}

// allowed derives the exemption set from AcceptSpecialCharacters. Empty
// means no exemptions.
func (f Filters) allowed() map[rune]struct{} {
	if f.AcceptSpecialCharacters == "" {
		return nil
	}
	set := make(map[rune]struct{}, len(f.AcceptSpecialCharacters))
	for _, r := range f.AcceptSpecialCharacters {
		set[r] = struct{}{}
	}
	return set
}

func allAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// asciiPunct covers ASCII characters Unicode classifies as symbols rather
// than punctuation, such as $ and +.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func containsPunctuation(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || strings.ContainsRune(asciiPunct, r) {
			return true
		}
	}
	return false
}

func containsSpecial(s string, allowed map[rune]struct{}) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		if _, ok := allowed[r]; ok {
			continue
		}
		return true
	}
	return false
}
