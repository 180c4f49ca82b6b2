package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSize is the shingle length used when a Config leaves Size unset.
// Two-character shingles keep the index small while still catching
// single-character typos in names and addresses.
const DefaultSize = 2

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Config fixes how one field's text is tokenized. The same Config must be
// applied at index-build time and at query time; mixing sizes or folding
// settings between the two silently degrades scoring.
type Config struct {
	Size           int  `json:"size" yaml:"size"`
	FoldDiacritics bool `json:"fold_diacritics" yaml:"fold_diacritics"`
}

func (c Config) size() int {
	if c.Size < 1 {
		return DefaultSize
	}
	return c.Size
}

// Tokenize applies the configured normalization and shingles the text.
func (c Config) Tokenize(text string) []string {
	if c.FoldDiacritics {
		text = Fold(text)
	}
	return Shingles(text, c.size())
}

// Shingles lowercases text and returns every contiguous run of size runes,
// in order. Text shorter than size yields nothing. The function is pure;
// identical input always produces the identical sequence.
func Shingles(text string, size int) []string {
	if size < 1 {
		return nil
	}
	rs := []rune(strings.ToLower(text))
	if len(rs) < size {
		return nil
	}
	out := make([]string, 0, len(rs)-size+1)
	for i := 0; i+size <= len(rs); i++ {
		out = append(out, string(rs[i:i+size]))
	}
	return out
}

// Fold strips combining diacritical marks so "José" and "Jose" shingle
// identically. Input that fails to transform is returned untouched.
func Fold(text string) string {
	folded, _, err := transform.String(folder, text)
	if err != nil {
		return text
	}
	return folded
}
