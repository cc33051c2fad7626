// Package dictionary provides the two static word sets every text
// heuristic relies on: common French nouns and French first names.
// Both sets are loaded once and never mutated, so a Dict is safe for
// unrestricted concurrent reads.
package dictionary

import (
	_ "embed"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed data/mots.txt
var commonWordData string

//go:embed data/prenoms.txt
var firstNameData string

// stripAccents decomposes to NFD, drops combining marks, and recomposes.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a word to the canonical lookup form: accents stripped,
// lowercased. Every lookup and every stored entry goes through this, so
// case or accent variation can never cause a false negative.
func Normalize(word string) string {
	out, _, err := transform.String(stripAccents, word)
	if err != nil {
		out = word
	}
	return strings.ToLower(out)
}

// Dict holds the two disjoint read-only sets.
type Dict struct {
	words map[string]struct{}
	names map[string]struct{}
}

// New builds a dictionary from explicit word lists. Tests use this to
// substitute small fixture dictionaries for the embedded data.
func New(words, firstNames []string) *Dict {
	return &Dict{
		words: buildSet(words),
		names: buildSet(firstNames),
	}
}

// Load builds the dictionary from the embedded word lists.
func Load() *Dict {
	return New(splitLines(commonWordData), splitLines(firstNameData))
}

// IsKnownWord reports whether word is a known common word. Unknown words
// are a normal false, never an error.
func (d *Dict) IsKnownWord(word string) bool {
	_, ok := d.words[Normalize(word)]
	return ok
}

// IsKnownFirstName reports whether word is a known first name.
func (d *Dict) IsKnownFirstName(word string) bool {
	_, ok := d.names[Normalize(word)]
	return ok
}

func buildSet(entries []string) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		set[Normalize(entry)] = struct{}{}
	}
	return set
}

func splitLines(data string) []string {
	return strings.Split(data, "\n")
}
