package textproc

import (
	"strings"
	"unicode"

	"github.com/shelfscan/shelfscan/internal/dictionary"
)

// Tokens shorter than this are never worth a segmentation search.
const minSplitLength = 4

// Tokens longer than this are suspicious even without a case anomaly;
// glued spine text routinely exceeds it.
const longTokenLength = 10

// Composer repairs words that OCR rendered without internal spaces,
// using dictionary-guided segmentation.
type Composer struct {
	dict      *dictionary.Dict
	overrides map[string]string
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithOverrides installs a table of known glued forms mapped to their
// correct spelling, keyed by the normalized glued form. Checked before
// any segmentation search.
func WithOverrides(table map[string]string) ComposerOption {
	return func(c *Composer) {
		for glued, fixed := range table {
			c.overrides[dictionary.Normalize(glued)] = fixed
		}
	}
}

// NewComposer builds a composer over the given dictionary.
func NewComposer(dict *dictionary.Dict, opts ...ComposerOption) *Composer {
	c := &Composer{
		dict:      dict,
		overrides: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsWellFormatted reports whether at least half of the whitespace-
// delimited tokens follow the "capital letter then lowercase letters"
// pattern. Well-formatted text is left alone entirely.
func IsWellFormatted(text string) bool {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return false
	}
	proper := 0
	for _, tok := range tokens {
		if isProperToken(tok) {
			proper++
		}
	}
	return 2*proper >= len(tokens)
}

// RepairLine tokenizes text and runs SplitWord on each token that looks
// malformed, rejoining with single spaces. Lines that are already well
// formatted are returned unchanged.
func (c *Composer) RepairLine(text string) string {
	if IsWellFormatted(text) {
		return text
	}
	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if looksMalformed(tok) {
			tokens[i] = c.SplitWord(tok)
		}
	}
	return strings.Join(tokens, " ")
}

// SplitWord attempts to repair a single glued token. Words shorter than
// four characters, already in canonical Capital+lowercase form, or
// already containing a space come back unchanged.
func (c *Composer) SplitWord(word string) string {
	runes := []rune(word)
	if len(runes) < minSplitLength || isCanonical(runes) || strings.ContainsRune(word, ' ') {
		return word
	}

	if fixed, ok := c.overrides[dictionary.Normalize(word)]; ok {
		return fixed
	}

	if split, ok := c.bestSegmentation(runes); ok {
		return split
	}

	// A fully uppercase run may just be a single word shouted by the
	// spine typography.
	if isAllUpper(runes) {
		titled := string(runes[0]) + strings.ToLower(string(runes[1:]))
		if c.dict.IsKnownWord(titled) || c.dict.IsKnownFirstName(titled) {
			return titled
		}
	}

	// Last resort: split at internal lowercase-to-uppercase boundaries
	// ("JeanTeulé"), accepted only if every part checks out.
	if parts, ok := c.splitAtCaseBoundaries(runes); ok {
		return strings.Join(parts, " ")
	}

	return word
}

// bestSegmentation searches all 2- and 3-way splits with parts of length
// >= 1 where every part is a known word, keeping the split with the most
// dictionary-valid parts. Ties go to the first split found, scanning the
// outer cut ascending and the inner cut ascending. Each part comes back
// lowercased with its first letter capitalized.
func (c *Composer) bestSegmentation(runes []rune) (string, bool) {
	var best []string
	for i := 1; i < len(runes); i++ {
		first := string(runes[:i])
		rest := string(runes[i:])
		if len(best) < 2 && c.isKnown(first) && c.isKnown(rest) {
			best = []string{first, rest}
		}
		for j := i + 1; j < len(runes); j++ {
			if len(best) >= 3 {
				break
			}
			middle := string(runes[i:j])
			last := string(runes[j:])
			if c.isKnown(first) && c.isKnown(middle) && c.isKnown(last) {
				best = []string{first, middle, last}
			}
		}
	}
	if best == nil {
		return "", false
	}
	for i, part := range best {
		best[i] = capitalize(strings.ToLower(part))
	}
	return strings.Join(best, " "), true
}

// isKnown accepts either dictionary: spine text glues titles and author
// names alike, so segmentation parts may be nouns or first names.
func (c *Composer) isKnown(part string) bool {
	return c.dict.IsKnownWord(part) || c.dict.IsKnownFirstName(part)
}

func (c *Composer) splitAtCaseBoundaries(runes []rune) ([]string, bool) {
	var parts []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			parts = append(parts, string(runes[start:i]))
			start = i
		}
	}
	if start == 0 {
		return nil, false
	}
	parts = append(parts, string(runes[start:]))
	for _, part := range parts {
		if !c.dict.IsKnownWord(part) && !c.dict.IsKnownFirstName(part) {
			return nil, false
		}
	}
	return parts, true
}

// looksMalformed flags the tokens worth a segmentation attempt: an
// internal lowercase-to-uppercase transition, a leading all-caps run, or
// excessive length.
func looksMalformed(tok string) bool {
	runes := []rune(tok)
	if len(runes) > longTokenLength {
		return true
	}
	if len(runes) >= 2 && unicode.IsUpper(runes[0]) && unicode.IsUpper(runes[1]) {
		return true
	}
	for i := 1; i < len(runes); i++ {
		if unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i]) {
			return true
		}
	}
	return false
}

// isCanonical reports the "capital letter followed by lowercase letters"
// shape covering the whole token.
func isCanonical(runes []rune) bool {
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func isProperToken(tok string) bool {
	runes := []rune(tok)
	return len(runes) >= 2 && unicode.IsUpper(runes[0]) && unicode.IsLower(runes[1])
}

func isAllUpper(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return len(runes) > 0
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
