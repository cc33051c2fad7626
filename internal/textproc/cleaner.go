// Package textproc turns noisy OCR lines from shelf photos into clean,
// plausible "title [+ author]" strings. Everything in this package is
// pure: every input string produces some output string, never an error,
// and nothing here logs or mutates shared state.
package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Characters worth keeping on a book spine: Latin letters (accented
	// included), digits, whitespace and light punctuation.
	disallowedRe = regexp.MustCompile(`[^a-zA-ZÀ-ÿ0-9\s,.'()-]`)
	spaceRunRe   = regexp.MustCompile(`\s+`)

	// Catalog codes: standalone 4-5 digit runs anchored at line start or
	// end. Digit runs embedded mid-line stay (they can be part of titles).
	leadingCodeRe  = regexp.MustCompile(`^\d{4,5}\s+`)
	trailingCodeRe = regexp.MustCompile(`\s+\d{4,5}$`)

	leadingJunkRe = regexp.MustCompile(`^[^a-zA-ZÀ-ÿ0-9\s]+`)
	strayCharRe   = regexp.MustCompile(`[|Ï&@\x00-\x1f\x7f-\x9f]`)
)

// Cleaner normalizes one raw OCR line at a time. The publisher and
// artifact token lists come from configuration; empty lists disable the
// corresponding step.
type Cleaner struct {
	publisherRe *regexp.Regexp
	artifactRe  *regexp.Regexp
}

// NewCleaner builds a cleaner that removes the given publisher imprints
// (whole leading/trailing token, case-insensitive) and trailing OCR
// artifact tokens (exact match, they are junk codes like "QOTIE").
func NewCleaner(publishers, artifacts []string) *Cleaner {
	c := &Cleaner{}
	if len(publishers) > 0 {
		alt := quoteAlternation(publishers)
		c.publisherRe = regexp.MustCompile(`(?i)(?:^(?:` + alt + `)\s+|\s+(?:` + alt + `)$)`)
	}
	if len(artifacts) > 0 {
		alt := quoteAlternation(artifacts)
		c.artifactRe = regexp.MustCompile(`(?:\s+(?:` + alt + `))+\s*$`)
	}
	return c
}

func quoteAlternation(tokens []string) string {
	quoted := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(tok))
	}
	return strings.Join(quoted, "|")
}

// CleanLine runs the full cleaning sequence. Each step depends on the
// previous one's output, so the order within a pass is fixed. The pass
// repeats until the line stops changing: removing a catalog code can
// expose a publisher token at the line edge ("2453 GALLIMARD ..."), and
// the fixpoint also makes cleaning idempotent. Output only ever shrinks,
// so the loop terminates.
func (c *Cleaner) CleanLine(line string) string {
	s := line
	for {
		next := c.cleanPass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func (c *Cleaner) cleanPass(line string) string {
	s := normalizeLine(line)
	s = c.removePublishers(s)
	s = removeCatalogCodes(s)
	s = c.removeParasites(s)
	return s
}

// normalizeLine strips characters outside the allow-list, collapses
// whitespace runs and trims.
func normalizeLine(s string) string {
	s = disallowedRe.ReplaceAllString(s, " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func (c *Cleaner) removePublishers(s string) string {
	if c.publisherRe == nil {
		return s
	}
	return strings.TrimSpace(c.publisherRe.ReplaceAllString(s, ""))
}

func removeCatalogCodes(s string) string {
	s = leadingCodeRe.ReplaceAllString(s, "")
	return trailingCodeRe.ReplaceAllString(s, "")
}

// removeParasites strips leading non-alphanumeric noise, stray characters
// the allow-list let through, trailing artifact tokens, and short
// punctuation runs that are not part of a number.
func (c *Cleaner) removeParasites(s string) string {
	s = leadingJunkRe.ReplaceAllString(s, "")
	s = strayCharRe.ReplaceAllString(s, "")
	if c.artifactRe != nil {
		s = c.artifactRe.ReplaceAllString(s, "")
	}
	s = dropPunctuationTokens(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// dropPunctuationTokens removes tokens of 1-3 non-alphanumeric characters
// unless the preceding token ends in a digit (then the run may belong to
// a number, e.g. "1914 -").
func dropPunctuationTokens(s string) string {
	tokens := strings.Fields(s)
	kept := tokens[:0]
	for _, tok := range tokens {
		if isPunctuationRun(tok) && !previousEndsInDigit(kept) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func isPunctuationRun(tok string) bool {
	runes := []rune(tok)
	if len(runes) == 0 || len(runes) > 3 {
		return false
	}
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func previousEndsInDigit(kept []string) bool {
	if len(kept) == 0 {
		return false
	}
	prev := []rune(kept[len(kept)-1])
	return unicode.IsDigit(prev[len(prev)-1])
}
