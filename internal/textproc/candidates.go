package textproc

import (
	"regexp"
	"strings"
)

// A candidate shorter than this can't carry a title worth searching.
const minCandidateLength = 10

// Residual artifact shapes that survive cleaning but are never titles.
var (
	isolatedCapsRe = regexp.MustCompile(`^[A-ZÀ-Ü] [A-ZÀ-Ü] [A-ZÀ-Ü]$`)
	numberPairRe   = regexp.MustCompile(`^\d+ \d+$`)
	shortCodesRe   = regexp.MustCompile(`^[A-ZÀ-Ü]{1,3} [A-ZÀ-Ü]{1,3}$`)
)

// Extractor turns a block of unmatched OCR lines into distinct candidate
// strings, each destined for exactly one external search query.
type Extractor struct {
	cleaner  *Cleaner
	composer *Composer
}

// NewExtractor wires the cleaning and compound-repair stages.
func NewExtractor(cleaner *Cleaner, composer *Composer) *Extractor {
	return &Extractor{cleaner: cleaner, composer: composer}
}

// Candidates splits text into lines, cleans and repairs each one,
// filters out lines unlikely to be book titles, and deduplicates while
// preserving first-seen order.
func (e *Extractor) Candidates(text string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		candidate := e.composer.RepairLine(e.cleaner.CleanLine(line))
		if !isPlausibleTitle(candidate) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// isPlausibleTitle applies the validity filter: enough length, at least
// two substantial tokens, at least one capitalized token, and none of
// the known junk shapes.
func isPlausibleTitle(line string) bool {
	if len([]rune(line)) < minCandidateLength {
		return false
	}

	substantial := 0
	capitalized := false
	for _, tok := range strings.Fields(line) {
		if len([]rune(tok)) > 2 {
			substantial++
		}
		if startsUpper(tok) {
			capitalized = true
		}
	}
	if substantial < 2 || !capitalized {
		return false
	}

	if isolatedCapsRe.MatchString(line) || numberPairRe.MatchString(line) || shortCodesRe.MatchString(line) {
		return false
	}
	return true
}
