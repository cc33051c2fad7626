// Package match resolves raw OCR lines against the user's reading lists
// before any external search happens. Matching tolerates OCR noise
// directly, so it runs on raw lines, not cleaned candidates.
package match

import (
	"regexp"
	"strings"

	"github.com/shelfscan/shelfscan/internal/models"
)

// TokenOverlapThreshold is the minimum token-set overlap ratio for two
// strings to count as similar. Tuned empirically together with the rest
// of the heuristics; treat as a documented constant, not a knob.
const TokenOverlapThreshold = 0.6

// Title tokens this short ("le", "la", "de") match everything and prove
// nothing.
const minTitleTokenLength = 3

var (
	comparisonPunctRe = regexp.MustCompile(`[.,!?'"]`)
	spaceRunRe        = regexp.MustCompile(`\s+`)
	leadingDigitsRe   = regexp.MustCompile(`^\d+\s+`)
	trailingNoiseRe   = regexp.MustCompile(`[|@#$%^&*]+$`)
)

// Result partitions the scanned lines: Matches and IsRead run parallel
// (IsRead is true when the book came from the "read" list), Remaining
// holds every line that matched nothing, in original order. Every
// non-blank input line lands in exactly one of the two partitions.
type Result struct {
	Matches   []models.Book
	IsRead    []bool
	Remaining []string
}

// FindMatchingBooks checks each line of detectedText against the "to
// read" list first, then the "read" list, first match in list order
// winning.
func FindMatchingBooks(detectedText string, toRead, read []models.Book) Result {
	var res Result

	for _, line := range strings.Split(detectedText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if book, ok := findInList(line, toRead); ok {
			res.Matches = append(res.Matches, book)
			res.IsRead = append(res.IsRead, false)
			continue
		}
		if book, ok := findInList(line, read); ok {
			res.Matches = append(res.Matches, book)
			res.IsRead = append(res.IsRead, true)
			continue
		}
		res.Remaining = append(res.Remaining, line)
	}
	return res
}

func findInList(line string, list []models.Book) (models.Book, bool) {
	for _, book := range list {
		if matchesBook(line, book) {
			return book, true
		}
	}
	return models.Book{}, false
}

// matchesBook tries the combined "title author", the title alone and the
// author alone, then falls back to checking whether any substantial
// title token appears inside the line.
func matchesBook(line string, book models.Book) bool {
	trimmed := leadingDigitsRe.ReplaceAllString(line, "")
	trimmed = trailingNoiseRe.ReplaceAllString(trimmed, "")

	if areSimilar(trimmed, book.Title+" "+book.Author) ||
		areSimilar(trimmed, book.Title) ||
		areSimilar(trimmed, book.Author) {
		return true
	}

	lowered := strings.ToLower(trimmed)
	for _, tok := range strings.Fields(book.Title) {
		if len([]rune(tok)) > minTitleTokenLength && strings.Contains(lowered, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}

// areSimilar reports similarity after comparison cleaning: one string
// containing the other, or token-set overlap of at least
// TokenOverlapThreshold.
func areSimilar(a, b string) bool {
	s1 := cleanForComparison(a)
	s2 := cleanForComparison(b)
	if s1 == "" || s2 == "" {
		return false
	}

	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return true
	}

	set1 := tokenSet(s1)
	set2 := tokenSet(s2)
	common := 0
	for tok := range set1 {
		if _, ok := set2[tok]; ok {
			common++
		}
	}
	overlap := float64(2*common) / float64(len(set1)+len(set2))
	return overlap >= TokenOverlapThreshold
}

func cleanForComparison(s string) string {
	s = strings.ToLower(s)
	s = comparisonPunctRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}
