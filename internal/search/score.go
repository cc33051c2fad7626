package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/shelfscan/shelfscan/internal/dictionary"
	"github.com/shelfscan/shelfscan/internal/models"
)

const (
	exactTitleScore   = 15.0
	exactAuthorScore  = 15.0
	titleOverlapMax   = 10.0
	authorOverlapMax  = 10.0
	completenessBonus = 1.0

	// MinRelevantScore is the floor below which a result is treated as
	// noise rather than a match.
	MinRelevantScore = 5.0
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// normalizeText lowers, strips accents and drops everything that is not
// a letter, digit or space, so "Teulé" and "teule" compare equal.
func normalizeText(s string) string {
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(dictionary.Normalize(s), ""))
}

// relevance scores a catalog result against the query: 15 points per
// exact match on title and author, up to 10 more per field for partial
// word overlap.
func relevance(q Query, title, author string) float64 {
	normTitle := normalizeText(title)
	normAuthor := normalizeText(author)
	normSearchTitle := normalizeText(q.Title)
	normSearchAuthor := normalizeText(q.Author)

	var score float64
	if normTitle == normSearchTitle {
		score += exactTitleScore
	}
	if normSearchAuthor != "" && normAuthor == normSearchAuthor {
		score += exactAuthorScore
	}

	score += wordOverlap(normSearchTitle, normTitle) * titleOverlapMax
	if normSearchAuthor != "" {
		score += wordOverlap(normSearchAuthor, normAuthor) * authorOverlapMax
	}
	return score
}

// wordOverlap counts query words found in the result (containment in
// either direction), scaled by the longer word list.
func wordOverlap(query, result string) float64 {
	queryWords := strings.Fields(query)
	resultWords := strings.Fields(result)
	if len(queryWords) == 0 || len(resultWords) == 0 {
		return 0
	}

	common := 0
	for _, qw := range queryWords {
		for _, rw := range resultWords {
			if strings.Contains(rw, qw) || strings.Contains(qw, rw) {
				common++
				break
			}
		}
	}

	longest := len(queryWords)
	if len(resultWords) > longest {
		longest = len(resultWords)
	}
	return float64(common) / float64(longest)
}

type candidate struct {
	book  models.Book
	score float64
}

// pickBest orders candidates by score, breaking ties by edit distance
// between the normalized titles, and returns the winner if it clears
// MinRelevantScore.
func pickBest(q Query, candidates []candidate) *models.Book {
	if len(candidates) == 0 {
		return nil
	}

	normSearchTitle := normalizeText(q.Title)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		di := levenshtein.ComputeDistance(normalizeText(candidates[i].book.Title), normSearchTitle)
		dj := levenshtein.ComputeDistance(normalizeText(candidates[j].book.Title), normSearchTitle)
		return di < dj
	})

	if candidates[0].score <= MinRelevantScore {
		return nil
	}
	book := candidates[0].book
	return &book
}
