// Package scanner wires detection, list matching, candidate extraction
// and metadata search into the scan pipeline.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shelfscan/shelfscan/internal/detect"
	"github.com/shelfscan/shelfscan/internal/match"
	"github.com/shelfscan/shelfscan/internal/models"
	"github.com/shelfscan/shelfscan/internal/textproc"
)

// Searcher resolves unmatched candidates against external catalogs.
type Searcher interface {
	FindAll(ctx context.Context, candidates []string) []*models.Book
}

// ListSource provides the current reading lists to match against.
type ListSource interface {
	Lists() models.ReadingLists
}

type Scanner struct {
	detector  detect.Detector
	extractor *textproc.Extractor
	search    Searcher
	lists     ListSource
}

func New(detector detect.Detector, extractor *textproc.Extractor, search Searcher, lists ListSource) *Scanner {
	return &Scanner{
		detector:  detector,
		extractor: extractor,
		search:    search,
		lists:     lists,
	}
}

// Scan runs the full pipeline on a photo. Detected lines are first
// matched against the reading lists; what remains is cleaned into
// candidates and sent to the metadata search. Books the search cannot
// resolve are dropped.
func (s *Scanner) Scan(ctx context.Context, image []byte) ([]models.DetectedBook, error) {
	lines, err := s.detector.DetectLines(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("detecting text: %w", err)
	}
	slog.Debug("text detected", "detector", s.detector.Name(), "lines", len(lines))
	if len(lines) == 0 {
		return nil, nil
	}

	lists := s.lists.Lists()
	res := match.FindMatchingBooks(strings.Join(lines, "\n"), lists.ToRead, lists.Read)
	slog.Info("matched against reading lists",
		"matches", len(res.Matches), "remaining", len(res.Remaining))

	var detected []models.DetectedBook
	for i, book := range res.Matches {
		detected = append(detected, models.DetectedBook{
			Book:          book,
			InReadingList: true,
			IsRead:        res.IsRead[i],
		})
	}

	candidates := s.extractor.Candidates(strings.Join(res.Remaining, "\n"))
	slog.Debug("candidates extracted", "candidates", len(candidates))
	if len(candidates) == 0 {
		return detected, nil
	}

	for i, book := range s.search.FindAll(ctx, candidates) {
		if book == nil {
			slog.Debug("candidate unresolved", "candidate", candidates[i])
			continue
		}
		detected = append(detected, models.DetectedBook{Book: *book})
	}

	slog.Info("scan complete", "books", len(detected))
	return detected, nil
}
