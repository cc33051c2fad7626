package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/shelfscan/shelfscan/internal/dictionary"
	"github.com/shelfscan/shelfscan/internal/models"
	"github.com/shelfscan/shelfscan/internal/textproc"
)

type fakeDetector struct {
	lines []string
	err   error
}

func (d *fakeDetector) Name() string { return "fake" }

func (d *fakeDetector) DetectLines(context.Context, []byte) ([]string, error) {
	return d.lines, d.err
}

type fakeSearcher struct {
	books map[string]*models.Book
	seen  []string
}

func (s *fakeSearcher) FindAll(_ context.Context, candidates []string) []*models.Book {
	s.seen = candidates
	out := make([]*models.Book, len(candidates))
	for i, c := range candidates {
		out[i] = s.books[c]
	}
	return out
}

type fixedLists struct {
	lists models.ReadingLists
}

func (f *fixedLists) Lists() models.ReadingLists { return f.lists }

func newTestExtractor() *textproc.Extractor {
	dict := dictionary.New(
		[]string{"le", "la", "grande", "arche", "montespan"},
		[]string{"jean", "laurence"},
	)
	cleaner := textproc.NewCleaner([]string{"FOLIO", "GALLIMARD"}, []string{"ISBN"})
	return textproc.NewExtractor(cleaner, textproc.NewComposer(dict))
}

func TestScanMatchesListsThenSearches(t *testing.T) {
	detector := &fakeDetector{lines: []string{
		"Le Montespan Jean Teulé",
		"La Grande Arche Laurence Cosse",
	}}
	searcher := &fakeSearcher{books: map[string]*models.Book{
		"La Grande Arche Laurence Cosse": {Title: "La Grande Arche", Author: "Laurence Cossé"},
	}}
	lists := &fixedLists{lists: models.ReadingLists{
		Read: []models.Book{{ID: "1", Title: "Le Montespan", Author: "Jean Teulé"}},
	}}

	s := New(detector, newTestExtractor(), searcher, lists)
	books, err := s.Scan(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	if !books[0].InReadingList || !books[0].IsRead || books[0].ID != "1" {
		t.Errorf("books[0] = %+v, want the read-list match", books[0])
	}
	if books[1].InReadingList || books[1].Title != "La Grande Arche" {
		t.Errorf("books[1] = %+v, want the search result", books[1])
	}
	if len(searcher.seen) != 1 || searcher.seen[0] != "La Grande Arche Laurence Cosse" {
		t.Errorf("searched candidates = %v", searcher.seen)
	}
}

func TestScanNoisySpineMatchesReadList(t *testing.T) {
	detector := &fakeDetector{lines: []string{
		"2453 GALLIMARD Le Montespan Jean Teulé 8820",
		"La Grande Arche Laurence Cosse",
	}}
	searcher := &fakeSearcher{books: map[string]*models.Book{
		"La Grande Arche Laurence Cosse": {Title: "La Grande Arche", Author: "Laurence Cossé"},
	}}
	lists := &fixedLists{lists: models.ReadingLists{
		Read: []models.Book{{ID: "1", Title: "Le Montespan", Author: "Jean Teulé"}},
	}}

	s := New(detector, newTestExtractor(), searcher, lists)
	books, err := s.Scan(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	if !books[0].InReadingList || !books[0].IsRead {
		t.Errorf("books[0] = %+v, want matched read-list book despite OCR noise", books[0])
	}
	if len(searcher.seen) != 1 || searcher.seen[0] != "La Grande Arche Laurence Cosse" {
		t.Errorf("searched candidates = %v, want only the unmatched spine", searcher.seen)
	}
}

func TestScanDropsUnresolvedCandidates(t *testing.T) {
	detector := &fakeDetector{lines: []string{"La Grande Arche Laurence Cosse"}}
	searcher := &fakeSearcher{}
	lists := &fixedLists{}

	s := New(detector, newTestExtractor(), searcher, lists)
	books, err := s.Scan(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("got %+v, want no books", books)
	}
}

func TestScanImplausibleLinesNeverSearched(t *testing.T) {
	detector := &fakeDetector{lines: []string{"A B C", "12345 67890"}}
	searcher := &fakeSearcher{}
	lists := &fixedLists{}

	s := New(detector, newTestExtractor(), searcher, lists)
	books, err := s.Scan(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(books) != 0 {
		t.Fatalf("got %+v, want no books", books)
	}
	if len(searcher.seen) != 0 {
		t.Errorf("searched candidates = %v, want none", searcher.seen)
	}
}

func TestScanDetectorError(t *testing.T) {
	detector := &fakeDetector{err: errors.New("boom")}
	s := New(detector, newTestExtractor(), &fakeSearcher{}, &fixedLists{})

	if _, err := s.Scan(context.Background(), nil); err == nil {
		t.Fatal("expected detector error to propagate")
	}
}

func TestScanNoLines(t *testing.T) {
	s := New(&fakeDetector{}, newTestExtractor(), &fakeSearcher{}, &fixedLists{})
	books, err := s.Scan(context.Background(), nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if books != nil {
		t.Fatalf("got %+v, want nil", books)
	}
}
