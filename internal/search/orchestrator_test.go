package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shelfscan/shelfscan/internal/models"
)

type stubProvider struct {
	name  string
	books map[string]*models.Book
	err   error

	mu    sync.Mutex
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, q Query) (*models.Book, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.books[q.Raw], nil
}

func TestFindBookProviderOrder(t *testing.T) {
	first := &stubProvider{name: "first", books: map[string]*models.Book{
		"Le Montespan": {Title: "Le Montespan"},
	}}
	second := &stubProvider{name: "second", books: map[string]*models.Book{
		"Le Montespan": {Title: "wrong one"},
	}}

	o := NewOrchestrator(first, second)
	book := o.FindBook(context.Background(), "Le Montespan")
	if book == nil || book.Title != "Le Montespan" {
		t.Fatalf("got %+v, want the first provider's hit", book)
	}
	if second.calls != 0 {
		t.Errorf("second provider called %d times, want 0", second.calls)
	}
}

func TestFindBookFallsThroughOnErrorAndMiss(t *testing.T) {
	failing := &stubProvider{name: "failing", err: errors.New("boom")}
	empty := &stubProvider{name: "empty"}
	last := &stubProvider{name: "last", books: map[string]*models.Book{
		"La Grande Arche": {Title: "La Grande Arche"},
	}}

	o := NewOrchestrator(failing, empty, last)
	book := o.FindBook(context.Background(), "La Grande Arche")
	if book == nil || book.Title != "La Grande Arche" {
		t.Fatalf("got %+v, want the last provider's hit", book)
	}
}

func TestFindBookCachesResults(t *testing.T) {
	provider := &stubProvider{name: "p", books: map[string]*models.Book{
		"Le Montespan": {Title: "Le Montespan"},
	}}

	o := NewOrchestrator(provider)
	o.FindBook(context.Background(), "Le Montespan")
	o.FindBook(context.Background(), "Le Montespan")
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}

	// Misses are cached too.
	o.FindBook(context.Background(), "inconnu")
	o.FindBook(context.Background(), "inconnu")
	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2", provider.calls)
	}
}

func TestFindAllAlignsWithInput(t *testing.T) {
	provider := &stubProvider{name: "p", books: map[string]*models.Book{
		"Le Montespan":    {Title: "Le Montespan"},
		"La Grande Arche": {Title: "La Grande Arche"},
	}}

	o := NewOrchestrator(provider)
	books := o.FindAll(context.Background(), []string{"Le Montespan", "inconnu", "La Grande Arche"})

	if len(books) != 3 {
		t.Fatalf("got %d results, want 3", len(books))
	}
	if books[0] == nil || books[0].Title != "Le Montespan" {
		t.Errorf("books[0] = %+v", books[0])
	}
	if books[1] != nil {
		t.Errorf("books[1] = %+v, want nil", books[1])
	}
	if books[2] == nil || books[2].Title != "La Grande Arche" {
		t.Errorf("books[2] = %+v", books[2])
	}
}
