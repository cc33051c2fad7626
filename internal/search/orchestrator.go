package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shelfscan/shelfscan/internal/models"
)

const (
	cacheTTL     = 15 * time.Minute
	cacheCleanup = 30 * time.Minute
)

// Orchestrator runs providers in order and caches lookups, so the same
// shelf rescanned minutes later does not hammer the catalogs.
type Orchestrator struct {
	providers []Provider
	cache     *cache.Cache
}

func NewOrchestrator(providers ...Provider) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		cache:     cache.New(cacheTTL, cacheCleanup),
	}
}

// FindBook resolves one candidate. Providers are tried in order, the
// first relevant hit wins, and both hits and misses are cached. A
// provider error moves on to the next provider.
func (o *Orchestrator) FindBook(ctx context.Context, candidate string) *models.Book {
	if hit, ok := o.cache.Get(candidate); ok {
		return hit.(*models.Book)
	}

	q := ParseQuery(candidate)
	var found *models.Book
	for _, provider := range o.providers {
		book, err := provider.Search(ctx, q)
		if err != nil {
			slog.Warn("provider search failed", "provider", provider.Name(), "candidate", candidate, "err", err)
			continue
		}
		if book != nil {
			slog.Debug("candidate resolved", "provider", provider.Name(), "candidate", candidate, "title", book.Title)
			found = book
			break
		}
	}

	o.cache.Set(candidate, found, cache.DefaultExpiration)
	return found
}

// FindISBN tries each provider that supports direct ISBN lookup.
func (o *Orchestrator) FindISBN(ctx context.Context, isbn string) *models.Book {
	key := "isbn:" + isbn
	if hit, ok := o.cache.Get(key); ok {
		return hit.(*models.Book)
	}

	var found *models.Book
	for _, provider := range o.providers {
		searcher, ok := provider.(ISBNSearcher)
		if !ok {
			continue
		}
		book, err := searcher.SearchISBN(ctx, isbn)
		if err != nil {
			slog.Warn("isbn lookup failed", "provider", provider.Name(), "isbn", isbn, "err", err)
			continue
		}
		if book != nil {
			found = book
			break
		}
	}

	o.cache.Set(key, found, cache.DefaultExpiration)
	return found
}

// FindAll resolves candidates concurrently. The result slice is index
// aligned with the input; unresolved candidates are nil.
func (o *Orchestrator) FindAll(ctx context.Context, candidates []string) []*models.Book {
	books := make([]*models.Book, len(candidates))

	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate string) {
			defer wg.Done()
			books[i] = o.FindBook(ctx, candidate)
		}(i, candidate)
	}
	wg.Wait()

	return books
}
