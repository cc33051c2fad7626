// Package search enriches unmatched spine candidates with metadata
// from external catalogs. Providers score their own results and return
// their single best hit, or nil when nothing relevant comes back.
package search

import (
	"context"
	"regexp"
	"strings"

	"github.com/shelfscan/shelfscan/internal/models"
)

// connectorRe splits "title de author" style candidates. The connectors
// cover French spines ("de", "par") and the occasional English import
// ("by").
var connectorRe = regexp.MustCompile(`\s+(?:de|par|by)\s+`)

// Query is a parsed candidate. Author is empty when the candidate did
// not split cleanly into a title and an author.
type Query struct {
	Raw    string
	Title  string
	Author string
}

// ParseQuery splits a candidate on the first title/author connector.
// More than one connector means the split is ambiguous, so the whole
// candidate is treated as a title.
func ParseQuery(raw string) Query {
	q := Query{Raw: raw, Title: raw}
	parts := connectorRe.Split(raw, -1)
	if len(parts) == 2 {
		q.Title = strings.TrimSpace(parts[0])
		q.Author = strings.TrimSpace(parts[1])
	}
	return q
}

// Provider is a single metadata catalog.
type Provider interface {
	Name() string
	// Search returns the provider's most relevant hit for the query,
	// or nil when no result scores above the relevance floor.
	Search(ctx context.Context, q Query) (*models.Book, error)
}

// ISBNSearcher is implemented by providers that support direct ISBN
// lookup.
type ISBNSearcher interface {
	SearchISBN(ctx context.Context, isbn string) (*models.Book, error)
}
