package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shelfscan/shelfscan/internal/models"
)

// GoogleBooks queries the Google Books volumes API. When a fielded
// intitle/inauthor query comes back empty it retries once with the bare
// words, which catches spines whose split guessed the connector wrong.
type GoogleBooks struct {
	BaseURL string

	httpClient *http.Client
}

func NewGoogleBooks() *GoogleBooks {
	return &GoogleBooks{
		BaseURL: "https://www.googleapis.com/books/v1/volumes",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *GoogleBooks) Name() string {
	return "googlebooks"
}

type googleVolume struct {
	VolumeInfo struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Description   string   `json:"description"`
		AverageRating float64  `json:"averageRating"`
		ImageLinks    struct {
			Thumbnail string `json:"thumbnail"`
		} `json:"imageLinks"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
	} `json:"volumeInfo"`
}

func (g *GoogleBooks) Search(ctx context.Context, q Query) (*models.Book, error) {
	query := fmt.Sprintf("%q", q.Raw)
	if q.Author != "" {
		query = fmt.Sprintf("intitle:%q inauthor:%q", q.Title, q.Author)
	}

	volumes, err := g.fetchVolumes(ctx, query, "5")
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 && q.Author != "" {
		volumes, err = g.fetchVolumes(ctx, q.Title+" "+q.Author, "5")
		if err != nil {
			return nil, err
		}
	}

	candidates := make([]candidate, 0, len(volumes))
	for _, vol := range volumes {
		info := vol.VolumeInfo
		author := ""
		if len(info.Authors) > 0 {
			author = info.Authors[0]
		}
		score := relevance(q, info.Title, author)
		if info.Description != "" {
			score += completenessBonus
		}
		if info.ImageLinks.Thumbnail != "" {
			score += completenessBonus
		}
		if info.AverageRating != 0 {
			score += completenessBonus
		}

		isbn := ""
		if len(info.IndustryIdentifiers) > 0 {
			isbn = info.IndustryIdentifiers[0].Identifier
		}
		candidates = append(candidates, candidate{
			book: models.Book{
				Title:       info.Title,
				Author:      author,
				Rating:      info.AverageRating,
				Description: info.Description,
				CoverURL:    secureURL(info.ImageLinks.Thumbnail),
				ISBN:        isbn,
			},
			score: score,
		})
	}

	return pickBest(q, candidates), nil
}

// SearchISBN looks up a single volume by ISBN. No scoring: an ISBN hit
// is either the book or nothing.
func (g *GoogleBooks) SearchISBN(ctx context.Context, isbn string) (*models.Book, error) {
	volumes, err := g.fetchVolumes(ctx, "isbn:"+isbn, "")
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, nil
	}

	info := volumes[0].VolumeInfo
	author := ""
	if len(info.Authors) > 0 {
		author = info.Authors[0]
	}
	return &models.Book{
		Title:       info.Title,
		Author:      author,
		Rating:      info.AverageRating,
		Description: info.Description,
		CoverURL:    secureURL(info.ImageLinks.Thumbnail),
		ISBN:        isbn,
	}, nil
}

func (g *GoogleBooks) fetchVolumes(ctx context.Context, query, maxResults string) ([]googleVolume, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("langRestrict", "fr")
	if maxResults != "" {
		params.Set("maxResults", maxResults)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building google books request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search google books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned status %d", resp.StatusCode)
	}

	var searchResp struct {
		Items []googleVolume `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode google books response: %w", err)
	}
	return searchResp.Items, nil
}

// Google sometimes hands back plain http thumbnail links.
func secureURL(u string) string {
	return strings.Replace(u, "http:", "https:", 1)
}
