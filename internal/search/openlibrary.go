package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shelfscan/shelfscan/internal/models"
)

// OpenLibrary queries the openlibrary.org search API. Results are
// restricted to French editions, the language most spines in a French
// home library are printed in.
type OpenLibrary struct {
	BaseURL   string
	CoversURL string

	httpClient *http.Client
}

func NewOpenLibrary() *OpenLibrary {
	return &OpenLibrary{
		BaseURL:   "https://openlibrary.org",
		CoversURL: "https://covers.openlibrary.org",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (o *OpenLibrary) Name() string {
	return "openlibrary"
}

type openLibraryWork struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	CoverID          int      `json:"cover_i"`
	FirstPublishYear int      `json:"first_publish_year"`
	RatingsAverage   float64  `json:"ratings_average"`
}

// Search runs a fielded query when the candidate split into title and
// author, scores the first five works and returns the best one with its
// description filled in from the work record.
func (o *OpenLibrary) Search(ctx context.Context, q Query) (*models.Book, error) {
	query := q.Raw
	if q.Author != "" {
		query = fmt.Sprintf("title:%q author:%q", q.Title, q.Author)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "fre")
	params.Set("limit", "5")
	searchURL := fmt.Sprintf("%s/search.json?%s", o.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building openlibrary request: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search openlibrary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openlibrary returned status %d", resp.StatusCode)
	}

	var searchResp struct {
		Docs []openLibraryWork `json:"docs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode openlibrary response: %w", err)
	}

	candidates := make([]candidate, 0, len(searchResp.Docs))
	for _, work := range searchResp.Docs {
		author := ""
		if len(work.AuthorName) > 0 {
			author = work.AuthorName[0]
		}
		score := relevance(q, work.Title, author)
		if work.CoverID != 0 {
			score += completenessBonus
		}
		if work.RatingsAverage != 0 {
			score += completenessBonus
		}
		if work.FirstPublishYear != 0 {
			score += completenessBonus
		}
		candidates = append(candidates, candidate{
			book: models.Book{
				ID:       work.Key,
				Title:    work.Title,
				Author:   author,
				Rating:   work.RatingsAverage,
				CoverURL: o.coverURL(work.CoverID),
			},
			score: score,
		})
	}

	best := pickBest(q, candidates)
	if best == nil {
		return nil, nil
	}

	// The description lives on the work record, not in search results.
	// Missing it is not worth failing the whole lookup.
	if desc, err := o.workDescription(ctx, best.ID); err != nil {
		slog.Warn("failed to fetch work description", "work", best.ID, "err", err)
	} else {
		best.Description = desc
	}
	best.ID = ""
	return best, nil
}

func (o *OpenLibrary) coverURL(coverID int) string {
	if coverID == 0 {
		return ""
	}
	return fmt.Sprintf("%s/b/id/%d-L.jpg", o.CoversURL, coverID)
}

func (o *OpenLibrary) workDescription(ctx context.Context, workKey string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.BaseURL+workKey+".json", nil)
	if err != nil {
		return "", fmt.Errorf("building work request: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch work: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openlibrary work returned status %d", resp.StatusCode)
	}

	// Description is either a plain string or a typed text object.
	var details struct {
		Description json.RawMessage `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return "", fmt.Errorf("failed to decode work response: %w", err)
	}
	if len(details.Description) == 0 {
		return "", nil
	}

	var plain string
	if err := json.Unmarshal(details.Description, &plain); err == nil {
		return plain, nil
	}
	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(details.Description, &typed); err == nil {
		return typed.Value, nil
	}
	return "", nil
}
