package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGoogleBooksSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lang := r.URL.Query().Get("langRestrict"); lang != "fr" {
			t.Errorf("langRestrict = %q, want fr", lang)
		}
		if q, want := r.URL.Query().Get("q"), `intitle:"Le Montespan" inauthor:"Jean Teulé"`; q != want {
			t.Errorf("q = %q, want %q", q, want)
		}
		fmt.Fprint(w, `{"items": [{"volumeInfo": {
			"title": "Le Montespan",
			"authors": ["Jean Teulé"],
			"description": "Roman historique.",
			"averageRating": 4,
			"imageLinks": {"thumbnail": "http://books.google.com/thumb.jpg"},
			"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9782260016885"}]
		}}]}`)
	}))
	defer server.Close()

	provider := NewGoogleBooks()
	provider.BaseURL = server.URL

	book, err := provider.Search(context.Background(), ParseQuery("Le Montespan de Jean Teulé"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book == nil {
		t.Fatal("got nil book")
	}
	if book.Title != "Le Montespan" || book.Author != "Jean Teulé" {
		t.Errorf("got %q by %q", book.Title, book.Author)
	}
	if book.ISBN != "9782260016885" {
		t.Errorf("isbn = %q", book.ISBN)
	}
	if want := "https://books.google.com/thumb.jpg"; book.CoverURL != want {
		t.Errorf("cover = %q, want %q", book.CoverURL, want)
	}
}

func TestGoogleBooksSearchBroadRetry(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if len(queries) == 1 {
			fmt.Fprint(w, `{}`)
			return
		}
		fmt.Fprint(w, `{"items": [{"volumeInfo": {"title": "Le Montespan", "authors": ["Jean Teulé"]}}]}`)
	}))
	defer server.Close()

	provider := NewGoogleBooks()
	provider.BaseURL = server.URL

	book, err := provider.Search(context.Background(), ParseQuery("Le Montespan de Jean Teulé"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book == nil {
		t.Fatal("got nil book after broad retry")
	}
	if len(queries) != 2 {
		t.Fatalf("got %d requests, want fielded then broad", len(queries))
	}
	if want := "Le Montespan Jean Teulé"; queries[1] != want {
		t.Errorf("broad query = %q, want %q", queries[1], want)
	}
}

func TestGoogleBooksSearchISBN(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q, want := r.URL.Query().Get("q"), "isbn:9782260016885"; q != want {
			t.Errorf("q = %q, want %q", q, want)
		}
		fmt.Fprint(w, `{"items": [{"volumeInfo": {"title": "Le Montespan", "authors": ["Jean Teulé"]}}]}`)
	}))
	defer server.Close()

	provider := NewGoogleBooks()
	provider.BaseURL = server.URL

	book, err := provider.SearchISBN(context.Background(), "9782260016885")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book == nil || book.Title != "Le Montespan" {
		t.Fatalf("got %+v", book)
	}
	if book.ISBN != "9782260016885" {
		t.Errorf("isbn = %q", book.ISBN)
	}
}

func TestGoogleBooksSearchISBNNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	provider := NewGoogleBooks()
	provider.BaseURL = server.URL

	book, err := provider.SearchISBN(context.Background(), "0000000000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book != nil {
		t.Fatalf("got %+v, want nil", book)
	}
}
