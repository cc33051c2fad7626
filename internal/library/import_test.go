package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestReadBookFileCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	csv := "author,title,isbn\n" +
		"Jean Teulé,Le Montespan,9782260016885\n" +
		"Émile Zola,Germinal,\n" +
		",,\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	books, err := ReadBookFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2 (titleless row skipped)", len(books))
	}
	if books[0].Title != "Le Montespan" || books[0].Author != "Jean Teulé" || books[0].ISBN != "9782260016885" {
		t.Errorf("books[0] = %+v", books[0])
	}
	if books[1].Title != "Germinal" || books[1].ISBN != "" {
		t.Errorf("books[1] = %+v", books[1])
	}
}

func TestReadBookFileCSVMissingTitleColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	if err := os.WriteFile(path, []byte("author\nJean Teulé\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBookFile(path); err == nil {
		t.Fatal("expected an error for a csv without a title column")
	}
}

func TestReadBookFileParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.parquet")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	writer := parquet.NewGenericWriter[importRow](file)
	_, err = writer.Write([]importRow{
		{Title: "Le Montespan", Author: "Jean Teulé", ISBN: "9782260016885"},
		{Title: "Germinal", Author: "Émile Zola"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	books, err := ReadBookFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	if books[0].Title != "Le Montespan" || books[0].Author != "Jean Teulé" {
		t.Errorf("books[0] = %+v", books[0])
	}
}

func TestReadBookFileUnsupportedFormat(t *testing.T) {
	if _, err := ReadBookFile("books.xlsx"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}
