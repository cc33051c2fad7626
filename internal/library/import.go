package library

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/shelfscan/shelfscan/internal/models"
)

// importRow is the flat schema shared by both import formats.
type importRow struct {
	Title  string `parquet:"title"`
	Author string `parquet:"author"`
	ISBN   string `parquet:"isbn,optional"`
}

// ReadBookFile parses an export of another library tool into books
// ready for import. The format is picked from the file extension:
// .parquet or .csv.
func ReadBookFile(path string) ([]models.Book, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return readParquet(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported import format: %s (supported: .parquet, .csv)", ext)
	}
}

func readParquet(path string) ([]models.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}
	slog.Debug("parquet import opened", "path", path, "rows", pf.NumRows())

	reader := parquet.NewGenericReader[importRow](pf)
	defer reader.Close()

	var books []models.Book
	rows := make([]importRow, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			if row.Title == "" {
				continue
			}
			books = append(books, models.Book{
				Title:  row.Title,
				Author: row.Author,
				ISBN:   row.ISBN,
			})
		}
		if err != nil {
			break
		}
	}
	return books, nil
}

func readCSV(path string) ([]models.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Map the header so column order does not matter.
	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	titleCol, ok := cols["title"]
	if !ok {
		return nil, fmt.Errorf("csv is missing a title column")
	}
	authorCol, hasAuthor := cols["author"]
	isbnCol, hasISBN := cols["isbn"]

	var books []models.Book
	for _, record := range records[1:] {
		book := models.Book{Title: field(record, titleCol)}
		if book.Title == "" {
			continue
		}
		if hasAuthor {
			book.Author = field(record, authorCol)
		}
		if hasISBN {
			book.ISBN = field(record, isbnCol)
		}
		books = append(books, book)
	}
	return books, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
