// Package library manages the user's reading lists and their
// persistence.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/shelfscan/shelfscan/internal/models"
)

// ErrNotFound is returned when a book ID appears in neither list.
var ErrNotFound = errors.New("library: book not found")

// Store persists reading lists.
type Store interface {
	Load(ctx context.Context) (models.ReadingLists, error)
	Save(ctx context.Context, lists models.ReadingLists) error
}

// FileStore keeps both lists in a single JSON file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the lists from disk. A missing file is an empty library,
// not an error.
func (s *FileStore) Load(ctx context.Context) (models.ReadingLists, error) {
	var lists models.ReadingLists

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return lists, nil
	}
	if err != nil {
		return lists, fmt.Errorf("failed to read library file: %w", err)
	}

	if err := json.Unmarshal(data, &lists); err != nil {
		return lists, fmt.Errorf("failed to parse library file: %w", err)
	}
	return lists, nil
}

func (s *FileStore) Save(ctx context.Context, lists models.ReadingLists) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create library directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write library file: %w", err)
	}
	return nil
}

// Library is the in-memory view of the reading lists, persisted through
// a Store after every mutation. Safe for concurrent use.
type Library struct {
	mu    sync.Mutex
	store Store
	lists models.ReadingLists
}

// Open loads the lists from the store.
func Open(ctx context.Context, store Store) (*Library, error) {
	lists, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Library{store: store, lists: lists}, nil
}

// Lists returns a copy of both lists.
func (l *Library) Lists() models.ReadingLists {
	l.mu.Lock()
	defer l.mu.Unlock()
	return models.ReadingLists{
		ToRead: append([]models.Book(nil), l.lists.ToRead...),
		Read:   append([]models.Book(nil), l.lists.Read...),
	}
}

// AddToRead appends a book to the "to read" list, assigning it an ID.
func (l *Library) AddToRead(ctx context.Context, book models.Book) (models.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	book.ID = uuid.NewString()
	l.lists.ToRead = append(l.lists.ToRead, book)
	if err := l.store.Save(ctx, l.lists); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

// MarkRead moves a book from "to read" to "read", keeping its ID.
func (l *Library) MarkRead(ctx context.Context, id string) (models.Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, book := range l.lists.ToRead {
		if book.ID != id {
			continue
		}
		l.lists.ToRead = append(l.lists.ToRead[:i], l.lists.ToRead[i+1:]...)
		l.lists.Read = append(l.lists.Read, book)
		if err := l.store.Save(ctx, l.lists); err != nil {
			return models.Book{}, err
		}
		return book, nil
	}
	return models.Book{}, ErrNotFound
}

// Remove deletes a book from whichever list holds it.
func (l *Library) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if removed := removeByID(&l.lists.ToRead, id); !removed {
		if removed = removeByID(&l.lists.Read, id); !removed {
			return ErrNotFound
		}
	}
	return l.store.Save(ctx, l.lists)
}

// ImportToRead bulk-adds books to the "to read" list with a single
// save.
func (l *Library) ImportToRead(ctx context.Context, books []models.Book) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, book := range books {
		book.ID = uuid.NewString()
		l.lists.ToRead = append(l.lists.ToRead, book)
	}
	if err := l.store.Save(ctx, l.lists); err != nil {
		return 0, err
	}
	return len(books), nil
}

func removeByID(books *[]models.Book, id string) bool {
	for i, book := range *books {
		if book.ID == id {
			*books = append((*books)[:i], (*books)[i+1:]...)
			return true
		}
	}
	return false
}
