// Package handlers exposes the scan pipeline and the reading lists over
// HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/shelfscan/shelfscan/internal/detect"
	"github.com/shelfscan/shelfscan/internal/library"
	"github.com/shelfscan/shelfscan/internal/models"
)

// Scanner runs the scan pipeline on an uploaded photo.
type Scanner interface {
	Scan(ctx context.Context, image []byte) ([]models.DetectedBook, error)
}

type Handler struct {
	scanner Scanner
	library *library.Library
}

func New(scanner Scanner, lib *library.Library) *Handler {
	return &Handler{
		scanner: scanner,
		library: lib,
	}
}

// Routes registers the API on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/scan", h.HandleScan)
	mux.HandleFunc("GET /api/lists", h.HandleLists)
	mux.HandleFunc("POST /api/lists/toread", h.HandleAddToRead)
	mux.HandleFunc("POST /api/lists/{id}/read", h.HandleMarkRead)
	mux.HandleFunc("DELETE /api/lists/{id}", h.HandleRemove)
	mux.HandleFunc("GET /healthcheck", h.HandleHealthcheck)
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// HandleScan accepts a multipart photo upload under "file" or "image"
// and returns the detected books.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		file, _, err = r.FormFile("image")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	books, err := h.scanner.Scan(r.Context(), image)
	if err != nil {
		if errors.Is(err, detect.ErrOrientation) {
			h.writeError(w, "Could not interpret the photo", http.StatusUnprocessableEntity)
			return
		}
		h.writeError(w, "Scan failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if books == nil {
		books = []models.DetectedBook{}
	}
	h.writeJSON(w, map[string]any{"books": books})
}

func (h *Handler) HandleLists(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.library.Lists())
}

func (h *Handler) HandleAddToRead(w http.ResponseWriter, r *http.Request) {
	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if book.Title == "" {
		h.writeError(w, "title is required", http.StatusBadRequest)
		return
	}

	added, err := h.library.AddToRead(r.Context(), book)
	if err != nil {
		h.writeError(w, "Failed to save book: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, added)
}

func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	book, err := h.library.MarkRead(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			h.writeError(w, "Book not found", http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to update book: "+err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, book)
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.library.Remove(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			h.writeError(w, "Book not found", http.StatusNotFound)
			return
		}
		h.writeError(w, "Failed to remove book: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleHealthcheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}
