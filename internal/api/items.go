package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/quicksave/internal/model"
	"github.com/erazemk/quicksave/internal/store"
	"github.com/erazemk/quicksave/internal/upload"
)

// ItemsHandler handles item save endpoints.
type ItemsHandler struct {
	DB             *sql.DB
	MaxUploadBytes int64
}

type noteRequest struct {
	Content string `json:"content"`
}

// itemResponse is the created-item metadata. Content is never echoed back.
type itemResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveNote handles POST /api/items/note.
func (h *ItemsHandler) SaveNote(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.SaveItem(r.Context(), h.DB, claims.UserID, model.TypeNote, []byte(req.Content))
	if err != nil {
		h.saveError(w, claims.Username, model.TypeNote, err)
		return
	}

	slog.Info("note saved", "user", claims.Username, "item", item.ID)
	jsonResponse(w, http.StatusCreated, itemResponse{
		ID:        item.ID,
		Type:      item.Type,
		Size:      len(item.Content),
		CreatedAt: item.CreatedAt,
	})
}

// SaveUpload handles POST /api/items/{type} for the file-upload types.
func (h *ItemsHandler) SaveUpload(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	itemType := r.PathValue("type")
	if !model.IsUploadType(itemType) {
		jsonError(w, http.StatusNotFound, "unknown item type")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		jsonError(w, http.StatusBadRequest, "file required")
		return
	}

	content, err := upload.ReadAll(file, h.MaxUploadBytes)
	if err != nil {
		if store.IsValidation(err) {
			jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		slog.Error("failed to read upload", "user", claims.Username, "error", err)
		jsonError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	item, err := store.SaveItem(r.Context(), h.DB, claims.UserID, itemType, content)
	if err != nil {
		h.saveError(w, claims.Username, itemType, err)
		return
	}

	slog.Info("file saved", "user", claims.Username, "type", itemType,
		"item", item.ID, "file", header.Filename, "bytes", len(content))
	jsonResponse(w, http.StatusCreated, itemResponse{
		ID:        item.ID,
		Type:      item.Type,
		Size:      len(item.Content),
		CreatedAt: item.CreatedAt,
	})
}

// saveError maps store errors to JSON responses.
func (h *ItemsHandler) saveError(w http.ResponseWriter, username, itemType string, err error) {
	switch {
	case store.IsValidation(err):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUserNotFound):
		jsonError(w, http.StatusNotFound, "user not found")
	default:
		slog.Error("failed to save item", "user", username, "type", itemType, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save item")
	}
}
