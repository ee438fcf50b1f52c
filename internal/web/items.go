package web

import (
	"fmt"
	"html"
	"log/slog"
	"net/http"

	"github.com/erazemk/quicksave/internal/model"
	"github.com/erazemk/quicksave/internal/store"
	"github.com/erazemk/quicksave/internal/upload"
)

// HomePage handles GET /. It renders the save forms for the logged-in user.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "index.html", &PageData{
		Title: "quicksave",
		User:  claims,
	})
}

// fragment writes a small HTML fragment the forms swap in for feedback,
// mirroring the original inline success/error messages.
func fragment(w http.ResponseWriter, status int, class, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<p class=%q>%s</p>`, class, html.EscapeString(message))
}

// AddNote handles POST /add/note.
func (s *Server) AddNote(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	content := r.FormValue("content")

	item, err := store.SaveItem(r.Context(), s.DB, claims.UserID, model.TypeNote, []byte(content))
	if err != nil {
		if store.IsValidation(err) {
			fragment(w, http.StatusOK, "error", "Note content cannot be empty.")
			return
		}
		slog.Error("failed to save note", "user", claims.Username, "error", err)
		fragment(w, http.StatusInternalServerError, "error", "Failed to save note.")
		return
	}

	slog.Info("note saved", "user", claims.Username, "item", item.ID, "bytes", len(item.Content))
	fragment(w, http.StatusOK, "success", "Note saved successfully!")
}

// AddUpload returns the handler for POST /add/{image,document,photo}.
// The request body is bounded at the ceiling plus some slack for multipart
// framing; the precise limit is enforced while draining the file part.
func (s *Server) AddUpload(itemType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetWebClaims(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadBytes+1<<20)

		file, header, err := r.FormFile("file")
		if err != nil {
			fragment(w, http.StatusOK, "error", "File not provided.")
			return
		}
		defer file.Close()

		if header.Filename == "" {
			fragment(w, http.StatusOK, "error", "File not provided.")
			return
		}

		content, err := upload.ReadAll(file, s.MaxUploadBytes)
		if err != nil {
			if store.IsValidation(err) {
				fragment(w, http.StatusOK, "error",
					fmt.Sprintf("File exceeds the %dMB size limit.", s.MaxUploadBytes>>20))
				return
			}
			slog.Error("failed to read upload", "user", claims.Username, "error", err)
			fragment(w, http.StatusInternalServerError, "error", "Upload failed, try again.")
			return
		}

		item, err := store.SaveItem(r.Context(), s.DB, claims.UserID, itemType, content)
		if err != nil {
			if store.IsValidation(err) {
				fragment(w, http.StatusOK, "error", err.Error())
				return
			}
			slog.Error("failed to save upload", "user", claims.Username, "type", itemType, "error", err)
			fragment(w, http.StatusInternalServerError, "error", "Failed to save file.")
			return
		}

		slog.Info("file saved", "user", claims.Username, "type", itemType,
			"item", item.ID, "file", header.Filename, "bytes", len(content))
		fragment(w, http.StatusOK, "success",
			fmt.Sprintf("%s %q saved successfully!", capitalize(itemType), header.Filename))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
