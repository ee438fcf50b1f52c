package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/quicksave/internal/auth"
	"github.com/erazemk/quicksave/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already logged in? Straight to the home page.
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if _, err := auth.ValidateToken(s.Secret, cookie.Value); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Enter a username and password.",
		})
		return
	}

	user, err := store.VerifyCredentials(r.Context(), s.DB, username, password)
	if err != nil {
		if !errors.Is(err, store.ErrInvalidCredentials) {
			slog.Error("login failed", "error", err)
		}
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid username or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.Secret, user.ID, user.Username)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Login failed, try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry / time.Second),
	})

	slog.Info("user logged in", "user", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout. The session token is revoked server-side
// before the cookie is cleared.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.Secret, cookie.Value); err == nil && claims.ID != "" {
			expiry := time.Now().Add(auth.TokenExpiry)
			if claims.ExpiresAt != nil {
				expiry = claims.ExpiresAt.Time
			}
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, expiry); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
