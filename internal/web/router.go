package web

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/quicksave/internal/model"
	webembed "github.com/erazemk/quicksave/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, secret string, maxUploadBytes int64) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:             db,
		Templates:      templates,
		Secret:         secret,
		MaxUploadBytes: maxUploadBytes,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(secret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /logout", s.Logout)

	// Authenticated routes.
	mux.Handle("GET /{$}", cookieAuth(http.HandlerFunc(s.HomePage)))
	mux.Handle("POST /add/note", cookieAuth(http.HandlerFunc(s.AddNote)))
	for _, typ := range model.UploadTypes {
		mux.Handle("POST /add/"+typ, cookieAuth(s.AddUpload(typ)))
	}

	return mux, nil
}
