package api

import (
	"database/sql"
	"net/http"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, secret string, maxUploadBytes int64) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Secret: secret}
	itemsHandler := &ItemsHandler{DB: db, MaxUploadBytes: maxUploadBytes}

	authMW := AuthMiddleware(secret, db)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/items/note", authMW(http.HandlerFunc(itemsHandler.SaveNote)))
	mux.Handle("POST /api/items/{type}", authMW(http.HandlerFunc(itemsHandler.SaveUpload)))

	return mux
}
