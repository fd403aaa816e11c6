// Package web serves the shopping lists over HTTP. The router maps the one
// application route to its view; the view alone talks to storage.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter maps "/" to page. Every other path is 404.
func NewRouter(page http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)

	r.Method(http.MethodGet, "/", page)
	r.Method(http.MethodHead, "/", page)
	return r
}
