package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks, requestTimeout()) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/api/bookmarks", handlers.ListBookmarks(d))
	r.Get("/api/bookmarks/all", handlers.ListAllBookmarks(d))
	r.Get("/api/bookmarks/nav", handlers.NavBookmark(d))
	r.Post("/api/bookmarks", handlers.CreateBookmark(d))
	r.Put("/api/bookmarks/{id}", handlers.UpdateBookmark(d))
	r.Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
}
