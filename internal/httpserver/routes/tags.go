package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/httpserver/handlers"
)

func init() { Register(registerTags, requestTimeout()) }

func registerTags(r chi.Router, d deps.Deps) {
	r.Get("/api/tags", handlers.ListTags(d))
	r.Post("/api/tags", handlers.AddTag(d))
	r.Delete("/api/tags/{name}", handlers.RemoveTag(d))
}
