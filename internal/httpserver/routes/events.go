package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/httpserver/handlers"
)

// No request timeout here: the stream stays open for the life of the
// surface.
func init() { Register(registerEvents) }

func registerEvents(r chi.Router, d deps.Deps) {
	r.Get("/api/events", handlers.Events(d))
}
