package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/httpserver/handlers"
)

func init() { Register(registerReload, requestTimeout()) }

func registerReload(r chi.Router, d deps.Deps) {
	r.Post("/api/reload", handlers.Reload(d))
}
