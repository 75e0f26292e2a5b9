package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/httpserver/handlers"
)

func init() { Register(registerTransfer, requestTimeout()) }

func registerTransfer(r chi.Router, d deps.Deps) {
	r.Get("/api/export", handlers.Export(d))
	r.Post("/api/import", handlers.Import(d))
}
