package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/httpserver/handlers"
)

func init() { Register(registerHealthz, requestTimeout()) }

func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/api/healthz", handlers.Healthz(d))
}
