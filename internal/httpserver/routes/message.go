package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/httpserver/handlers"
)

func init() { Register(registerMessage, requestTimeout()) }

func registerMessage(r chi.Router, d deps.Deps) {
	r.Post("/api/message", handlers.Message(d))
}
