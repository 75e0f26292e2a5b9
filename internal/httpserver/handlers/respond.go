package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/logger"
)

// writeJSON serializes v with a status code. Encoding failures are
// ignored at this point, the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError sends the uniform failure envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// storageError logs a persistence failure and answers 500 without
// leaking the underlying error to the client.
func storageError(w http.ResponseWriter, d deps.Deps, op string, err error) {
	d.Logger.Error("storage operation failed",
		logger.String("op", op),
		logger.Error(err))
	writeError(w, http.StatusInternalServerError, "storage unavailable")
}
