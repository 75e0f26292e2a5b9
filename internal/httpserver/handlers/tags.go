package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/domain"
	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
)

type tagsResponse struct {
	Success bool     `json:"success"`
	Tags    []string `json:"tags"`
}

// ListTags returns the tag registry.
func ListTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := d.Store.Tags(r.Context())
		if err != nil {
			storageError(w, d, "list tags", err)
			return
		}
		writeJSON(w, http.StatusOK, tagsResponse{Success: true, Tags: tags})
	}
}

type addTagRequest struct {
	Name string `json:"name"`
}

// AddTag registers a new tag name.
func AddTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		tags, err := d.Store.AddTag(r.Context(), req.Name)
		switch {
		case errors.Is(err, domain.ErrEmptyTagName):
			writeError(w, http.StatusBadRequest, "tag name cannot be empty")
			return
		case errors.Is(err, domain.ErrDuplicateTag):
			writeError(w, http.StatusConflict, "tag already exists")
			return
		case err != nil:
			storageError(w, d, "add tag", err)
			return
		}

		d.Hub.Publish(notify.Event{Action: "tagsUpdated", Payload: tags})
		writeJSON(w, http.StatusCreated, tagsResponse{Success: true, Tags: tags})
	}
}

// RemoveTag deletes a tag and strips it from every bookmark.
func RemoveTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		tags, err := d.Store.RemoveTag(r.Context(), name)
		if err != nil {
			storageError(w, d, "remove tag", err)
			return
		}

		d.Hub.Publish(notify.Event{Action: "tagsUpdated", Payload: tags})
		d.Logger.Info("tag removed", logger.String("tag", name))
		writeJSON(w, http.StatusOK, tagsResponse{Success: true, Tags: tags})
	}
}
