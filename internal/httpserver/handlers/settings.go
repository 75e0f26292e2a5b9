package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seekmark/seekmark/internal/domain"
	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/notify"
)

type settingsResponse struct {
	Success  bool            `json:"success"`
	Settings domain.Settings `json:"settings"`
}

// GetSettings returns the settings record, the built-in defaults if
// nothing has been persisted yet.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, found, err := d.Store.Settings(r.Context())
		if err != nil {
			storageError(w, d, "get settings", err)
			return
		}
		if !found {
			settings = domain.DefaultSettings()
		}
		writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: settings})
	}
}

// SaveSettings replaces the settings record and tells every surface to
// re-read it.
func SaveSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings domain.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := d.Store.SaveSettings(r.Context(), settings); err != nil {
			storageError(w, d, "save settings", err)
			return
		}

		d.Hub.Publish(notify.Event{Action: "refreshSettings", Payload: settings})
		writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: settings})
	}
}
