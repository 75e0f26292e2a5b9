package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
)

// keepaliveInterval paces SSE comments that hold proxies open and
// double as the session liveness signal.
const keepaliveInterval = 15 * time.Second

// Events is the server-sent event stream a surface subscribes to. The
// first event carries the session id the surface echoes back in
// subsequent messages.
func Events(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		surface := notify.SurfacePanel
		if r.URL.Query().Get("surface") == string(notify.SurfaceOverlay) {
			surface = notify.SurfaceOverlay
		}

		session := d.Hub.Register(surface)
		defer d.Hub.Unregister(session.ID)

		d.Logger.Info("session connected",
			logger.String("session_id", session.ID),
			logger.String("surface", string(surface)))

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		fmt.Fprintf(w, "event: session\ndata: {\"sessionId\":%q}\n\n", session.ID)
		flusher.Flush()

		keepalive := time.NewTicker(keepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				d.Logger.Info("session disconnected",
					logger.String("session_id", session.ID))
				return

			case ev := <-session.Events:
				data, err := json.Marshal(ev)
				if err != nil {
					d.Logger.Warn("failed to encode event", logger.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
				flusher.Flush()

			case <-keepalive.C:
				// The stream itself proves the surface is still there.
				d.Hub.Touch(session.ID)
				fmt.Fprint(w, ": keepalive\n\n")
				flusher.Flush()
			}
		}
	}
}
