package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seekmark/seekmark/internal/domain"
	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
)

// messageRequest is the action envelope the surfaces post. The payload
// shape depends on the action.
type messageRequest struct {
	Action    string `json:"action"`
	SessionID string `json:"sessionId"`

	VideoID     string   `json:"videoId"`
	VideoTitle  string   `json:"videoTitle"`
	BookmarkID  string   `json:"bookmarkId"`
	Time        *float64 `json:"time"`
	CurrentTime *float64 `json:"currentTime"`
	Note        string   `json:"note"`
	Tags        []string `json:"tags"`
}

// Message dispatches the cross-surface action protocol. Every action
// answers 200 with a success flag; protocol-level failures (no player
// connected, unknown video) ride in the body, not the status code.
func Message(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		d.Logger.Debug("message received",
			logger.String("action", req.Action),
			logger.String("session_id", req.SessionID))

		switch req.Action {
		case "add-bookmark":
			handleAddBookmark(w, r, d, req)
		case "prev-bookmark":
			handleNavMessage(w, r, d, req, "prev")
		case "next-bookmark":
			handleNavMessage(w, r, d, req, "next")
		case "getVideoTitle":
			handleGetVideoTitle(w, r, d, req)
		case "refreshSettings":
			handleRefreshSettings(w, r, d)
		case "jumpToTime":
			handleJumpToTime(w, d, req)
		case "bookmarkDeleted":
			handleBookmarkDeleted(w, r, d, req)
		case "tagsUpdated":
			handleTagsUpdated(w, r, d)
		case "checkInitialization":
			handleCheckInitialization(w, r, d)
		case "videoChanged":
			handleVideoChanged(w, d, req)
		default:
			writeError(w, http.StatusBadRequest, "unknown action: "+req.Action)
		}
	}
}

func handleAddBookmark(w http.ResponseWriter, r *http.Request, d deps.Deps, req messageRequest) {
	if req.VideoID == "" || req.Time == nil {
		writeError(w, http.StatusBadRequest, "videoId and time are required")
		return
	}

	note := req.Note
	tags := req.Tags
	if note == "" || tags == nil {
		settings, found, err := d.Store.Settings(r.Context())
		if err == nil && found {
			if note == "" {
				note = settings.DefaultNoteText
			}
			if tags == nil && settings.DefaultNoteTag != "" {
				tags = []string{settings.DefaultNoteTag}
			}
		}
	}

	b, err := d.Store.CreateBookmark(r.Context(), req.VideoID, *req.Time, note, req.VideoTitle, tags)
	if err != nil {
		storageError(w, d, "create bookmark", err)
		return
	}

	d.Hub.Publish(notify.Event{Action: "bookmarksUpdated", Payload: map[string]string{"videoId": req.VideoID}})
	writeJSON(w, http.StatusOK, bookmarkResponse{Success: true, Bookmark: b})
}

func handleNavMessage(w http.ResponseWriter, r *http.Request, d deps.Deps, req messageRequest, direction string) {
	if req.VideoID == "" || req.CurrentTime == nil {
		writeError(w, http.StatusBadRequest, "videoId and currentTime are required")
		return
	}

	list, err := d.Store.ListBookmarks(r.Context(), req.VideoID)
	if err != nil {
		storageError(w, d, "list bookmarks", err)
		return
	}

	var target domain.Bookmark
	var ok bool
	if direction == "prev" {
		target, ok = domain.PrevBookmark(list, *req.CurrentTime)
	} else {
		target, ok = domain.NextBookmark(list, *req.CurrentTime)
	}
	if !ok {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Error: "no bookmarks"})
		return
	}

	d.Hub.PublishTo(notify.SurfaceOverlay, notify.Event{Action: "jumpToTime", Payload: map[string]float64{"time": target.Time}})
	writeJSON(w, http.StatusOK, bookmarkResponse{Success: true, Bookmark: target})
}

type videoTitleResponse struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
}

func handleGetVideoTitle(w http.ResponseWriter, r *http.Request, d deps.Deps, req messageRequest) {
	videoID := req.VideoID
	if videoID == "" && req.SessionID != "" {
		videoID, _ = d.Hub.CurrentVideo(req.SessionID)
	}
	if videoID == "" {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Error: "no video"})
		return
	}

	list, err := d.Store.ListBookmarks(r.Context(), videoID)
	if err != nil {
		storageError(w, d, "list bookmarks", err)
		return
	}
	writeJSON(w, http.StatusOK, videoTitleResponse{Success: true, Title: videoTitle(list)})
}

func handleRefreshSettings(w http.ResponseWriter, r *http.Request, d deps.Deps) {
	settings, found, err := d.Store.Settings(r.Context())
	if err != nil {
		storageError(w, d, "get settings", err)
		return
	}
	if !found {
		settings = domain.DefaultSettings()
	}

	d.Hub.Publish(notify.Event{Action: "refreshSettings", Payload: settings})
	writeJSON(w, http.StatusOK, settingsResponse{Success: true, Settings: settings})
}

func handleJumpToTime(w http.ResponseWriter, d deps.Deps, req messageRequest) {
	if req.Time == nil {
		writeError(w, http.StatusBadRequest, "time is required")
		return
	}
	if !d.Hub.HasOverlay() {
		writeJSON(w, http.StatusOK, errorResponse{Success: false, Error: "no active player"})
		return
	}

	d.Hub.PublishTo(notify.SurfaceOverlay, notify.Event{Action: "jumpToTime", Payload: map[string]float64{"time": *req.Time}})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func handleBookmarkDeleted(w http.ResponseWriter, r *http.Request, d deps.Deps, req messageRequest) {
	if req.VideoID == "" || req.BookmarkID == "" {
		writeError(w, http.StatusBadRequest, "videoId and bookmarkId are required")
		return
	}

	if err := d.Store.DeleteBookmark(r.Context(), req.VideoID, req.BookmarkID); err != nil {
		storageError(w, d, "delete bookmark", err)
		return
	}

	d.Hub.Publish(notify.Event{Action: "bookmarkDeleted", Payload: map[string]string{
		"videoId":    req.VideoID,
		"bookmarkId": req.BookmarkID,
	}})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func handleTagsUpdated(w http.ResponseWriter, r *http.Request, d deps.Deps) {
	tags, err := d.Store.Tags(r.Context())
	if err != nil {
		storageError(w, d, "list tags", err)
		return
	}

	d.Hub.Publish(notify.Event{Action: "tagsUpdated", Payload: tags})
	writeJSON(w, http.StatusOK, tagsResponse{Success: true, Tags: tags})
}

type initializationResponse struct {
	Success     bool `json:"success"`
	Initialized bool `json:"initialized"`
}

func handleCheckInitialization(w http.ResponseWriter, r *http.Request, d deps.Deps) {
	if err := d.Store.EnsureDefaults(r.Context(), domain.DefaultSettings(), domain.DefaultTags()); err != nil {
		storageError(w, d, "ensure defaults", err)
		return
	}
	writeJSON(w, http.StatusOK, initializationResponse{Success: true, Initialized: true})
}

func handleVideoChanged(w http.ResponseWriter, d deps.Deps, req messageRequest) {
	if req.VideoID == "" {
		writeError(w, http.StatusBadRequest, "videoId is required")
		return
	}
	if req.SessionID != "" {
		d.Hub.SetVideo(req.SessionID, req.VideoID)
	}

	d.Hub.Publish(notify.Event{Action: "videoChanged", Payload: map[string]string{"videoId": req.VideoID}})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
