package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/seekmark/seekmark/internal/domain"
	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
)

type bookmarkListResponse struct {
	Success   bool              `json:"success"`
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

// ListBookmarks returns one video's bookmarks sorted by time.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := r.URL.Query().Get("videoId")
		if videoID == "" {
			writeError(w, http.StatusBadRequest, "videoId is required")
			return
		}

		list, err := d.Store.ListBookmarks(r.Context(), videoID)
		if err != nil {
			storageError(w, d, "list bookmarks", err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarkListResponse{Success: true, Bookmarks: list})
	}
}

type allBookmarksResponse struct {
	Success    bool                `json:"success"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	Total      int                 `json:"total"`
	Groups     []domain.VideoGroup `json:"groups"`
}

// ListAllBookmarks returns the cross-video view: filtered, newest
// first, paginated, grouped by video.
func ListAllBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		all, err := d.Store.ListAllBookmarks(r.Context())
		if err != nil {
			storageError(w, d, "list all bookmarks", err)
			return
		}

		filtered := domain.ApplyFilter(all, domain.Filter{
			SearchTerm: q.Get("search"),
			Tag:        q.Get("tag"),
		})
		domain.SortByCreatedDesc(filtered)

		pageSize := queryInt(q.Get("pageSize"), 0)
		if pageSize <= 0 {
			pageSize = storedPageSize(r, d)
		}
		page := domain.Paginate(filtered, queryInt(q.Get("page"), 1), pageSize)

		writeJSON(w, http.StatusOK, allBookmarksResponse{
			Success:    true,
			Page:       page.Number,
			TotalPages: page.TotalPages,
			Total:      page.Total,
			Groups:     domain.GroupByVideo(page.Items),
		})
	}
}

type createBookmarkRequest struct {
	VideoID    string   `json:"videoId"`
	Time       *float64 `json:"time"`
	Note       string   `json:"note"`
	VideoTitle string   `json:"videoTitle"`
	Tags       []string `json:"tags"`
}

type bookmarkResponse struct {
	Success  bool            `json:"success"`
	Bookmark domain.Bookmark `json:"bookmark"`
}

// CreateBookmark appends a bookmark and notifies connected surfaces.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.VideoID == "" || req.Time == nil {
			writeError(w, http.StatusBadRequest, "videoId and time are required")
			return
		}

		b, err := d.Store.CreateBookmark(r.Context(), req.VideoID, *req.Time, req.Note, req.VideoTitle, req.Tags)
		if err != nil {
			storageError(w, d, "create bookmark", err)
			return
		}

		d.Hub.Publish(notify.Event{Action: "bookmarksUpdated", Payload: map[string]string{"videoId": req.VideoID}})
		d.Logger.Info("bookmark created",
			logger.String("video_id", req.VideoID),
			logger.Float64("time", b.Time))
		writeJSON(w, http.StatusCreated, bookmarkResponse{Success: true, Bookmark: b})
	}
}

type updateBookmarkRequest struct {
	VideoID string   `json:"videoId"`
	Time    *float64 `json:"time"`
	Note    string   `json:"note"`
	Tags    []string `json:"tags"`
}

// UpdateBookmark edits note, tags and time of an existing bookmark. A
// bookmark deleted in the meantime is not an error: the response is
// still a success so stale editors fail softly.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updateBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.VideoID == "" {
			writeError(w, http.StatusBadRequest, "videoId is required")
			return
		}

		at := -1.0
		if req.Time != nil {
			at = *req.Time
		}
		b, found, err := d.Store.UpdateBookmark(r.Context(), req.VideoID, id, at, req.Note, req.Tags)
		if err != nil {
			storageError(w, d, "update bookmark", err)
			return
		}
		if !found {
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
			return
		}

		d.Hub.Publish(notify.Event{Action: "bookmarksUpdated", Payload: map[string]string{"videoId": req.VideoID}})
		writeJSON(w, http.StatusOK, bookmarkResponse{Success: true, Bookmark: b})
	}
}

// DeleteBookmark removes a bookmark. Idempotent, deleting twice still
// succeeds.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		videoID := r.URL.Query().Get("videoId")
		if videoID == "" {
			writeError(w, http.StatusBadRequest, "videoId is required")
			return
		}

		if err := d.Store.DeleteBookmark(r.Context(), videoID, id); err != nil {
			storageError(w, d, "delete bookmark", err)
			return
		}

		d.Hub.Publish(notify.Event{Action: "bookmarkDeleted", Payload: map[string]string{
			"videoId":    videoID,
			"bookmarkId": id,
		}})
		d.Logger.Info("bookmark deleted",
			logger.String("video_id", videoID),
			logger.String("bookmark_id", id))
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// NavBookmark resolves the prev/next bookmark relative to the current
// playhead, wrapping around the ends of the list.
func NavBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		videoID := q.Get("videoId")
		if videoID == "" {
			writeError(w, http.StatusBadRequest, "videoId is required")
			return
		}
		direction := q.Get("direction")
		if direction != "prev" && direction != "next" {
			writeError(w, http.StatusBadRequest, "direction must be prev or next")
			return
		}
		current, err := strconv.ParseFloat(q.Get("current"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "current must be a number")
			return
		}

		list, err := d.Store.ListBookmarks(r.Context(), videoID)
		if err != nil {
			storageError(w, d, "list bookmarks", err)
			return
		}

		var target domain.Bookmark
		var ok bool
		if direction == "prev" {
			target, ok = domain.PrevBookmark(list, current)
		} else {
			target, ok = domain.NextBookmark(list, current)
		}
		if !ok {
			writeJSON(w, http.StatusOK, errorResponse{Success: false, Error: "no bookmarks"})
			return
		}

		d.Hub.PublishTo(notify.SurfaceOverlay, notify.Event{Action: "jumpToTime", Payload: map[string]float64{"time": target.Time}})
		writeJSON(w, http.StatusOK, bookmarkResponse{Success: true, Bookmark: target})
	}
}

// queryInt parses an integer query value, falling back on def.
func queryInt(s string, def int) int {
	if s == "" {
		return def
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return def
}

// storedPageSize reads the page size from the settings record,
// falling back on the built-in default when the record is missing.
func storedPageSize(r *http.Request, d deps.Deps) int {
	settings, found, err := d.Store.Settings(r.Context())
	if err != nil || !found || settings.BookmarksPerPage <= 0 {
		return domain.DefaultSettings().BookmarksPerPage
	}
	return settings.BookmarksPerPage
}
