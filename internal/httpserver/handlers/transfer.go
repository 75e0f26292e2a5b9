package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/seekmark/seekmark/internal/codec"
	"github.com/seekmark/seekmark/internal/domain"
	"github.com/seekmark/seekmark/internal/httpserver/deps"
	"github.com/seekmark/seekmark/internal/logger"
	"github.com/seekmark/seekmark/internal/notify"
)

// maxImportBytes caps the import body size.
const maxImportBytes = 16 << 20

// Export downloads the bookmark collection as JSON. With a videoId it
// exports that video wrapped in metadata, without one it exports the
// raw mapping of everything.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := r.URL.Query().Get("videoId")
		now := d.TimeNow()

		var data []byte
		var filename string

		if videoID == "" {
			byVideo, err := d.Store.BookmarkMap(r.Context())
			if err != nil {
				storageError(w, d, "export bookmarks", err)
				return
			}
			data, err = codec.ExportAll(byVideo)
			if err != nil {
				storageError(w, d, "encode export", err)
				return
			}
			filename = fmt.Sprintf("bookmarks_export_%s.json", now.Format("2006-01-02"))
		} else {
			list, err := d.Store.ListBookmarks(r.Context(), videoID)
			if err != nil {
				storageError(w, d, "export bookmarks", err)
				return
			}
			if len(list) == 0 {
				writeError(w, http.StatusNotFound, "no bookmarks for this video")
				return
			}
			title := videoTitle(list)
			data, err = codec.ExportVideo(videoID, title, list, d.WatchURLBase, now)
			if err != nil {
				storageError(w, d, "encode export", err)
				return
			}
			filename = codec.ExportFilename(title, videoID)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

type importResponse struct {
	Success bool `json:"success"`
	Added   int  `json:"added"`
}

// Import merges an uploaded export document into the store. The merge
// never overwrites existing bookmarks.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}

		incoming, err := codec.ParseImport(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		added, err := d.Store.ImportMerge(r.Context(), incoming)
		if err != nil {
			storageError(w, d, "import bookmarks", err)
			return
		}

		if added > 0 {
			d.Hub.Publish(notify.Event{Action: "bookmarksImported", Payload: map[string]int{"added": added}})
		}
		d.Logger.Info("bookmarks imported",
			logger.Int("added", added),
			logger.Int("videos", len(incoming)))
		writeJSON(w, http.StatusOK, importResponse{Success: true, Added: added})
	}
}

// videoTitle picks the title snapshot from a video's bookmark list.
func videoTitle(list []domain.Bookmark) string {
	for _, b := range list {
		if b.VideoTitle != "" {
			return b.VideoTitle
		}
	}
	return ""
}
