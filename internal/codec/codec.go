// Package codec implements the JSON transfer format used to move
// bookmark collections between installations.
package codec

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/seekmark/seekmark/internal/domain"
)

// DefaultWatchURLBase prefixes the video id in export metadata.
const DefaultWatchURLBase = "https://www.youtube.com/watch?v="

// Metadata describes a single-video export.
type Metadata struct {
	ExportDate    time.Time `json:"exportDate"`
	VideoID       string    `json:"videoId"`
	VideoTitle    string    `json:"videoTitle"`
	BookmarkCount int       `json:"bookmarkCount"`
	VideoURL      string    `json:"videoUrl"`
}

// envelope is the single-video export document. A full export is the
// raw videoId -> bookmark mapping with no wrapper, and the importer
// accepts either shape.
type envelope struct {
	Metadata  Metadata                     `json:"metadata"`
	Bookmarks map[string][]domain.Bookmark `json:"bookmarks"`
}

// ExportAll serializes the whole mapping as an indented document.
func ExportAll(byVideo map[string][]domain.Bookmark) ([]byte, error) {
	if byVideo == nil {
		byVideo = map[string][]domain.Bookmark{}
	}
	data, err := json.MarshalIndent(byVideo, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// ExportVideo serializes one video's bookmarks wrapped in metadata.
func ExportVideo(videoID, videoTitle string, list []domain.Bookmark, watchURLBase string, now time.Time) ([]byte, error) {
	if videoTitle == "" {
		videoTitle = "Untitled Video"
	}
	if watchURLBase == "" {
		watchURLBase = DefaultWatchURLBase
	}
	if list == nil {
		list = []domain.Bookmark{}
	}

	doc := envelope{
		Metadata: Metadata{
			ExportDate:    now,
			VideoID:       videoID,
			VideoTitle:    videoTitle,
			BookmarkCount: len(list),
			VideoURL:      watchURLBase + videoID,
		},
		Bookmarks: map[string][]domain.Bookmark{videoID: list},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

var filenameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ExportFilename builds a download name from the video title and id.
// The title is reduced to a safe slug and capped at 50 characters.
func ExportFilename(videoTitle, videoID string) string {
	slug := filenameUnsafe.ReplaceAllString(videoTitle, "_")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	if slug == "" {
		slug = "video"
	}
	return fmt.Sprintf("bookmarks_%s_%s.json", slug, videoID)
}

// wireBookmark is the lenient import shape. Time is a pointer so a
// document that omits it is told apart from an explicit zero.
type wireBookmark struct {
	ID         string   `json:"id"`
	Time       *float64 `json:"time"`
	Note       string   `json:"note"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"createdAt"`
	VideoTitle string   `json:"videoTitle"`
}

// ParseImport decodes an import document, accepting both the raw
// mapping and the metadata envelope. Every bookmark is validated and
// its note sanitized before anything is returned; one bad entry fails
// the whole document.
func ParseImport(data []byte) (map[string][]domain.Bookmark, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", domain.ErrInvalidFormat)
	}

	// An envelope carries both metadata and bookmarks keys; anything
	// else is treated as the raw mapping.
	raw := top
	meta, hasMeta := top["metadata"]
	inner, hasBookmarks := top["bookmarks"]
	if hasMeta && hasBookmarks {
		var m Metadata
		if err := json.Unmarshal(meta, &m); err != nil {
			return nil, fmt.Errorf("%w: bad metadata", domain.ErrInvalidFormat)
		}
		var innerRaw map[string]json.RawMessage
		if err := json.Unmarshal(inner, &innerRaw); err != nil {
			return nil, fmt.Errorf("%w: bad bookmarks mapping", domain.ErrInvalidFormat)
		}
		raw = innerRaw
	}

	out := make(map[string][]domain.Bookmark, len(raw))
	for videoID, msg := range raw {
		var wires []wireBookmark
		if err := json.Unmarshal(msg, &wires); err != nil {
			return nil, fmt.Errorf("%w: video %s is not a bookmark list", domain.ErrInvalidFormat, videoID)
		}

		list := make([]domain.Bookmark, 0, len(wires))
		for _, w := range wires {
			if w.ID == "" || w.Time == nil || *w.Time < 0 {
				return nil, fmt.Errorf("%w: video %s", domain.ErrInvalidBookmark, videoID)
			}
			createdAt, _ := time.Parse(time.RFC3339, w.CreatedAt)
			tags := w.Tags
			if tags == nil {
				tags = []string{}
			}
			list = append(list, domain.Bookmark{
				ID:         w.ID,
				VideoID:    videoID,
				Time:       *w.Time,
				Note:       domain.Sanitize(w.Note),
				Tags:       tags,
				CreatedAt:  createdAt,
				VideoTitle: w.VideoTitle,
			})
		}
		out[videoID] = list
	}
	return out, nil
}
