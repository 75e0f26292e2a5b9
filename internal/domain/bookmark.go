package domain

import (
	"strconv"
	"sync"
	"time"
)

// Bookmark is one annotated timestamp on one video.
//
// Within a video's list entries are unique by ID and kept sorted
// ascending by Time after every mutation.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, assigned at creation.
	// Millisecond-based; callers must not assume any ordering value
	// beyond uniqueness.
	ID string `json:"id"`

	// VideoID identifies the owning video.
	VideoID string `json:"videoId"`

	// ─────────────────────────────
	// Annotation (mutable)
	// ─────────────────────────────

	// Time is the seconds offset into the video. Never negative.
	// Primary sort key within a video's list.
	Time float64 `json:"time"`

	// Note is a restricted-HTML rich-text string. Always passed
	// through Sanitize before persisting. May be empty.
	Note string `json:"note"`

	// Tags is the set of tag names attached to this bookmark.
	// Names must exist in the tag registry at assignment time;
	// orphaned names are tolerated after a tag is deleted.
	Tags []string `json:"tags"`

	// ─────────────────────────────
	// Metadata (immutable)
	// ─────────────────────────────

	// CreatedAt is the creation timestamp. Secondary sort key in the
	// cross-video aggregate view (newest first).
	CreatedAt time.Time `json:"createdAt"`

	// VideoTitle is a snapshot of the video's display title at
	// creation time. Never updated afterwards.
	VideoTitle string `json:"videoTitle"`
}

// HasTag reports whether name is in the bookmark's tag set.
func (b *Bookmark) HasTag(name string) bool {
	for _, t := range b.Tags {
		if t == name {
			return true
		}
	}
	return false
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewBookmarkID returns a fresh bookmark identifier derived from the
// current time in milliseconds. Collisions within the same millisecond
// are resolved by bumping past the last issued value, so ids are unique
// for the life of the process.
func NewBookmarkID(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	ms := now.UnixMilli()
	if ms <= lastID {
		ms = lastID + 1
	}
	lastID = ms
	return strconv.FormatInt(ms, 10)
}

// seekThreshold keeps prev/next navigation from re-selecting the
// bookmark the playhead is currently sitting on.
const seekThreshold = 0.5

// PrevBookmark returns the closest bookmark strictly before current,
// wrapping around to the last one when none precedes it. The list must
// be sorted ascending by time.
func PrevBookmark(list []Bookmark, current float64) (Bookmark, bool) {
	if len(list) == 0 {
		return Bookmark{}, false
	}
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Time < current-seekThreshold {
			return list[i], true
		}
	}
	return list[len(list)-1], true
}

// NextBookmark returns the closest bookmark strictly after current,
// wrapping around to the first one when none follows it. The list must
// be sorted ascending by time.
func NextBookmark(list []Bookmark, current float64) (Bookmark, bool) {
	if len(list) == 0 {
		return Bookmark{}, false
	}
	for i := range list {
		if list[i].Time > current+seekThreshold {
			return list[i], true
		}
	}
	return list[0], true
}

// tooltipLimit is the marker tooltip truncation length, in runes.
const tooltipLimit = 50

// TooltipText renders the marker tooltip for a bookmark: the plain-text
// note truncated with an ellipsis, or the formatted time when the note
// is empty.
func (b *Bookmark) TooltipText() string {
	if b.Note == "" {
		return FormatTime(b.Time)
	}
	plain := SanitizeToText(b.Note)
	if plain == "" {
		return FormatTime(b.Time)
	}
	runes := []rune(plain)
	if len(runes) <= tooltipLimit {
		return plain
	}
	return string(runes[:tooltipLimit]) + "..."
}
