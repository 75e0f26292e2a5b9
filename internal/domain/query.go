package domain

import (
	"sort"
	"strings"
)

// The query engine is pure: it works over in-memory bookmark slices and
// never touches storage. The store hands out time-sorted lists for the
// single-video view; the aggregate view re-sorts by creation time before
// filtering and paginating.

// Filter selects bookmarks by search term and tag. An empty field
// matches everything.
type Filter struct {
	// SearchTerm matches case-insensitively as a substring of either
	// the note's plain-text rendering or the formatted time string.
	// Formatted-time matching can produce surprising hits ("1:05" is a
	// substring of "1:01:05"); that behavior is deliberate.
	SearchTerm string

	// Tag must be present in the bookmark's tag set when non-empty.
	Tag string
}

// ApplyFilter returns the subsequence of list matching f, preserving
// the input order.
func ApplyFilter(list []Bookmark, f Filter) []Bookmark {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]Bookmark, 0, len(list))
	for _, b := range list {
		if term != "" {
			note := strings.ToLower(SanitizeToText(b.Note))
			if !strings.Contains(note, term) && !strings.Contains(FormatTime(b.Time), term) {
				continue
			}
		}
		if f.Tag != "" && !b.HasTag(f.Tag) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Page is one page of a filtered bookmark sequence.
type Page struct {
	Items      []Bookmark
	Number     int
	TotalPages int
	Total      int
}

// Paginate slices list into the requested page. TotalPages is at least
// one even for an empty list, and the page number is clamped to
// [1, TotalPages]. A size below one is treated as one.
func Paginate(list []Bookmark, page, size int) Page {
	if size < 1 {
		size = 1
	}
	total := (len(list) + size - 1) / size
	if total < 1 {
		total = 1
	}
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * size
	end := start + size
	if start > len(list) {
		start = len(list)
	}
	if end > len(list) {
		end = len(list)
	}

	return Page{
		Items:      list[start:end],
		Number:     page,
		TotalPages: total,
		Total:      len(list),
	}
}

// SortByTime orders list ascending by time offset, in place.
func SortByTime(list []Bookmark) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Time < list[j].Time
	})
}

// SortByCreatedDesc orders list newest-first by creation timestamp, in
// place. Used by the cross-video aggregate view.
func SortByCreatedDesc(list []Bookmark) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// VideoGroup is one video's slice of an aggregate page.
type VideoGroup struct {
	VideoID    string     `json:"videoId"`
	VideoTitle string     `json:"videoTitle"`
	Bookmarks  []Bookmark `json:"bookmarks"`
}

// GroupByVideo buckets an already paginated aggregate sequence by owning
// video, in first-appearance order. The group title comes from the
// first bookmark's snapshot.
func GroupByVideo(list []Bookmark) []VideoGroup {
	var groups []VideoGroup
	index := make(map[string]int)

	for _, b := range list {
		i, ok := index[b.VideoID]
		if !ok {
			i = len(groups)
			index[b.VideoID] = i
			title := b.VideoTitle
			if title == "" {
				title = "Video: " + b.VideoID
			}
			groups = append(groups, VideoGroup{VideoID: b.VideoID, VideoTitle: title})
		}
		groups[i].Bookmarks = append(groups[i].Bookmarks, b)
	}
	return groups
}
