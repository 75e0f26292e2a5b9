package redis

// The entire persisted state lives in three top-level records, each one
// JSON value under its own key. Every mutation is a whole-record
// read-modify-write; redis gives last-write-wins per key and nothing
// more.
const (
	// KeySettings holds the flat settings record.
	KeySettings = "seekmark:settings"
	// KeyTags holds the ordered list of lowercase tag names.
	KeyTags = "seekmark:tags"
	// KeyBookmarks holds the videoId -> bookmark list mapping.
	KeyBookmarks = "seekmark:bookmarks"
)
