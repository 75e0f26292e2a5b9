package domain

// Settings is the flat configuration record shared by both UI surfaces.
// It is read and written as a whole; there are no partial-field updates.
type Settings struct {
	MarkerColor      string `json:"markerColor" yaml:"markerColor"`
	MarkerShape      string `json:"markerShape" yaml:"markerShape"`
	MarkerSize       int    `json:"markerSize" yaml:"markerSize"`
	DarkMode         bool   `json:"darkMode" yaml:"darkMode"`
	BookmarksPerPage int    `json:"bookmarksPerPage" yaml:"bookmarksPerPage"`
	ShowNoteEditor   bool   `json:"showNoteEditor" yaml:"showNoteEditor"`
	DefaultNoteText  string `json:"defaultNoteText" yaml:"defaultNoteText"`
	DefaultNoteTag   string `json:"defaultNoteTag" yaml:"defaultNoteTag"`
	PauseOnBookmark  bool   `json:"pauseOnBookmark" yaml:"pauseOnBookmark"`
}

// DefaultSettings returns the record installed on first run.
func DefaultSettings() Settings {
	return Settings{
		MarkerColor:      "#ff0000",
		MarkerShape:      "circle",
		MarkerSize:       6,
		DarkMode:         false,
		BookmarksPerPage: 10,
		ShowNoteEditor:   true,
		DefaultNoteText:  "",
		DefaultNoteTag:   "",
		PauseOnBookmark:  true,
	}
}

// DefaultTags returns the tag registry installed on first run.
func DefaultTags() []string {
	return []string{"important", "review", "funny", "question", "custom"}
}
