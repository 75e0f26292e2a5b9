package domain

import (
	"fmt"
	"testing"
	"time"
)

func timedBookmarks(times ...float64) []Bookmark {
	list := make([]Bookmark, 0, len(times))
	for i, at := range times {
		list = append(list, Bookmark{
			ID:      fmt.Sprintf("id-%d", i),
			VideoID: "vid",
			Time:    at,
		})
	}
	return list
}

func TestApplyFilterEmptyMatchesAll(t *testing.T) {
	list := timedBookmarks(5, 65, 3665)
	got := ApplyFilter(list, Filter{})
	if len(got) != 3 {
		t.Errorf("ApplyFilter() with empty filter returned %d entries, want 3", len(got))
	}
}

func TestApplyFilterFormattedTimeSubstring(t *testing.T) {
	list := timedBookmarks(5, 65, 3665)

	tests := []struct {
		term    string
		wantIDs []string
	}{
		// "1:05" also matches "1:01:05" by the substring rule; that
		// ambiguous overlap is intentional behavior.
		{term: "1:05", wantIDs: []string{"id-1", "id-2"}},
		{term: "0:05", wantIDs: []string{"id-0"}},
		{term: "1:01:05", wantIDs: []string{"id-2"}},
		{term: "9:99", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := ApplyFilter(list, Filter{SearchTerm: tt.term})
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ApplyFilter(%q) returned %d entries, want %d", tt.term, len(got), len(tt.wantIDs))
			}
			for i, b := range got {
				if b.ID != tt.wantIDs[i] {
					t.Errorf("ApplyFilter(%q)[%d] = %s, want %s", tt.term, i, b.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestApplyFilterNoteText(t *testing.T) {
	list := []Bookmark{
		{ID: "a", Note: "<b>Great Goal</b> by the keeper"},
		{ID: "b", Note: "boring part"},
		{ID: "c", Note: ""},
	}

	got := ApplyFilter(list, Filter{SearchTerm: "great goal"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ApplyFilter() = %v, want single entry a", got)
	}
}

func TestApplyFilterTag(t *testing.T) {
	list := []Bookmark{
		{ID: "a", Tags: []string{"funny", "review"}},
		{ID: "b", Tags: []string{"review"}},
		{ID: "c"},
	}

	got := ApplyFilter(list, Filter{Tag: "funny"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ApplyFilter() tag filter = %v, want single entry a", got)
	}
}

func TestApplyFilterSearchAndTagCombined(t *testing.T) {
	list := []Bookmark{
		{ID: "a", Note: "goal", Tags: []string{"funny"}},
		{ID: "b", Note: "goal", Tags: []string{"review"}},
	}

	got := ApplyFilter(list, Filter{SearchTerm: "goal", Tag: "review"})
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("ApplyFilter() combined = %v, want single entry b", got)
	}
}

func TestPaginate(t *testing.T) {
	list := timedBookmarks(make([]float64, 25)...)

	tests := []struct {
		name           string
		page, size     int
		wantPage       int
		wantTotalPages int
		wantItems      int
	}{
		{name: "first page", page: 1, size: 10, wantPage: 1, wantTotalPages: 3, wantItems: 10},
		{name: "last partial page", page: 3, size: 10, wantPage: 3, wantTotalPages: 3, wantItems: 5},
		{name: "page past end clamps", page: 4, size: 10, wantPage: 3, wantTotalPages: 3, wantItems: 5},
		{name: "page below one clamps", page: 0, size: 10, wantPage: 1, wantTotalPages: 3, wantItems: 10},
		{name: "size below one treated as one", page: 2, size: 0, wantPage: 2, wantTotalPages: 25, wantItems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(list, tt.page, tt.size)
			if got.Number != tt.wantPage {
				t.Errorf("Paginate() page = %d, want %d", got.Number, tt.wantPage)
			}
			if got.TotalPages != tt.wantTotalPages {
				t.Errorf("Paginate() totalPages = %d, want %d", got.TotalPages, tt.wantTotalPages)
			}
			if len(got.Items) != tt.wantItems {
				t.Errorf("Paginate() items = %d, want %d", len(got.Items), tt.wantItems)
			}
			if got.Total != 25 {
				t.Errorf("Paginate() total = %d, want 25", got.Total)
			}
		})
	}
}

func TestPaginateEmptyList(t *testing.T) {
	got := Paginate(nil, 1, 10)
	if got.TotalPages != 1 {
		t.Errorf("Paginate() totalPages = %d, want 1 for empty list", got.TotalPages)
	}
	if len(got.Items) != 0 {
		t.Errorf("Paginate() items = %d, want 0", len(got.Items))
	}
}

func TestSortByCreatedDesc(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	list := []Bookmark{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
	}

	SortByCreatedDesc(list)

	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("SortByCreatedDesc()[%d] = %s, want %s", i, list[i].ID, id)
		}
	}
}

func TestGroupByVideo(t *testing.T) {
	list := []Bookmark{
		{ID: "1", VideoID: "v1", VideoTitle: "First"},
		{ID: "2", VideoID: "v2", VideoTitle: "Second"},
		{ID: "3", VideoID: "v1", VideoTitle: "First"},
		{ID: "4", VideoID: "v3"},
	}

	groups := GroupByVideo(list)
	if len(groups) != 3 {
		t.Fatalf("GroupByVideo() = %d groups, want 3", len(groups))
	}
	if groups[0].VideoID != "v1" || len(groups[0].Bookmarks) != 2 {
		t.Errorf("GroupByVideo() first group = %s with %d entries, want v1 with 2", groups[0].VideoID, len(groups[0].Bookmarks))
	}
	if groups[1].VideoID != "v2" {
		t.Errorf("GroupByVideo() second group = %s, want v2", groups[1].VideoID)
	}
	// Missing title falls back to the video id.
	if groups[2].VideoTitle != "Video: v3" {
		t.Errorf("GroupByVideo() fallback title = %q, want %q", groups[2].VideoTitle, "Video: v3")
	}
}
