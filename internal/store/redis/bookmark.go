package redis

import (
	"context"
	"time"

	"github.com/seekmark/seekmark/internal/domain"
)

// BookmarkMap retrieves the whole videoId -> bookmark list mapping,
// empty when absent.
func (s *Store) BookmarkMap(ctx context.Context) (map[string][]domain.Bookmark, error) {
	byVideo := map[string][]domain.Bookmark{}
	if _, err := s.getRecord(ctx, KeyBookmarks, &byVideo); err != nil {
		return nil, err
	}
	return byVideo, nil
}

// SaveBookmarkMap replaces the bookmark record as a whole.
func (s *Store) SaveBookmarkMap(ctx context.Context, byVideo map[string][]domain.Bookmark) error {
	return s.setRecord(ctx, KeyBookmarks, byVideo)
}

// CreateBookmark appends a new bookmark for a video and persists the
// record. The id and creation time are assigned here; a negative
// capture time is clamped to zero.
func (s *Store) CreateBookmark(ctx context.Context, videoID string, at float64, note, videoTitle string, tags []string) (domain.Bookmark, error) {
	if at < 0 {
		at = 0
	}
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	bookmark := domain.Bookmark{
		ID:         domain.NewBookmarkID(now),
		VideoID:    videoID,
		Time:       at,
		Note:       domain.Sanitize(note),
		Tags:       tags,
		CreatedAt:  now,
		VideoTitle: videoTitle,
	}

	byVideo, err := s.BookmarkMap(ctx)
	if err != nil {
		return domain.Bookmark{}, err
	}

	list := append(byVideo[videoID], bookmark)
	domain.SortByTime(list)
	byVideo[videoID] = list

	if err := s.SaveBookmarkMap(ctx, byVideo); err != nil {
		return domain.Bookmark{}, err
	}
	return bookmark, nil
}

// UpdateBookmark replaces the note, tags and capture time of an
// existing bookmark. A missing video or id is a silent no-op: the
// bookmark may have been deleted by another surface in the meantime.
// Identity fields are never touched.
func (s *Store) UpdateBookmark(ctx context.Context, videoID, id string, at float64, note string, tags []string) (domain.Bookmark, bool, error) {
	byVideo, err := s.BookmarkMap(ctx)
	if err != nil {
		return domain.Bookmark{}, false, err
	}

	list, ok := byVideo[videoID]
	if !ok {
		return domain.Bookmark{}, false, nil
	}

	var updated domain.Bookmark
	found := false
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if at >= 0 {
			list[i].Time = at
		}
		list[i].Note = domain.Sanitize(note)
		if tags != nil {
			list[i].Tags = tags
		}
		updated = list[i]
		found = true
		break
	}
	if !found {
		return domain.Bookmark{}, false, nil
	}

	domain.SortByTime(list)
	byVideo[videoID] = list

	if err := s.SaveBookmarkMap(ctx, byVideo); err != nil {
		return domain.Bookmark{}, false, err
	}
	return updated, true, nil
}

// DeleteBookmark removes a bookmark by id. Deleting an absent bookmark
// still persists the record and succeeds, so retries stay idempotent.
func (s *Store) DeleteBookmark(ctx context.Context, videoID, id string) error {
	byVideo, err := s.BookmarkMap(ctx)
	if err != nil {
		return err
	}

	list := byVideo[videoID]
	kept := list[:0]
	for _, b := range list {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		delete(byVideo, videoID)
	} else {
		byVideo[videoID] = kept
	}

	return s.SaveBookmarkMap(ctx, byVideo)
}

// ListBookmarks returns the bookmarks of one video sorted by capture
// time. An unknown video yields an empty list.
func (s *Store) ListBookmarks(ctx context.Context, videoID string) ([]domain.Bookmark, error) {
	byVideo, err := s.BookmarkMap(ctx)
	if err != nil {
		return nil, err
	}

	list := byVideo[videoID]
	if list == nil {
		return []domain.Bookmark{}, nil
	}
	domain.SortByTime(list)
	return list, nil
}

// ListAllBookmarks flattens the whole record into one slice. Each entry
// carries the video id of the mapping key it was stored under.
func (s *Store) ListAllBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	byVideo, err := s.BookmarkMap(ctx)
	if err != nil {
		return nil, err
	}

	all := []domain.Bookmark{}
	for videoID, list := range byVideo {
		for _, b := range list {
			b.VideoID = videoID
			all = append(all, b)
		}
	}
	return all, nil
}

// ImportMerge folds imported bookmarks into the stored record. The
// merge is additive only: an incoming id that already exists for the
// video is skipped, nothing is ever overwritten or removed. Returns
// the number of bookmarks actually added.
func (s *Store) ImportMerge(ctx context.Context, incoming map[string][]domain.Bookmark) (int, error) {
	byVideo, err := s.BookmarkMap(ctx)
	if err != nil {
		return 0, err
	}

	added := 0
	for videoID, list := range incoming {
		existing := byVideo[videoID]
		seen := make(map[string]bool, len(existing))
		for _, b := range existing {
			seen[b.ID] = true
		}
		for _, b := range list {
			if seen[b.ID] {
				continue
			}
			b.VideoID = videoID
			existing = append(existing, b)
			seen[b.ID] = true
			added++
		}
		domain.SortByTime(existing)
		byVideo[videoID] = existing
	}

	if added == 0 {
		return 0, nil
	}
	if err := s.SaveBookmarkMap(ctx, byVideo); err != nil {
		return 0, err
	}
	return added, nil
}
