package redis

import (
	"context"
	"strings"

	"github.com/seekmark/seekmark/internal/domain"
)

// AddTag registers a new tag name. Names are normalized to lowercase
// and trimmed before the duplicate check.
func (s *Store) AddTag(ctx context.Context, name string) ([]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, domain.ErrEmptyTagName
	}

	tags, err := s.Tags(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		if t == name {
			return nil, domain.ErrDuplicateTag
		}
	}

	tags = append(tags, name)
	if err := s.setRecord(ctx, KeyTags, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// RemoveTag deletes a tag from the registry and then strips it from
// every bookmark that carries it. The two writes are separate: a crash
// between them leaves bookmarks referencing an unregistered tag, which
// readers must tolerate. Removing an unknown tag is a silent no-op.
func (s *Store) RemoveTag(ctx context.Context, name string) ([]string, error) {
	tags, err := s.Tags(ctx)
	if err != nil {
		return nil, err
	}

	kept := tags[:0]
	for _, t := range tags {
		if t != name {
			kept = append(kept, t)
		}
	}
	if err := s.setRecord(ctx, KeyTags, kept); err != nil {
		return nil, err
	}

	byVideo, err := s.BookmarkMap(ctx)
	if err != nil {
		return nil, err
	}

	changed := false
	for videoID, list := range byVideo {
		for i, b := range list {
			if !b.HasTag(name) {
				continue
			}
			filtered := make([]string, 0, len(b.Tags))
			for _, t := range b.Tags {
				if t != name {
					filtered = append(filtered, t)
				}
			}
			list[i].Tags = filtered
			changed = true
		}
		byVideo[videoID] = list
	}

	if changed {
		if err := s.SaveBookmarkMap(ctx, byVideo); err != nil {
			return nil, err
		}
	}
	return kept, nil
}
