package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seekmark/seekmark/internal/domain"
)

// Store owns the three persisted records: settings, tags and bookmarks.
type Store struct {
	client *redis.Client
}

// NewStore creates a new redis-backed store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// getRecord reads and decodes one record. The second return is false
// when the key does not exist yet.
func (s *Store) getRecord(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// setRecord encodes and writes one record, replacing it as a whole.
func (s *Store) setRecord(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// EnsureDefaults installs the first-run state: each of the three records
// is written only if its key is still absent, so an existing record is
// never overwritten.
func (s *Store) EnsureDefaults(ctx context.Context, settings domain.Settings, tags []string) error {
	records := []struct {
		key string
		val any
	}{
		{KeySettings, settings},
		{KeyTags, tags},
		{KeyBookmarks, map[string][]domain.Bookmark{}},
	}

	for _, r := range records {
		data, err := json.Marshal(r.val)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", r.key, err)
		}
		if err := s.client.SetNX(ctx, r.key, data, 0).Err(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", r.key, err)
		}
	}
	return nil
}

// Settings retrieves the settings record. The second return is false
// when no record has been written yet.
func (s *Store) Settings(ctx context.Context) (domain.Settings, bool, error) {
	var settings domain.Settings
	found, err := s.getRecord(ctx, KeySettings, &settings)
	if err != nil {
		return domain.Settings{}, false, err
	}
	return settings, found, nil
}

// SaveSettings replaces the settings record as a whole.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return s.setRecord(ctx, KeySettings, settings)
}

// Tags retrieves the tag registry, empty when absent.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	if _, err := s.getRecord(ctx, KeyTags, &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
