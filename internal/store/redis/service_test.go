package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/seekmark/seekmark/internal/domain"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client), mr
}

func TestEnsureDefaultsInstallsOnce(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.EnsureDefaults(ctx, domain.DefaultSettings(), domain.DefaultTags()); err != nil {
		t.Fatalf("EnsureDefaults() error: %v", err)
	}

	settings, found, err := store.Settings(ctx)
	if err != nil || !found {
		t.Fatalf("Settings() = found %v, err %v", found, err)
	}
	if settings.MarkerColor != "#ff0000" {
		t.Errorf("default marker color = %q, want #ff0000", settings.MarkerColor)
	}

	tags, err := store.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags() error: %v", err)
	}
	if len(tags) != 5 || tags[0] != "important" {
		t.Errorf("default tags = %v", tags)
	}
}

func TestEnsureDefaultsNeverOverwrites(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	custom := domain.DefaultSettings()
	custom.MarkerColor = "#00ff00"
	if err := store.SaveSettings(ctx, custom); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	if err := store.EnsureDefaults(ctx, domain.DefaultSettings(), domain.DefaultTags()); err != nil {
		t.Fatalf("EnsureDefaults() error: %v", err)
	}

	settings, _, err := store.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings.MarkerColor != "#00ff00" {
		t.Errorf("EnsureDefaults() overwrote an existing record, marker color = %q", settings.MarkerColor)
	}
}

func TestSettingsAbsent(t *testing.T) {
	store, _ := setupStore(t)

	_, found, err := store.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if found {
		t.Error("Settings() reported a record before any write")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	want := domain.Settings{
		MarkerColor:      "#123456",
		MarkerShape:      "square",
		MarkerSize:       8,
		DarkMode:         true,
		BookmarksPerPage: 25,
		ShowNoteEditor:   false,
		DefaultNoteText:  "note",
		DefaultNoteTag:   "review",
		PauseOnBookmark:  false,
	}
	if err := store.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}

	got, found, err := store.Settings(ctx)
	if err != nil || !found {
		t.Fatalf("Settings() = found %v, err %v", found, err)
	}
	if got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestStoreRedisDown(t *testing.T) {
	store, mr := setupStore(t)
	mr.Close()

	if _, err := store.Tags(context.Background()); err == nil {
		t.Error("Tags() should fail when redis is unreachable")
	}
}
