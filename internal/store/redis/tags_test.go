package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/seekmark/seekmark/internal/domain"
)

func TestAddTagNormalizes(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	tags, err := store.AddTag(ctx, "  Highlight ")
	if err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
	if len(tags) != 1 || tags[0] != "highlight" {
		t.Errorf("AddTag() = %v, want [highlight]", tags)
	}
}

func TestAddTagDuplicate(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.AddTag(ctx, "review"); err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
	if _, err := store.AddTag(ctx, "REVIEW"); !errors.Is(err, domain.ErrDuplicateTag) {
		t.Errorf("AddTag() duplicate = %v, want ErrDuplicateTag", err)
	}
}

func TestAddTagEmpty(t *testing.T) {
	store, _ := setupStore(t)

	if _, err := store.AddTag(context.Background(), "   "); !errors.Is(err, domain.ErrEmptyTagName) {
		t.Errorf("AddTag() blank = %v, want ErrEmptyTagName", err)
	}
}

func TestRemoveTagCascades(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.AddTag(ctx, "funny"); err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
	if _, err := store.AddTag(ctx, "review"); err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
	if _, err := store.CreateBookmark(ctx, "vid", 10, "", "", []string{"funny", "review"}); err != nil {
		t.Fatalf("CreateBookmark() error: %v", err)
	}

	tags, err := store.RemoveTag(ctx, "funny")
	if err != nil {
		t.Fatalf("RemoveTag() error: %v", err)
	}
	if len(tags) != 1 || tags[0] != "review" {
		t.Errorf("RemoveTag() = %v, want [review]", tags)
	}

	list, err := store.ListBookmarks(ctx, "vid")
	if err != nil {
		t.Fatalf("ListBookmarks() error: %v", err)
	}
	if len(list[0].Tags) != 1 || list[0].Tags[0] != "review" {
		t.Errorf("RemoveTag() left bookmark tags = %v, want [review]", list[0].Tags)
	}
}

func TestRemoveTagUnknownIsNoOp(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.AddTag(ctx, "review"); err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}

	tags, err := store.RemoveTag(ctx, "missing")
	if err != nil {
		t.Fatalf("RemoveTag() error: %v", err)
	}
	if len(tags) != 1 || tags[0] != "review" {
		t.Errorf("RemoveTag() = %v, want [review]", tags)
	}
}
