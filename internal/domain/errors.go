package domain

import "errors"

// Validation failures surfaced to the user. Storage failures are wrapped
// with %w at the call site instead; a missing bookmark on update or
// delete is a silent no-op, not an error.
var (
	// ErrDuplicateTag is returned when adding a tag name already present
	// in the registry.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrEmptyTagName is returned when a tag name is blank after
	// trimming.
	ErrEmptyTagName = errors.New("tag name is empty")

	// ErrInvalidFormat is returned when an import document is neither
	// the enveloped single-video format nor the raw per-video mapping.
	ErrInvalidFormat = errors.New("invalid import format")

	// ErrInvalidBookmark is returned when any bookmark in an import
	// document lacks an id or a usable time. The whole import fails.
	ErrInvalidBookmark = errors.New("invalid bookmark data")
)
