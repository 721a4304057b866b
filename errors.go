package sarf

import "errors"

// Sentinel errors for the small failure taxonomy shared by the indices
// and the collaborator layers. None of these is fatal; they are ordinary
// return values, never used for control flow inside the algorithms.
var (
	// ErrDuplicate reports insertion of an already present key. The
	// index is left unchanged.
	ErrDuplicate = errors.New("key already exists")

	// ErrNotFound reports lookup or deletion of an absent key.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidRoot reports a root that is not exactly three Arabic
	// codepoints. Raised by the collaborator layer before the indices
	// are reached.
	ErrInvalidRoot = errors.New("invalid root")

	// ErrEmptyPattern reports an empty template where one is required.
	ErrEmptyPattern = errors.New("empty pattern")
)
