package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate identity on registration.
	ErrConflict = errors.New("already exists")
	// ErrStoreUnavailable indicates a failed persistence call. The relay
	// proceeds in best-effort mode; nothing is retried.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidPayload indicates an event missing required fields.
	ErrInvalidPayload = errors.New("invalid event payload")
	// ErrStaleTransition indicates a signaling event for a call session
	// that is not in the state the event requires.
	ErrStaleTransition = errors.New("stale call transition")
)
