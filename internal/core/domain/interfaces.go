package domain

import "context"

// Store is the persistence adapter. Two implementations exist: the
// durable postgres store and the ephemeral in-memory substitute. One of
// them is selected at process start by probing store connectivity and
// the choice never changes while the process runs.
//
// Every operation returns a typed error instead of panicking across the
// relay boundary. Callers on the relay path treat failures as
// observability-only: they log and keep broadcasting.
type Store interface {
	// CreateUser registers a new account. Fails with ErrConflict when
	// username or email is already taken (durable mode only; the
	// ephemeral store never conflicts and generates a local id).
	CreateUser(ctx context.Context, username, email, password string) (int64, error)
	// UserByCredential looks up a user by verbatim credential
	// comparison and returns ErrNotFound when nothing matches.
	// Plaintext comparison is preserved from the system this replaces;
	// known security gap, not silently fixed here.
	UserByCredential(ctx context.Context, username, password string) (*User, error)
	// AppendMessage stores one chat message. The ephemeral store
	// succeeds without retaining it.
	AppendMessage(ctx context.Context, userID *int64, username, text string) (int64, error)
	// RecentMessages returns up to limit messages, newest first. The
	// ephemeral store returns an empty slice.
	RecentMessages(ctx context.Context, limit int) ([]Message, error)
}
