// Package memory contains the ephemeral implementation of the
// persistence adapter, used when the durable store is unreachable at
// startup. Operations succeed trivially; nothing is retained.
package memory

import (
	"context"
	"sync/atomic"
	"time"

	"chatrelay/internal/core/domain"
)

// Store never conflicts, never fails, never retains. Ids come from a
// millisecond-clock seeded counter so they look like the durable ones.
type Store struct {
	nextID atomic.Int64
}

func NewStore() *Store {
	s := &Store{}
	s.nextID.Store(time.Now().UnixMilli())
	return s
}

func (s *Store) id() int64 { return s.nextID.Add(1) }

func (s *Store) CreateUser(_ context.Context, _, _, _ string) (int64, error) {
	return s.id(), nil
}

// UserByCredential synthesizes a user so login keeps working without
// durability.
func (s *Store) UserByCredential(_ context.Context, username, _ string) (*domain.User, error) {
	return &domain.User{
		ID:       s.id(),
		Username: username,
		Email:    username + "@demo.com",
	}, nil
}

func (s *Store) AppendMessage(_ context.Context, _ *int64, _, _ string) (int64, error) {
	return s.id(), nil
}

func (s *Store) RecentMessages(_ context.Context, _ int) ([]domain.Message, error) {
	return []domain.Message{}, nil
}
