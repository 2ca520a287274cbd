package services

import (
	"context"
	"errors"
	"log/slog"

	"chatrelay/internal/core/domain"
)

// UserService fronts the store for the registration and login
// collaborator endpoints.
type UserService struct {
	log   *slog.Logger
	store domain.Store
}

func NewUserService(log *slog.Logger, store domain.Store) *UserService {
	return &UserService{log: log, store: store}
}

// Register creates an account. Required-field validation happens here;
// duplicate identities surface as domain.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, email, password string) (int64, error) {
	if username == "" || email == "" || password == "" {
		return 0, domain.ErrInvalidPayload
	}
	id, err := s.store.CreateUser(ctx, username, email, password)
	if err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			s.log.ErrorContext(ctx, "users - register - create user failed", "username", username, "err", err)
		}
		return 0, err
	}
	s.log.InfoContext(ctx, "users - register - user created", "username", username, "user_id", id)
	return id, nil
}

// Login authenticates by verbatim credential comparison against the
// store and returns the user record.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}
	user, err := s.store.UserByCredential(ctx, username, password)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.ErrorContext(ctx, "users - login - lookup failed", "username", username, "err", err)
		}
		return nil, err
	}
	s.log.InfoContext(ctx, "users - login - success", "username", username, "user_id", user.ID)
	return user, nil
}
