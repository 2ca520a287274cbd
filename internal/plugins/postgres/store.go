package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"chatrelay/internal/core/domain"
)

/*
	CREATE TABLE users (
		id          BIGSERIAL PRIMARY KEY,
		username    TEXT NOT NULL UNIQUE,
		email       TEXT NOT NULL UNIQUE,
		password    TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE messages (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT REFERENCES users(id),
		username    TEXT NOT NULL,
		message     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);
*/

// Store implements domain.Store on PostgreSQL.
type Store struct{ db *DB }

func NewStore(db *DB) *Store { return &Store{db: db} }

func (s *Store) CreateUser(ctx context.Context, username, email, password string) (int64, error) {
	const q = `
INSERT INTO users (username, email, password)
VALUES ($1, $2, $3)
RETURNING id`
	var id int64
	err := s.db.Pool.QueryRow(ctx, q, username, email, password).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

// UserByCredential compares the supplied credential verbatim against
// the stored value, faithful to the system this replaces.
func (s *Store) UserByCredential(ctx context.Context, username, password string) (*domain.User, error) {
	const q = `
SELECT id, username, email FROM users
WHERE username = $1 AND password = $2`
	var u domain.User
	err := s.db.Pool.QueryRow(ctx, q, username, password).Scan(&u.ID, &u.Username, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return &u, nil
}

func (s *Store) AppendMessage(ctx context.Context, userID *int64, username, text string) (int64, error) {
	const q = `
INSERT INTO messages (user_id, username, message)
VALUES ($1, $2, $3)
RETURNING id`
	var id int64
	if err := s.db.Pool.QueryRow(ctx, q, userID, username, text).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return id, nil
}

func (s *Store) RecentMessages(ctx context.Context, limit int) ([]domain.Message, error) {
	const q = `
SELECT id, user_id, username, message, created_at FROM messages
ORDER BY created_at DESC
LIMIT $1`
	rows, err := s.db.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Username, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return msgs, nil
}
