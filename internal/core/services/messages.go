package services

import (
	"context"
	"log/slog"

	"chatrelay/internal/core/domain"
)

// historyLimit caps the message-history listing.
const historyLimit = 50

// MessageService fronts the store for chat durability and history.
type MessageService struct {
	log   *slog.Logger
	store domain.Store
}

func NewMessageService(log *slog.Logger, store domain.Store) *MessageService {
	return &MessageService{log: log, store: store}
}

// Append persists one chat message best-effort. A failure is logged and
// returned, but callers on the relay path broadcast regardless; nothing
// is retried.
func (s *MessageService) Append(ctx context.Context, userID *int64, username, text string) (int64, error) {
	id, err := s.store.AppendMessage(ctx, userID, username, text)
	if err != nil {
		s.log.ErrorContext(ctx, "messages - append - store failed, relaying anyway", "username", username, "err", err)
		return 0, err
	}
	return id, nil
}

// Recent lists up to the 50 most recent messages, newest first.
func (s *MessageService) Recent(ctx context.Context) ([]domain.Message, error) {
	msgs, err := s.store.RecentMessages(ctx, historyLimit)
	if err != nil {
		s.log.ErrorContext(ctx, "messages - recent - store failed", "err", err)
		return nil, err
	}
	return msgs, nil
}
