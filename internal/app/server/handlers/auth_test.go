package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatrelay/internal/core/domain"
	"chatrelay/internal/core/services"
)

type stubStore struct {
	users   map[string]*domain.User
	nextID  int64
	history []domain.Message
	listErr error
}

func newStubStore() *stubStore {
	return &stubStore{users: map[string]*domain.User{}, nextID: 1}
}

func (s *stubStore) CreateUser(_ context.Context, username, email, password string) (int64, error) {
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return 0, domain.ErrConflict
		}
	}
	id := s.nextID
	s.nextID++
	s.users[username] = &domain.User{ID: id, Username: username, Email: email, Password: password}
	return id, nil
}

func (s *stubStore) UserByCredential(_ context.Context, username, password string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok || u.Password != password {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubStore) AppendMessage(_ context.Context, userID *int64, username, text string) (int64, error) {
	s.history = append(s.history, domain.Message{UserID: userID, Username: username, Text: text})
	return int64(len(s.history)), nil
}

func (s *stubStore) RecentMessages(context.Context, int) ([]domain.Message, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.history, nil
}

var _ domain.Store = (*stubStore)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(services.NewUserService(testLogger(), newStubStore()))

	rec := postJSON(t, h.Register, `{"username":"alice","email":"a@x.io","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Message string `json:"message"`
		UserID  int64  `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User registered", resp.Message)
	assert.Positive(t, resp.UserID)
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(services.NewUserService(testLogger(), newStubStore()))

	rec := postJSON(t, h.Register, `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Register, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	store := newStubStore()
	h := NewAuthHandler(services.NewUserService(testLogger(), store))

	rec := postJSON(t, h.Register, `{"username":"alice","email":"a@x.io","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Register, `{"username":"alice","email":"other@x.io","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	store := newStubStore()
	_, err := store.CreateUser(context.Background(), "alice", "a@x.io", "pw")
	require.NoError(t, err)
	h := NewAuthHandler(services.NewUserService(testLogger(), store))

	rec := postJSON(t, h.Login, `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		User domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.User.Username)

	rec = postJSON(t, h.Login, `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postJSON(t, h.Login, `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessagesHandler_List(t *testing.T) {
	store := newStubStore()
	uid := int64(1)
	_, err := store.AppendMessage(context.Background(), &uid, "alice", "hi")
	require.NoError(t, err)
	h := NewMessagesHandler(services.NewMessageService(testLogger(), store))

	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)
}

func TestMessagesHandler_Create(t *testing.T) {
	store := newStubStore()
	h := NewMessagesHandler(services.NewMessageService(testLogger(), store))

	rec := postJSON(t, h.Create, `{"userId":7,"username":"alice","message":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Message   string `json:"message"`
		MessageID int64  `json:"messageId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Message saved", resp.Message)
	assert.Positive(t, resp.MessageID)

	require.Len(t, store.history, 1)
	assert.Equal(t, "hi", store.history[0].Text)
	require.NotNil(t, store.history[0].UserID)
	assert.Equal(t, int64(7), *store.history[0].UserID)
}

func TestMessagesHandler_Create_MissingFields(t *testing.T) {
	h := NewMessagesHandler(services.NewMessageService(testLogger(), newStubStore()))

	rec := postJSON(t, h.Create, `{"username":"alice","message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Create, `{"userId":7,"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Create, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessagesHandler_List_EmptyIsArray(t *testing.T) {
	h := NewMessagesHandler(services.NewMessageService(testLogger(), newStubStore()))

	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	Health(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
