package handlers

import (
	"encoding/json"
	"net/http"

	"chatrelay/internal/core/domain"
	"chatrelay/internal/core/services"
	"chatrelay/internal/platform/logger"
)

// MessagesHandler serves the message history listing and the direct
// append endpoint.
type MessagesHandler struct {
	messages *services.MessageService
}

func NewMessagesHandler(messages *services.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	msgs, err := h.messages.Recent(r.Context())
	if err != nil {
		log.ErrorContext(r.Context(), "messages handler - list failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// Create appends one message outside the websocket path. All three
// fields are required; the ephemeral store still answers with a locally
// generated id.
func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	var req struct {
		UserID   *int64 `json:"userId"`
		Username string `json:"username"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.UserID == nil || req.Username == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing fields"})
		return
	}
	id, err := h.messages.Append(r.Context(), req.UserID, req.Username, req.Message)
	if err != nil {
		log.ErrorContext(r.Context(), "messages handler - create failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Message saved",
		"messageId": id,
	})
}
