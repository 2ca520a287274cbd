package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"chatrelay/internal/app/server/ws"
	"chatrelay/internal/core/contracts"
	"chatrelay/internal/core/services"
	"chatrelay/internal/platform/logger"
)

// WSHandler upgrades connections into the relay. The transport is
// unauthenticated: identity arrives later as a user-join event.
type WSHandler struct {
	hub     contracts.Hub
	gateway *services.Gateway
}

func NewWSHandler(hub contracts.Hub, gateway *services.Gateway) *WSHandler {
	return &WSHandler{hub: hub, gateway: gateway}
}

func (h *WSHandler) Handler(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	span := trace.SpanFromContext(r.Context())

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // tighten later
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.ErrorContext(r.Context(), "ws handler - upgrade failed", "err", err)
		return
	}

	// The connection outlives the HTTP request.
	sessionCtx := context.WithoutCancel(r.Context())
	ctx, cancel := context.WithCancel(sessionCtx)
	defer cancel()

	connID := uuid.NewString()
	socket := ws.NewWebSocket(ctx, conn)
	client := ws.NewClient(ctx, socket, connID)
	h.hub.Register(client)
	log.InfoContext(r.Context(), "ws handler - connection established", "conn_id", connID)
	span.AddEvent("ws.connected")

	defer func() {
		h.hub.Unregister(client)
		h.gateway.HandleDisconnect(ctx, connID)
		client.Close()
		log.Info("ws handler - connection closed", "conn_id", connID)
	}()

	// Synchronous dispatch keeps per-connection event order.
	socket.ReadLoop(func(data []byte) {
		h.gateway.HandleEvent(ctx, connID, data)
	})
}
