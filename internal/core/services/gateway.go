package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chatrelay/internal/core/contracts"
	"chatrelay/internal/core/domain"
)

var tracer = otel.Tracer("event-gateway")

// Gateway decodes inbound websocket frames into the typed event set and
// dispatches them to the session directory, the call registry, the
// persistence adapter and the broadcast hub. No handler failure is
// fatal: invalid events are dropped without a response and persistence
// failures never block delivery.
type Gateway struct {
	log      *slog.Logger
	hub      contracts.Hub
	sessions *SessionDirectory
	calls    *CallRegistry
	messages *MessageService
}

func NewGateway(
	log *slog.Logger,
	hub contracts.Hub,
	sessions *SessionDirectory,
	calls *CallRegistry,
	messages *MessageService,
) *Gateway {
	return &Gateway{
		log:      log,
		hub:      hub,
		sessions: sessions,
		calls:    calls,
		messages: messages,
	}
}

// HandleEvent processes one inbound frame from the origin connection.
// Callers invoke it synchronously from the connection's read loop, so
// events from a single connection are relayed in the order received.
func (g *Gateway) HandleEvent(ctx context.Context, originID string, raw []byte) {
	env, err := domain.DecodeEnvelope(raw)
	if err != nil {
		g.log.DebugContext(ctx, "gateway - handle event - undecodable frame dropped", "conn_id", originID)
		return
	}
	ctx, span := tracer.Start(ctx, "Gateway.HandleEvent", trace.WithAttributes(
		attribute.String("event.type", env.Type),
		attribute.String("conn_id", originID),
	))
	defer span.End()

	switch env.Type {
	case domain.TypeUserJoin:
		g.handleJoin(ctx, originID, env)
	case domain.TypeChatMessage:
		g.handleChat(ctx, originID, env)
	case domain.TypeCallInitiated:
		g.handleCallInitiated(ctx, originID, env)
	case domain.TypeCallAccepted:
		g.handleCallAccepted(ctx, originID, env)
	case domain.TypeCallEnded:
		g.handleCallEnded(ctx, originID, env)
	case domain.TypeOffer, domain.TypeAnswer, domain.TypeIceCandidate:
		g.handleSignaling(ctx, originID, env)
	default:
		g.log.DebugContext(ctx, "gateway - handle event - unknown event type dropped", "type", env.Type, "conn_id", originID)
	}
}

// HandleDisconnect removes the connection's session and tells everyone
// else the identity left. Disconnect is the only cancellation signal.
func (g *Gateway) HandleDisconnect(ctx context.Context, originID string) {
	left := domain.LeftPayload{ConnectionID: originID}
	if session, ok := g.sessions.Lookup(originID); ok {
		uid := session.UserID
		left.UserID = &uid
		left.Username = session.Username
	}
	g.sessions.Remove(originID)
	g.relay(ctx, originID, domain.TypeUserLeft, left)
	g.log.InfoContext(ctx, "gateway - disconnect - session removed", "conn_id", originID, "username", left.Username)
}

func (g *Gateway) handleJoin(ctx context.Context, originID string, env domain.Envelope) {
	p, err := domain.DecodeJoin(env.Data)
	if err != nil {
		g.log.DebugContext(ctx, "gateway - user join - invalid payload dropped", "conn_id", originID)
		return
	}
	g.sessions.Upsert(originID, p.UserID, p.Username)
	g.relay(ctx, originID, domain.TypeUserJoined, p)
	g.log.InfoContext(ctx, "gateway - user join - session announced", "conn_id", originID, "user_id", p.UserID, "username", p.Username)
}

func (g *Gateway) handleChat(ctx context.Context, originID string, env domain.Envelope) {
	p, err := domain.DecodeChat(env.Data)
	if err != nil {
		g.log.DebugContext(ctx, "gateway - chat message - invalid payload dropped", "conn_id", originID)
		return
	}
	// Best-effort durability: the broadcast goes out regardless of the
	// store outcome.
	_, _ = g.messages.Append(ctx, p.UserID, p.Username, p.Text)
	g.relay(ctx, originID, domain.TypeChatMessage, p)
}

func (g *Gateway) handleCallInitiated(ctx context.Context, originID string, env domain.Envelope) {
	p, err := domain.DecodeCallInit(env.Data)
	if err != nil {
		g.log.DebugContext(ctx, "gateway - call initiated - invalid payload dropped", "conn_id", originID)
		return
	}
	if err := g.calls.Initiate(p.CallID, p.Caller, p.Callee); err != nil {
		g.log.DebugContext(ctx, "gateway - call initiated - stale event dropped", "call_id", p.CallID, "conn_id", originID)
		return
	}
	g.relay(ctx, originID, domain.TypeCallInvitation, p)
	g.log.InfoContext(ctx, "gateway - call initiated - invitation relayed", "call_id", p.CallID, "caller", p.Caller)
}

func (g *Gateway) handleCallAccepted(ctx context.Context, originID string, env domain.Envelope) {
	p, err := domain.DecodeCallRef(env.Data)
	if err != nil {
		g.log.DebugContext(ctx, "gateway - call accepted - invalid payload dropped", "conn_id", originID)
		return
	}
	if err := g.calls.Accept(p.CallID); err != nil {
		g.log.DebugContext(ctx, "gateway - call accepted - stale event dropped", "call_id", p.CallID, "conn_id", originID)
		return
	}
	g.relay(ctx, originID, domain.TypeCallAccepted, p)
	g.log.InfoContext(ctx, "gateway - call accepted", "call_id", p.CallID)
}

func (g *Gateway) handleCallEnded(ctx context.Context, originID string, env domain.Envelope) {
	p, err := domain.DecodeCallRef(env.Data)
	if err != nil {
		g.log.DebugContext(ctx, "gateway - call ended - invalid payload dropped", "conn_id", originID)
		return
	}
	if err := g.calls.End(p.CallID); err != nil {
		g.log.DebugContext(ctx, "gateway - call ended - stale event dropped", "call_id", p.CallID, "conn_id", originID)
		return
	}
	// Termination goes to everyone, the requesting side included, so
	// all participants converge.
	g.relay(ctx, originID, domain.TypeCallEnded, p)
	g.log.InfoContext(ctx, "gateway - call ended", "call_id", p.CallID)
}

// handleSignaling relays offer/answer/ice-candidate bodies unchanged.
// The negotiation protocol is opaque transport; no call state is
// consulted.
func (g *Gateway) handleSignaling(ctx context.Context, originID string, env domain.Envelope) {
	if err := domain.ValidateSignaling(env.Data); err != nil {
		g.log.DebugContext(ctx, "gateway - signaling - malformed body dropped", "type", env.Type, "conn_id", originID)
		return
	}
	g.relay(ctx, originID, env.Type, env.Data)
}

// relay encodes the outbound frame and fans it out per the fixed
// policy table.
func (g *Gateway) relay(ctx context.Context, originID, eventType string, payload any) {
	data, err := domain.EncodeEvent(eventType, payload)
	if err != nil {
		g.log.ErrorContext(ctx, "gateway - relay - encode failed", "type", eventType, "err", err)
		return
	}
	policy, ok := domain.PolicyFor(eventType)
	if !ok {
		g.log.ErrorContext(ctx, "gateway - relay - no fan-out policy", "type", eventType)
		return
	}
	switch policy {
	case domain.FanOutAll:
		g.hub.BroadcastAll(ctx, data)
	case domain.FanOutAllExceptOrigin:
		g.hub.BroadcastExcept(ctx, originID, data)
	}
}
