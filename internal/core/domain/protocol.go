package domain

import (
	"encoding/json"
)

// Inbound event types. Anything outside this set is dropped by the
// gateway without a response.
const (
	TypeUserJoin      = "user-join"
	TypeChatMessage   = "chat-message"
	TypeCallInitiated = "call-initiated"
	TypeCallAccepted  = "call-accepted"
	TypeCallEnded     = "call-ended"
	TypeOffer         = "offer"
	TypeAnswer        = "answer"
	TypeIceCandidate  = "ice-candidate"
)

// Outbound event types that differ from their inbound counterpart.
const (
	TypeUserJoined     = "user-joined"
	TypeUserLeft       = "user-left"
	TypeCallInvitation = "call-invitation"
)

// FanOut is the delivery policy for one event type.
type FanOut int

const (
	// FanOutAll delivers to every connected client, originator included.
	FanOutAll FanOut = iota
	// FanOutAllExceptOrigin delivers to everyone but the originating
	// connection.
	FanOutAllExceptOrigin
)

// fanOutPolicy is the fixed per-type delivery table. Policy is never
// derived from payload content.
var fanOutPolicy = map[string]FanOut{
	TypeUserJoined:     FanOutAllExceptOrigin,
	TypeChatMessage:    FanOutAll,
	TypeCallInvitation: FanOutAllExceptOrigin,
	TypeCallAccepted:   FanOutAllExceptOrigin,
	TypeCallEnded:      FanOutAll,
	TypeOffer:          FanOutAllExceptOrigin,
	TypeAnswer:         FanOutAllExceptOrigin,
	TypeIceCandidate:   FanOutAllExceptOrigin,
	TypeUserLeft:       FanOutAllExceptOrigin,
}

// PolicyFor returns the delivery policy for an outbound event type.
func PolicyFor(eventType string) (FanOut, bool) {
	p, ok := fanOutPolicy[eventType]
	return p, ok
}

// Envelope is the wire frame exchanged on the websocket.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// DecodeEnvelope parses a raw websocket frame. A frame that is not valid
// JSON or carries no type fails with ErrInvalidPayload.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, ErrInvalidPayload
	}
	if env.Type == "" {
		return Envelope{}, ErrInvalidPayload
	}
	return env, nil
}

// EncodeEvent marshals an outbound frame.
func EncodeEvent(eventType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: eventType, Data: data})
}

// JoinPayload announces the application identity of a connection.
type JoinPayload struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// ChatPayload is a chat message as sent and relayed.
type ChatPayload struct {
	UserID   *int64 `json:"userId"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// CallInitPayload opens a call negotiation.
type CallInitPayload struct {
	CallID string `json:"callId"`
	Caller int64  `json:"caller"`
	Callee *int64 `json:"callee,omitempty"`
}

// CallRefPayload references an existing call negotiation.
type CallRefPayload struct {
	CallID string `json:"callId"`
}

// LeftPayload notifies the remaining clients that a connection is gone.
// UserID and Username are set when the connection had announced itself.
type LeftPayload struct {
	ConnectionID string `json:"connectionId"`
	UserID       *int64 `json:"userId,omitempty"`
	Username     string `json:"username,omitempty"`
}

// DecodeJoin validates a user-join payload.
func DecodeJoin(data json.RawMessage) (JoinPayload, error) {
	var p JoinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return JoinPayload{}, ErrInvalidPayload
	}
	if p.UserID <= 0 || p.Username == "" {
		return JoinPayload{}, ErrInvalidPayload
	}
	return p, nil
}

// DecodeChat validates a chat-message payload. UserID stays optional so
// the ephemeral store can carry it opaquely.
func DecodeChat(data json.RawMessage) (ChatPayload, error) {
	var p ChatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return ChatPayload{}, ErrInvalidPayload
	}
	if p.Username == "" || p.Text == "" {
		return ChatPayload{}, ErrInvalidPayload
	}
	return p, nil
}

// DecodeCallInit validates a call-initiated payload.
func DecodeCallInit(data json.RawMessage) (CallInitPayload, error) {
	var p CallInitPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return CallInitPayload{}, ErrInvalidPayload
	}
	if p.CallID == "" || p.Caller <= 0 {
		return CallInitPayload{}, ErrInvalidPayload
	}
	return p, nil
}

// DecodeCallRef validates call-accepted and call-ended payloads.
func DecodeCallRef(data json.RawMessage) (CallRefPayload, error) {
	var p CallRefPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return CallRefPayload{}, ErrInvalidPayload
	}
	if p.CallID == "" {
		return CallRefPayload{}, ErrInvalidPayload
	}
	return p, nil
}

// ValidateSignaling checks the opaque negotiation body of offer, answer
// and ice-candidate events. The content itself is never interpreted.
func ValidateSignaling(data json.RawMessage) error {
	if len(data) == 0 || string(data) == "null" || !json.Valid(data) {
		return ErrInvalidPayload
	}
	return nil
}
