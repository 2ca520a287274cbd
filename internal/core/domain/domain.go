package domain

import "time"

// User is the persistent account identity created by registration.
// The credential is stored and compared verbatim; see the note on
// Store.UserByCredential.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Message is an append-only chat entry. UserID is nullable: in ephemeral
// mode the field is carried opaquely without referential enforcement.
type Message struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session binds a transport-level connection id to the application
// identity announced by that connection. It lives only in process memory
// for the lifetime of the connection.
type Session struct {
	ConnectionID string
	UserID       int64
	Username     string
}

// CallState is the lifecycle position of a call negotiation.
type CallState int

const (
	CallInitiated CallState = iota
	CallAccepted
	CallEnded
)

func (s CallState) String() string {
	switch s {
	case CallInitiated:
		return "initiated"
	case CallAccepted:
		return "accepted"
	case CallEnded:
		return "ended"
	}
	return "unknown"
}

// CallSession tracks one in-progress call negotiation. It is transient
// and never persisted; the entry is discarded the moment the call ends.
type CallSession struct {
	CallID    string
	CallerID  int64
	CalleeID  *int64 // may be unknown to the server
	State     CallState
	StartedAt time.Time
}
