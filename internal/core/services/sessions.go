package services

import (
	"sync"

	"chatrelay/internal/core/domain"
)

// SessionDirectory maps transport connection ids to the application
// identity each connection announced. It is exclusively server-owned
// and lives only in process memory.
type SessionDirectory struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionDirectory() *SessionDirectory {
	return &SessionDirectory{
		sessions: make(map[string]domain.Session),
	}
}

// Upsert records the identity for a connection. A later announcement
// overwrites the prior mapping, it never creates a second entry.
func (d *SessionDirectory) Upsert(connID string, userID int64, username string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[connID] = domain.Session{
		ConnectionID: connID,
		UserID:       userID,
		Username:     username,
	}
}

// Remove drops the entry for a connection. Absence is not an error.
func (d *SessionDirectory) Remove(connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, connID)
}

// Lookup returns the session for a connection, if one was announced.
func (d *SessionDirectory) Lookup(connID string) (domain.Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.sessions[connID]
	return s, ok
}

// Len reports the number of announced sessions.
func (d *SessionDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
