package services

import (
	"sync"
	"time"

	"chatrelay/internal/core/domain"
)

// CallRegistry tracks in-progress call negotiations and validates that
// signaling events arrive in a plausible order. Entries are transient:
// an ended call is discarded immediately, so no further event can
// reference it. A call that is never accepted or ended stays until the
// process restarts; no timeout is defined for call states.
type CallRegistry struct {
	mu    sync.Mutex
	calls map[string]*domain.CallSession
}

func NewCallRegistry() *CallRegistry {
	return &CallRegistry{
		calls: make(map[string]*domain.CallSession),
	}
}

// Initiate opens a negotiation for callID. A call-initiated event for a
// call id that is still live is a stale duplicate.
func (r *CallRegistry) Initiate(callID string, callerID int64, calleeID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.calls[callID]; exists {
		return domain.ErrStaleTransition
	}
	r.calls[callID] = &domain.CallSession{
		CallID:    callID,
		CallerID:  callerID,
		CalleeID:  calleeID,
		State:     domain.CallInitiated,
		StartedAt: time.Now(),
	}
	return nil
}

// Accept moves the call from Initiated to Accepted. Accepting a call
// that is unknown or already accepted is stale and dropped.
func (r *CallRegistry) Accept(callID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[callID]
	if !ok || call.State != domain.CallInitiated {
		return domain.ErrStaleTransition
	}
	call.State = domain.CallAccepted
	return nil
}

// End terminates the call from either Initiated or Accepted and
// discards the entry.
func (r *CallRegistry) End(callID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.calls[callID]; !ok {
		return domain.ErrStaleTransition
	}
	delete(r.calls, callID)
	return nil
}

// Lookup returns a copy of the call session, if live.
func (r *CallRegistry) Lookup(callID string) (domain.CallSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	call, ok := r.calls[callID]
	if !ok {
		return domain.CallSession{}, false
	}
	return *call, true
}
