package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatrelay/internal/core/domain"
)

func callee(id int64) *int64 { return &id }

func TestCallRegistry_HappyPath(t *testing.T) {
	r := NewCallRegistry()

	require.NoError(t, r.Initiate("c1", 1, callee(2)))
	call, ok := r.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, domain.CallInitiated, call.State)

	require.NoError(t, r.Accept("c1"))
	call, _ = r.Lookup("c1")
	assert.Equal(t, domain.CallAccepted, call.State)

	require.NoError(t, r.End("c1"))
	_, ok = r.Lookup("c1")
	assert.False(t, ok, "ended call must be discarded")
}

func TestCallRegistry_EndFromInitiated(t *testing.T) {
	r := NewCallRegistry()
	require.NoError(t, r.Initiate("c1", 1, nil))
	require.NoError(t, r.End("c1"))
}

func TestCallRegistry_StaleTransitions(t *testing.T) {
	r := NewCallRegistry()

	// accept/end without a live call
	assert.ErrorIs(t, r.Accept("ghost"), domain.ErrStaleTransition)
	assert.ErrorIs(t, r.End("ghost"), domain.ErrStaleTransition)

	// duplicate initiate on a live call
	require.NoError(t, r.Initiate("c1", 1, callee(2)))
	assert.ErrorIs(t, r.Initiate("c1", 3, nil), domain.ErrStaleTransition)

	// duplicate accept
	require.NoError(t, r.Accept("c1"))
	assert.ErrorIs(t, r.Accept("c1"), domain.ErrStaleTransition)

	// no event is accepted once ended
	require.NoError(t, r.End("c1"))
	assert.ErrorIs(t, r.Accept("c1"), domain.ErrStaleTransition)
	assert.ErrorIs(t, r.End("c1"), domain.ErrStaleTransition)
}

func TestCallRegistry_CallIDReusableAfterEnd(t *testing.T) {
	r := NewCallRegistry()
	require.NoError(t, r.Initiate("c1", 1, nil))
	require.NoError(t, r.End("c1"))

	// the old entry is gone, so the id can start a fresh negotiation
	require.NoError(t, r.Initiate("c1", 2, nil))
	call, ok := r.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, int64(2), call.CallerID)
	assert.Equal(t, domain.CallInitiated, call.State)
}
