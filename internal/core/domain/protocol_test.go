package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"type":"chat-message","data":{"username":"alice","text":"hi"}}`))
	require.NoError(t, err)
	assert.Equal(t, TypeChatMessage, env.Type)

	_, err = DecodeEnvelope([]byte(`not json`))
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodeEnvelope([]byte(`{"data":{}}`))
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeJoin(t *testing.T) {
	p, err := DecodeJoin(json.RawMessage(`{"userId":1,"username":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UserID)
	assert.Equal(t, "alice", p.Username)

	_, err = DecodeJoin(json.RawMessage(`{"username":"alice"}`))
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodeJoin(json.RawMessage(`{"userId":1}`))
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeChat(t *testing.T) {
	p, err := DecodeChat(json.RawMessage(`{"userId":1,"username":"alice","text":"hi"}`))
	require.NoError(t, err)
	require.NotNil(t, p.UserID)
	assert.Equal(t, int64(1), *p.UserID)

	// userId stays optional, it is carried opaquely
	p, err = DecodeChat(json.RawMessage(`{"username":"alice","text":"hi"}`))
	require.NoError(t, err)
	assert.Nil(t, p.UserID)

	_, err = DecodeChat(json.RawMessage(`{"username":"alice"}`))
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeCallPayloads(t *testing.T) {
	p, err := DecodeCallInit(json.RawMessage(`{"callId":"c1","caller":1,"callee":2}`))
	require.NoError(t, err)
	assert.Equal(t, "c1", p.CallID)
	require.NotNil(t, p.Callee)
	assert.Equal(t, int64(2), *p.Callee)

	// callee may be unknown to the server
	p, err = DecodeCallInit(json.RawMessage(`{"callId":"c1","caller":1}`))
	require.NoError(t, err)
	assert.Nil(t, p.Callee)

	_, err = DecodeCallInit(json.RawMessage(`{"caller":1}`))
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodeCallRef(json.RawMessage(`{}`))
	require.ErrorIs(t, err, ErrInvalidPayload)

	ref, err := DecodeCallRef(json.RawMessage(`{"callId":"c1"}`))
	require.NoError(t, err)
	assert.Equal(t, "c1", ref.CallID)
}

func TestValidateSignaling(t *testing.T) {
	require.NoError(t, ValidateSignaling(json.RawMessage(`{"sdp":"v=0"}`)))

	assert.ErrorIs(t, ValidateSignaling(nil), ErrInvalidPayload)
	assert.ErrorIs(t, ValidateSignaling(json.RawMessage(`null`)), ErrInvalidPayload)
	assert.ErrorIs(t, ValidateSignaling(json.RawMessage(`{broken`)), ErrInvalidPayload)
}

func TestFanOutPolicyTable(t *testing.T) {
	all := []string{TypeChatMessage, TypeCallEnded}
	for _, typ := range all {
		p, ok := PolicyFor(typ)
		require.True(t, ok, typ)
		assert.Equal(t, FanOutAll, p, typ)
	}
	except := []string{
		TypeUserJoined, TypeUserLeft, TypeCallInvitation,
		TypeCallAccepted, TypeOffer, TypeAnswer, TypeIceCandidate,
	}
	for _, typ := range except {
		p, ok := PolicyFor(typ)
		require.True(t, ok, typ)
		assert.Equal(t, FanOutAllExceptOrigin, p, typ)
	}

	_, ok := PolicyFor("made-up")
	assert.False(t, ok)
}
