package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFillsPayload(t *testing.T) {
	e := New("GUIDE_NUDGE", nil)

	assert.Equal(t, "GUIDE_NUDGE", e.EventType())
	assert.NotNil(t, e.Payload())
	assert.False(t, e.Timestamp().IsZero())
}

func TestEnvelopeKeepsType(t *testing.T) {
	e := New("GUIDE_DEVIATION", map[string]interface{}{"session_id": "abc", "step": "tab:Profile"})

	raw, err := json.Marshal(ToEnvelope(e))
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	back := env.Event()

	assert.Equal(t, "GUIDE_DEVIATION", back.EventType())
	assert.Equal(t, "abc", SessionID(back))
	assert.True(t, e.Timestamp().Equal(back.Timestamp()))
}

func TestSessionIDMissing(t *testing.T) {
	assert.Empty(t, SessionID(New("X", map[string]interface{}{"session_id": 4})))
}
