package nats

import (
	"encoding/json"
	"testing"

	"campus-guide-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "guide.GUIDE_NUDGE", Subject("GUIDE_NUDGE"))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "envelope", body: `{"type":"GUIDE_PATH_STARTED","data":{"session_id":"s1"}}`, want: "GUIDE_PATH_STARTED"},
		{name: "missing type", body: `{"data":{}}`, wantErr: true},
		{name: "not json", body: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev.EventType())
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	raw, err := json.Marshal(events.ToEnvelope(events.New("GUIDE_DEVIATION", map[string]interface{}{"session_id": "s2"})))
	require.NoError(t, err)

	ev, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "s2", events.SessionID(ev))
}
