package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"campus-guide-be/internal/pkg/logger"
	"campus-guide-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run(ctx)
	return h
}

func TestHubSendReachesSessionClients(t *testing.T) {
	h := startHub(t)
	watcher := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte, 4)}
	other := &Client{Hub: h, SessionID: "s2", Send: make(chan []byte, 4)}
	h.register <- watcher
	h.register <- other
	require.Eventually(t, func() bool { return h.Clients("s1") == 1 && h.Clients("s2") == 1 }, time.Second, 5*time.Millisecond)

	h.Send(context.Background(), "s1", events.ToEnvelope(events.New("GUIDE_NUDGE", map[string]interface{}{"session_id": "s1"})))

	select {
	case raw := <-watcher.Send:
		var env events.Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		assert.Equal(t, "GUIDE_NUDGE", env.Type)
	case <-time.After(time.Second):
		t.Fatal("watcher got nothing")
	}
	assert.Empty(t, other.Send)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	c := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte, 1)}
	h.register <- c
	h.unregister <- c

	require.Eventually(t, func() bool { return h.Clients("s1") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	h := startHub(t)
	c := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte, 1)}
	h.register <- c
	require.Eventually(t, func() bool { return h.Clients("s1") == 1 }, time.Second, 5*time.Millisecond)

	env := events.ToEnvelope(events.New("GUIDE_STEP_ADVANCED", nil))
	h.Send(context.Background(), "s1", env)
	h.Send(context.Background(), "s1", env)

	assert.Len(t, c.Send, 1)
	assert.Equal(t, 1, h.Clients("s1"))
}

func TestClusterMessageSkipsOwnEcho(t *testing.T) {
	h := startHub(t)
	c := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte, 2)}
	h.register <- c
	require.Eventually(t, func() bool { return h.Clients("s1") == 1 }, time.Second, 5*time.Millisecond)

	own, _ := json.Marshal(clusterMessage{Origin: h.instance, TargetSessionID: "s1", Message: json.RawMessage(`{"type":"A"}`)})
	foreign, _ := json.Marshal(clusterMessage{Origin: "elsewhere", TargetSessionID: "s1", Message: json.RawMessage(`{"type":"B"}`)})

	h.handleClusterMessage(own)
	h.handleClusterMessage(foreign)
	h.handleClusterMessage([]byte("garbage"))

	require.Len(t, c.Send, 1)
	assert.JSONEq(t, `{"type":"B"}`, string(<-c.Send))
}

func TestHubShutdownReleasesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil, logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	c := &Client{Hub: h, SessionID: "s1", Send: make(chan []byte, 1)}
	require.True(t, h.join(c))
	cancel()
	<-stopped

	_, open := <-c.Send
	assert.False(t, open, "shutdown closes every stream")

	late := &Client{Hub: h, SessionID: "s2", Send: make(chan []byte, 1)}
	assert.False(t, h.join(late))

	left := make(chan struct{})
	go func() {
		h.leave(c)
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("leave blocked after shutdown")
	}
}

func TestNewClientGreets(t *testing.T) {
	c := newClient(NewHub(nil, logger.NewNopLogger()), nil, "s1", "u1")

	require.Len(t, c.Send, 1)
	var env events.Envelope
	require.NoError(t, json.Unmarshal(<-c.Send, &env))
	assert.Equal(t, EventConnected, env.Type)
	assert.Equal(t, "s1", env.Data["session_id"])
}
