package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsukihara/groupboard-api/internal/models"
)

func newTestClient(hub *Hub, groupID uint64) *Client {
	return &Client{
		hub:     hub,
		groupID: groupID,
		send:    make(chan []byte, sendBuffer),
	}
}

func receiveWithTimeout(t *testing.T, c *Client) []byte {
	t.Helper()

	select {
	case payload := <-c.send:
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func TestHubBroadcastReachesGroupClients(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(hub, 1)
	hub.Register(client)

	hub.Broadcast(1, []byte("hello"))

	assert.Equal(t, []byte("hello"), receiveWithTimeout(t, client))
}

func TestHubBroadcastIsScopedToGroup(t *testing.T) {
	hub := startHub(t)

	member := newTestClient(hub, 1)
	outsider := newTestClient(hub, 2)
	hub.Register(member)
	hub.Register(outsider)

	hub.Broadcast(1, []byte("group one only"))

	assert.Equal(t, []byte("group one only"), receiveWithTimeout(t, member))
	assert.Empty(t, outsider.send)
}

func TestHubBroadcastWithoutListenersIsNotAnError(t *testing.T) {
	hub := startHub(t)

	// No clients registered; must not block or panic.
	hub.Broadcast(99, []byte("into the void"))
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(hub, 1)
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	// Unregistering again must be a no-op.
	hub.Unregister(client)
}

func TestHubMessageCreatedBroadcastsEnvelope(t *testing.T) {
	hub := startHub(t)

	client := newTestClient(hub, 7)
	hub.Register(client)

	hub.MessageCreated(7, models.Message{
		ID:       3,
		GroupID:  7,
		SenderID: 11,
		Content:  "hello board",
		SentAt:   time.Now(),
	})

	payload := receiveWithTimeout(t, client)

	var event struct {
		Name string          `json:"event"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, EventMessageNew, event.Name)

	var data map[string]any
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, "hello board", data["content"])
	assert.Equal(t, float64(7), data["group_id"])
	assert.Equal(t, false, data["edited"])
}
