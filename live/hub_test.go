package live

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/riftbook/stats-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	hub := NewHub(slog.Default())
	go hub.Run()
	return hub
}

func (h *Hub) roomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := newTestHub()

	client := NewClient(hub, nil, 7)
	require.Eventually(t, func() bool {
		return hub.roomSize("user_7") == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.roomSize("user_7") == 0
	}, time.Second, 10*time.Millisecond)

	// send is closed on unregister so WritePump can drain and exit.
	_, open := <-client.send
	assert.False(t, open)
}

func TestPublishGameEventReachesOwnerRoomOnly(t *testing.T) {
	hub := newTestHub()

	owner := NewClient(hub, nil, 1)
	other := NewClient(hub, nil, 2)
	require.Eventually(t, func() bool {
		return hub.roomSize("user_1") == 1 && hub.roomSize("user_2") == 1
	}, time.Second, 10*time.Millisecond)

	game := &models.Game{GameID: 42, Patch: "14.1"}
	hub.PublishGameEvent(1, "GAME_CREATED", game)

	select {
	case raw := <-owner.send:
		var msg FeedMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, "GAME_CREATED", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("owner never received the event")
	}

	select {
	case <-other.send:
		t.Fatal("event leaked to another user's room")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishToEmptyRoomIsNoOp(t *testing.T) {
	hub := newTestHub()
	hub.PublishGameEvent(99, "GAME_DELETED", &models.Game{GameID: 1})
}
