package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
)

func testClient(t *testing.T, cityID string) *Client {
	t.Helper()
	// No socket; hub operations never touch the connection.
	return NewClient(nil, cityID, Identity{UserID: "u-" + cityID, Username: "tester"}, nil, nil)
}

func drain(c *Client) []model.ChatMessage {
	var out []model.ChatMessage
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestRegisterUnknownRoom(t *testing.T) {
	hub := NewHub()
	c := testClient(t, "atlantis")

	err := hub.Register(c)
	assert.ErrorIs(t, err, city.ErrUnknown)
	assert.Equal(t, 0, hub.RoomSize("atlantis"))
}

func TestRegisterDeregister(t *testing.T) {
	hub := NewHub()
	c := testClient(t, "miami")

	require.NoError(t, hub.Register(c))
	assert.Equal(t, 1, hub.RoomSize("miami"))

	hub.Deregister(c)
	assert.Equal(t, 0, hub.RoomSize("miami"))

	// Deregistering again is a no-op.
	hub.Deregister(c)
	assert.Equal(t, 0, hub.RoomSize("miami"))
}

func TestRegisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := testClient(t, "miami")

	require.NoError(t, hub.Register(c))
	require.NoError(t, hub.Register(c))
	assert.Equal(t, 1, hub.RoomSize("miami"))

	hub.Broadcast("miami", model.ChatMessage{ID: "m1", City: "miami", Content: "hello"})
	assert.Len(t, drain(c), 1, "double registration must not cause double delivery")
}

func TestBroadcastReachesAllRoomMembers(t *testing.T) {
	hub := NewHub()
	a := testClient(t, "miami")
	b := testClient(t, "miami")
	other := testClient(t, "nyc")

	require.NoError(t, hub.Register(a))
	require.NoError(t, hub.Register(b))
	require.NoError(t, hub.Register(other))

	msg := model.ChatMessage{ID: "m1", City: "miami", Content: "hello", CreatedAt: time.Now().UTC()}
	hub.Broadcast("miami", msg)

	assert.Equal(t, []model.ChatMessage{msg}, drain(a))
	assert.Equal(t, []model.ChatMessage{msg}, drain(b))
	assert.Empty(t, drain(other), "messages must not leak across rooms")
}

func TestBroadcastPrunesStalledConnection(t *testing.T) {
	hub := NewHub()
	healthy := testClient(t, "miami")
	stalled := testClient(t, "miami")

	require.NoError(t, hub.Register(healthy))
	require.NoError(t, hub.Register(stalled))

	// Simulate a wedged write pump: its outbound buffer is full.
	for i := 0; i < sendBuffer; i++ {
		stalled.send <- model.ChatMessage{ID: "backlog"}
	}

	hub.Broadcast("miami", model.ChatMessage{ID: "m1", City: "miami", Content: "hello"})

	assert.Len(t, drain(healthy), 1, "failure on one connection must not block the others")
	assert.Equal(t, 1, hub.RoomSize("miami"), "stalled connection must be pruned")

	select {
	case <-stalled.done:
	default:
		t.Fatal("pruned client should have been shut down")
	}
}

func TestBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub()
	// Must not panic or block.
	hub.Broadcast("kingston", model.ChatMessage{ID: "m1", City: "kingston"})
}
