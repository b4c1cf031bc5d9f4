// Package chat implements the real-time city-chat core: the per-city
// connection hub, the websocket client pumps, and the ingestion pipeline that
// persists a message before fanning it out.
package chat

import (
	"log"
	"sync"

	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
)

// Hub tracks the live connections of every city room and fans messages out to
// them. It owns the per-room sets exclusively; nothing else mutates them.
//
// Delivery is best-effort: a message is enqueued onto each member's buffered
// outbound channel without blocking. A member whose buffer is full is treated
// as dead and pruned, so one stalled peer never delays the rest of the room.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]struct{}
}

// NewHub returns an empty hub. Construct one per process and pass it by
// reference; it holds the only in-process shared mutable state of the chat
// core.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Register adds c to its city's live set. Registering an already-registered
// client is a no-op. Returns city.ErrUnknown for rooms outside the fixed set.
func (h *Hub) Register(c *Client) error {
	if !city.Valid(c.City) {
		return city.ErrUnknown
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set := h.rooms[c.City]
	if set == nil {
		set = make(map[*Client]struct{})
		h.rooms[c.City] = set
	}
	set[c] = struct{}{}
	return nil
}

// Deregister removes c from its city's live set and releases its write pump.
// Safe to call from both the normal disconnect path and the failed-send path,
// and safe to call more than once.
func (h *Hub) Deregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.rooms[c.City]; ok {
		delete(set, c)
	}
	h.mu.Unlock()

	// Outside the lock: signal the client's pumps to shut down. The send
	// channel is never closed, so a concurrent Broadcast holding an old
	// snapshot cannot panic; its enqueue just loses the race via done.
	c.shutdown()
}

// Broadcast delivers msg to every client live in the room at the moment of
// the call. The membership snapshot is taken under the lock, delivery happens
// outside it. Each delivery attempt is independent; failures are absorbed
// here, never surfaced to the sender.
func (h *Hub) Broadcast(room string, msg model.ChatMessage) {
	h.mu.Lock()
	set := h.rooms[room]
	members := make([]*Client, 0, len(set))
	for c := range set {
		members = append(members, c)
	}
	h.mu.Unlock()

	var failed []*Client
	for _, c := range members {
		select {
		case c.send <- msg:
		case <-c.done:
			// Already shutting down; nothing to deliver to.
		default:
			failed = append(failed, c)
		}
	}

	// A full buffer means the write pump has been stuck past its timeout
	// budget. That is terminal: prune the connection so future broadcasts
	// skip it.
	for _, c := range failed {
		log.Printf("[chat] dropping stalled connection in room %q (user %s)", room, c.Identity.UserID)
		h.Deregister(c)
	}
}

// RoomSize reports how many connections are live in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}
