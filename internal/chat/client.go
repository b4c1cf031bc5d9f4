package chat

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
	"golang.org/x/time/rate"

	"github.com/pulseofthecity/api/internal/model"
)

const (
	// Outbound buffer per connection. Broadcast enqueues are non-blocking,
	// so this is the slack a slow reader gets before being pruned.
	sendBuffer = 64

	writeTimeout = 10 * time.Second
)

// Identity is the resolved sender attached to a connection or a submission.
type Identity struct {
	UserID    string
	Username  string
	AvatarURL string
}

// Client is one live websocket connection bound to a single city room.
type Client struct {
	City     string
	Identity Identity

	conn *websocket.Conn
	hub  *Hub
	svc  *Service

	send chan model.ChatMessage
	done chan struct{}
	once sync.Once

	messageLim *rate.Limiter
}

// NewClient wraps an accepted websocket connection. The identity may be
// empty when the socket is anonymous; in that case every inbound message
// must carry its own sender fields.
func NewClient(conn *websocket.Conn, cityID string, ident Identity, hub *Hub, svc *Service) *Client {
	return &Client{
		City:     cityID,
		Identity: ident,
		conn:     conn,
		hub:      hub,
		svc:      svc,
		send:     make(chan model.ChatMessage, sendBuffer),
		done:     make(chan struct{}),
	}
}

// SetMessageLimiter caps how many messages this client may submit per window.
func (c *Client) SetMessageLimiter(requests int, window time.Duration) {
	c.messageLim = rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

// shutdown releases the write pump. Idempotent; called from Deregister.
func (c *Client) shutdown() {
	c.once.Do(func() { close(c.done) })
}

// WriteMessages drains the outbound buffer onto the socket. It is the only
// goroutine that writes to the connection; each write gets its own deadline
// so a dead peer fails fast instead of wedging the pump.
func (c *Client) WriteMessages(ctx context.Context) {
	for {
		select {
		case msg := <-c.send:
			payload, err := json.Marshal(msg)
			if err != nil {
				log.Printf("[chat] failed to encode message %s: %v", msg.ID, err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = c.conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				log.Printf("[chat] write failed for user %s in room %q: %v", c.Identity.UserID, c.City, err)
				c.hub.Deregister(c)
				c.conn.Close(websocket.StatusAbnormalClosure, "write failed")
				return
			}

		case <-c.done:
			c.conn.Close(websocket.StatusNormalClosure, "connection closed")
			return

		case <-ctx.Done():
			c.hub.Deregister(c)
			c.conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		}
	}
}

// ReadMessages reads inbound frames and feeds them to the ingestion
// pipeline. It blocks until the peer disconnects or errors; on return the
// client is deregistered, so disconnects drop out of future broadcasts
// immediately.
func (c *Client) ReadMessages(ctx context.Context) {
	defer func() {
		c.hub.Deregister(c)
		c.conn.CloseNow()
	}()

	for {
		msgType, p, err := c.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure &&
				status != websocket.StatusGoingAway &&
				status != -1 {
				log.Printf("[chat] read error for user %s in room %q: %v", c.Identity.UserID, c.City, err)
			}
			return
		}

		if msgType != websocket.MessageText {
			continue
		}

		var sub model.ChatSubmission
		if err := json.Unmarshal(p, &sub); err != nil {
			log.Printf("[chat] malformed payload from user %s: %v", c.Identity.UserID, err)
			continue
		}

		if c.messageLim != nil && !c.messageLim.Allow() {
			log.Printf("[chat] rate limit hit for user %s in room %q", c.Identity.UserID, c.City)
			continue
		}

		// Fall back to the connection's verified identity when the payload
		// carries none.
		if sub.UserID == "" {
			sub.UserID = c.Identity.UserID
			sub.Username = c.Identity.Username
			if sub.UserAvatar == "" {
				sub.UserAvatar = c.Identity.AvatarURL
			}
		}

		if _, err := c.svc.Post(ctx, c.City, Submission{
			SenderID:   sub.UserID,
			SenderName: sub.Username,
			AvatarURL:  sub.UserAvatar,
			Content:    sub.Content,
		}); err != nil {
			// Validation and storage failures on the websocket path are
			// logged and skipped; the socket stays open.
			log.Printf("[chat] rejected message from user %s in room %q: %v", sub.UserID, c.City, err)
		}
	}
}
