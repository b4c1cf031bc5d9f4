package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
)

const (
	// HistoryDefault and HistoryMax bound GetHistory limits.
	HistoryDefault = 100
	HistoryMax     = 200

	insertTimeout = 5 * time.Second
)

// MessageStore is the durable side of the pipeline. *store.Store satisfies
// it; tests plug in fakes.
type MessageStore interface {
	InsertMessage(ctx context.Context, msg model.ChatMessage) error
	RecentMessages(ctx context.Context, cityID string, limit int64) ([]model.ChatMessage, error)
}

// Broadcaster fans a persisted message out to live connections.
type Broadcaster interface {
	Broadcast(room string, msg model.ChatMessage)
}

// Submission is a raw inbound message before validation.
type Submission struct {
	SenderID   string
	SenderName string
	AvatarURL  string
	Content    string
}

// Service is the chat ingestion pipeline and history accessor: it validates
// a submission, persists it, then hands it to the hub for live delivery.
// Persistence is authoritative; broadcast is best-effort on top of it.
type Service struct {
	store  MessageStore
	hub    Broadcaster
	policy *bluemonday.Policy

	mu      sync.Mutex
	roomMus map[string]*sync.Mutex
}

// NewService wires the pipeline. Content is sanitized with bluemonday's
// strict policy before anything is persisted or delivered.
func NewService(store MessageStore, hub Broadcaster) *Service {
	return &Service{
		store:   store,
		hub:     hub,
		policy:  bluemonday.StrictPolicy(),
		roomMus: make(map[string]*sync.Mutex),
	}
}

// roomLock returns the mutex serializing ingestion for one room. Holding it
// across persist+broadcast makes broadcast order equal insert order.
func (s *Service) roomLock(room string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu := s.roomMus[room]
	if mu == nil {
		mu = &sync.Mutex{}
		s.roomMus[room] = mu
	}
	return mu
}

// Post validates sub, persists it as a new ChatMessage, broadcasts it to the
// room, and returns the created message. Validation and storage failures are
// returned to the caller and leave no trace; broadcast failures are invisible
// here (see Hub.Broadcast).
func (s *Service) Post(ctx context.Context, cityID string, sub Submission) (model.ChatMessage, error) {
	cityID = city.Normalize(cityID)
	if !city.Valid(cityID) {
		return model.ChatMessage{}, city.ErrUnknown
	}

	content := strings.TrimSpace(s.policy.Sanitize(sub.Content))
	if content == "" {
		return model.ChatMessage{}, ErrEmptyMessage
	}

	if sub.SenderID == "" || sub.SenderName == "" {
		return model.ChatMessage{}, ErrUnauthenticated
	}

	mu := s.roomLock(cityID)
	mu.Lock()
	defer mu.Unlock()

	msg := model.ChatMessage{
		ID:         uuid.NewString(),
		City:       cityID,
		UserID:     sub.SenderID,
		Username:   sub.SenderName,
		UserAvatar: sub.AvatarURL,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	// The write gets its own deadline so a hung store surfaces as an error
	// instead of wedging the room.
	insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()
	if err := s.store.InsertMessage(insertCtx, msg); err != nil {
		return model.ChatMessage{}, err
	}

	s.hub.Broadcast(cityID, msg)
	return msg, nil
}

// History returns up to limit messages for a room, oldest first. A limit of
// zero or less falls back to the default; anything above the cap is clamped.
func (s *Service) History(ctx context.Context, cityID string, limit int64) ([]model.ChatMessage, error) {
	cityID = city.Normalize(cityID)
	if !city.Valid(cityID) {
		return nil, city.ErrUnknown
	}

	if limit <= 0 {
		limit = HistoryDefault
	}
	if limit > HistoryMax {
		limit = HistoryMax
	}

	return s.store.RecentMessages(ctx, cityID, limit)
}
