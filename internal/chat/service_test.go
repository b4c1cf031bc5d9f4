package chat

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
	"github.com/pulseofthecity/api/internal/store"
)

// fakeStore keeps messages in memory, ascending by insertion order.
type fakeStore struct {
	mu       sync.Mutex
	messages []model.ChatMessage
	insert   error // forced insert failure
}

func (f *fakeStore) InsertMessage(ctx context.Context, msg model.ChatMessage) error {
	if f.insert != nil {
		return f.insert
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeStore) RecentMessages(ctx context.Context, cityID string, limit int64) ([]model.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []model.ChatMessage
	for _, m := range f.messages {
		if m.City == cityID {
			matched = append(matched, m)
		}
	}
	if int64(len(matched)) > limit {
		matched = matched[int64(len(matched))-limit:]
	}
	return matched, nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []model.ChatMessage
}

func (f *fakeBroadcaster) Broadcast(room string, msg model.ChatMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
}

func newTestService() (*Service, *fakeStore, *fakeBroadcaster) {
	st := &fakeStore{}
	bc := &fakeBroadcaster{}
	return NewService(st, bc), st, bc
}

func TestPostPersistsAndBroadcasts(t *testing.T) {
	svc, st, bc := newTestService()

	msg, err := svc.Post(context.Background(), "miami", Submission{
		SenderID:   "u1",
		SenderName: "Test",
		Content:    "Test message",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Equal(t, "miami", msg.City)
	assert.Equal(t, "Test message", msg.Content)

	require.Len(t, st.messages, 1)
	assert.Equal(t, msg, st.messages[0])

	require.Len(t, bc.events, 1)
	assert.Equal(t, msg, bc.events[0])

	// The persisted message is the most recent history entry.
	history, err := svc.History(context.Background(), "miami", 50)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, msg.ID, history[len(history)-1].ID)
}

func TestPostNormalizesCity(t *testing.T) {
	svc, st, _ := newTestService()

	msg, err := svc.Post(context.Background(), "  MIAMI ", Submission{
		SenderID: "u1", SenderName: "Test", Content: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "miami", msg.City)
	assert.Equal(t, "miami", st.messages[0].City)
}

func TestPostUnknownRoom(t *testing.T) {
	svc, st, bc := newTestService()

	_, err := svc.Post(context.Background(), "atlantis", Submission{
		SenderID: "u1", SenderName: "Test", Content: "hi",
	})
	assert.ErrorIs(t, err, city.ErrUnknown)
	assert.Empty(t, st.messages, "rejected submissions must not be persisted")
	assert.Empty(t, bc.events)
}

func TestPostRejectsEmptyContent(t *testing.T) {
	svc, st, bc := newTestService()

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.Post(context.Background(), "miami", Submission{
			SenderID: "u1", SenderName: "Test", Content: content,
		})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	assert.Empty(t, st.messages)
	assert.Empty(t, bc.events)

	history, err := svc.History(context.Background(), "miami", 50)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPostRejectsMissingIdentity(t *testing.T) {
	svc, st, _ := newTestService()

	_, err := svc.Post(context.Background(), "miami", Submission{Content: "hi"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Post(context.Background(), "miami", Submission{SenderID: "u1", Content: "hi"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.Empty(t, st.messages)
}

func TestPostSanitizesContent(t *testing.T) {
	svc, st, _ := newTestService()

	msg, err := svc.Post(context.Background(), "miami", Submission{
		SenderID: "u1", SenderName: "Test",
		Content: `hello <script>alert("xss")</script>`,
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.Content, "<script>")
	assert.NotContains(t, st.messages[0].Content, "<script>")

	// Content that is nothing but markup sanitizes down to empty.
	_, err = svc.Post(context.Background(), "miami", Submission{
		SenderID: "u1", SenderName: "Test",
		Content: "<script>alert(1)</script>",
	})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestPostStorageFailureSkipsBroadcast(t *testing.T) {
	svc, st, bc := newTestService()
	st.insert = &store.StorageError{Op: "insert chat message", Err: context.DeadlineExceeded}

	_, err := svc.Post(context.Background(), "miami", Submission{
		SenderID: "u1", SenderName: "Test", Content: "hi",
	})

	var storageErr *store.StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.Empty(t, bc.events, "a message that was not persisted must not be broadcast")
}

func TestPostPersistsWithZeroLiveConnections(t *testing.T) {
	// A real hub with nobody in the room: persistence must still succeed.
	st := &fakeStore{}
	svc := NewService(st, NewHub())

	msg, err := svc.Post(context.Background(), "kingston", Submission{
		SenderID: "u1", SenderName: "Test", Content: "anyone here?",
	})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), "kingston", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, msg.ID, history[0].ID)
}

func TestHistoryOrderingAndLimit(t *testing.T) {
	svc, _, _ := newTestService()

	for i := 0; i < 5; i++ {
		_, err := svc.Post(context.Background(), "nyc", Submission{
			SenderID: "u1", SenderName: "Test", Content: "msg",
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), "nyc", 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt),
			"history must be in non-decreasing timestamp order")
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	st := &fakeStore{}
	svc := NewService(st, &fakeBroadcaster{})

	for i := 0; i < HistoryMax+50; i++ {
		st.messages = append(st.messages, model.ChatMessage{ID: "m", City: "miami"})
	}

	history, err := svc.History(context.Background(), "miami", 10_000)
	require.NoError(t, err)
	assert.Len(t, history, HistoryMax)

	// Zero falls back to the default.
	history, err = svc.History(context.Background(), "miami", 0)
	require.NoError(t, err)
	assert.Len(t, history, HistoryDefault)
}

func TestHistoryUnknownRoom(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.History(context.Background(), "atlantis", 10)
	assert.ErrorIs(t, err, city.ErrUnknown)
}

func TestBroadcastOrderMatchesIngestionOrder(t *testing.T) {
	svc, _, bc := newTestService()

	contents := []string{"one", "two", "three", "four"}
	for _, c := range contents {
		_, err := svc.Post(context.Background(), "miami", Submission{
			SenderID: "u1", SenderName: "Test", Content: c,
		})
		require.NoError(t, err)
	}

	require.Len(t, bc.events, len(contents))
	for i, c := range contents {
		assert.Equal(t, c, bc.events[i].Content)
	}
}
