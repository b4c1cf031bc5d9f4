package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/chat"
	"github.com/pulseofthecity/api/internal/model"
	"github.com/pulseofthecity/api/internal/store"
)

type memMessageStore struct {
	messages []model.ChatMessage
}

func (m *memMessageStore) InsertMessage(ctx context.Context, msg model.ChatMessage) error {
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memMessageStore) RecentMessages(ctx context.Context, cityID string, limit int64) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, msg := range m.messages {
		if msg.City == cityID {
			out = append(out, msg)
		}
	}
	if int64(len(out)) > limit {
		out = out[int64(len(out))-limit:]
	}
	return out, nil
}

type memUsers struct {
	users map[string]model.User
}

func (m *memUsers) GetUserByID(ctx context.Context, id string) (model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	return u, nil
}

// asUser fakes the auth middleware by planting the user id on the context.
func asUser(userID string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}

func newChatRouter(t *testing.T, userID string) (*chi.Mux, *memMessageStore) {
	t.Helper()

	st := &memMessageStore{}
	svc := chat.NewService(st, chat.NewHub())
	users := &memUsers{users: map[string]model.User{
		"u1": {ID: "u1", Username: "Test", AvatarURL: "https://cdn.example/u1.png"},
	}}

	r := chi.NewRouter()
	r.Get("/api/chat/{city}/messages", ChatHistory(svc))
	r.Post("/api/chat/{city}/message", asUser(userID, PostChatMessage(svc, users)))
	return r, st
}

func TestPostThenHistoryRoundTrip(t *testing.T) {
	router, _ := newChatRouter(t, "u1")

	req := httptest.NewRequest(http.MethodPost, "/api/chat/miami/message",
		strings.NewReader(`{"content": "Test message"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created model.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "miami", created.City)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, "Test", created.Username)
	assert.False(t, created.CreatedAt.IsZero())

	req = httptest.NewRequest(http.MethodGet, "/api/chat/miami/messages?limit=50", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var history []model.ChatMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.NotEmpty(t, history)
	assert.Equal(t, created.ID, history[len(history)-1].ID)
}

func TestHistoryUnknownCity(t *testing.T) {
	router, _ := newChatRouter(t, "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/atlantis/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "City not found")
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	router, _ := newChatRouter(t, "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/miami/messages?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMessageEmptyContent(t *testing.T) {
	router, st := newChatRouter(t, "u1")

	req := httptest.NewRequest(http.MethodPost, "/api/chat/miami/message",
		strings.NewReader(`{"content": "   "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, st.messages, "rejected submissions must leave no trace in the store")
}

func TestPostMessageUnknownCity(t *testing.T) {
	router, _ := newChatRouter(t, "u1")

	req := httptest.NewRequest(http.MethodPost, "/api/chat/atlantis/message",
		strings.NewReader(`{"content": "hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostMessageUnknownUser(t *testing.T) {
	router, _ := newChatRouter(t, "ghost")

	req := httptest.NewRequest(http.MethodPost, "/api/chat/miami/message",
		strings.NewReader(`{"content": "hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
