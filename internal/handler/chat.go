package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/chat"
	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
	"github.com/pulseofthecity/api/internal/store"
)

// UserGetter resolves an authenticated user id to its profile.
type UserGetter interface {
	GetUserByID(ctx context.Context, id string) (model.User, error)
}

// ChatHistory serves GET /api/chat/{city}/messages: the most recent messages
// of a room, oldest first, for replay when a client joins.
func ChatHistory(svc *chat.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cityID := chi.URLParam(r, "city")

		var limit int64
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				respondDetail(w, http.StatusBadRequest, "Invalid limit")
				return
			}
			limit = parsed
		}

		messages, err := svc.History(r.Context(), cityID, limit)
		switch {
		case errors.Is(err, city.ErrUnknown):
			respondDetail(w, http.StatusNotFound, "City not found")
			return
		case err != nil:
			log.Printf("handler/chat: failed to load history for %q: %v", cityID, err)
			respondDetail(w, http.StatusInternalServerError, "Failed to load messages")
			return
		}

		respondJSON(w, http.StatusOK, messages)
	}
}

// PostChatMessage serves POST /api/chat/{city}/message: the synchronous
// fallback for clients without an open websocket. The response tells the
// sender authoritatively whether the message was durably recorded; it says
// nothing about live delivery.
func PostChatMessage(svc *chat.Service, users UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := auth.UserIDFromContext(ctx)
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := users.GetUserByID(ctx, userID)
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "User not found")
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		msg, err := svc.Post(ctx, chi.URLParam(r, "city"), chat.Submission{
			SenderID:   user.ID,
			SenderName: user.Username,
			AvatarURL:  user.AvatarURL,
			Content:    req.Content,
		})

		var storageErr *store.StorageError
		switch {
		case errors.Is(err, city.ErrUnknown):
			respondDetail(w, http.StatusNotFound, "City not found")
		case errors.Is(err, chat.ErrEmptyMessage):
			respondDetail(w, http.StatusBadRequest, "Message content is empty")
		case errors.Is(err, chat.ErrUnauthenticated):
			respondDetail(w, http.StatusUnauthorized, "Sender identity required")
		case errors.As(err, &storageErr):
			log.Printf("handler/chat: failed to persist message: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to send message")
		case err != nil:
			log.Printf("handler/chat: unexpected error: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to send message")
		default:
			respondJSON(w, http.StatusOK, msg)
		}
	}
}
