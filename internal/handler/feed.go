package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
	"github.com/pulseofthecity/api/internal/store"
)

var feedPolicy = bluemonday.StrictPolicy()

// CityFeed handles GET /api/feed/{city}, newest posts first.
func CityFeed(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cityID := city.Normalize(chi.URLParam(r, "city"))

		posts, err := db.CityFeed(r.Context(), cityID, parseLimit(r, 50, 100))
		if err != nil {
			log.Printf("handler/feed: failed to load feed for %q: %v", cityID, err)
			respondDetail(w, http.StatusInternalServerError, "Failed to load feed")
			return
		}

		respondJSON(w, http.StatusOK, posts)
	}
}

// CreateFeedPost handles POST /api/feed.
func CreateFeedPost(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := auth.UserIDFromContext(ctx)
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		user, err := db.GetUserByID(ctx, userID)
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "User not found")
			return
		}

		var req model.FeedPostCreate
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		content := strings.TrimSpace(feedPolicy.Sanitize(req.Content))
		if content == "" {
			respondDetail(w, http.StatusBadRequest, "Post content is empty")
			return
		}
		if req.PostType == "" {
			req.PostType = "update"
		}

		post := model.FeedPost{
			ID:         uuid.NewString(),
			Content:    content,
			City:       city.Normalize(req.City),
			ImageURL:   req.ImageURL,
			EventID:    req.EventID,
			PostType:   req.PostType,
			UserID:     user.ID,
			Username:   user.Username,
			UserAvatar: user.AvatarURL,
			IsVerified: user.IsVerified,
			CreatedAt:  time.Now().UTC(),
		}
		if err := db.CreateFeedPost(ctx, post); err != nil {
			log.Printf("handler/feed: failed to create post: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to create post")
			return
		}

		respondJSON(w, http.StatusOK, post)
	}
}

// LikeFeedPost handles POST /api/feed/{id}/like.
func LikeFeedPost(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.UserIDFromContext(r.Context()); err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		err := db.LikeFeedPost(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			respondDetail(w, http.StatusNotFound, "Post not found")
			return
		}
		if err != nil {
			log.Printf("handler/feed: failed to like post: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to like post")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Post liked"})
	}
}
