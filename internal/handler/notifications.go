package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/store"
)

// ListNotifications handles GET /api/notifications.
func ListNotifications(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		notifications, err := db.UserNotifications(r.Context(), userID, parseLimit(r, 50, 100))
		if err != nil {
			log.Printf("handler/notifications: failed to list: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to load notifications")
			return
		}

		respondJSON(w, http.StatusOK, notifications)
	}
}

// MarkNotificationRead handles PUT /api/notifications/{id}/read.
func MarkNotificationRead(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if err := db.MarkNotificationRead(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
			log.Printf("handler/notifications: failed to mark read: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to update notification")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Marked as read"})
	}
}

// UnreadNotificationCount handles GET /api/notifications/unread-count.
func UnreadNotificationCount(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := auth.UserIDFromContext(r.Context())
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		count, err := db.UnreadNotificationCount(r.Context(), userID)
		if err != nil {
			log.Printf("handler/notifications: failed to count unread: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to count notifications")
			return
		}

		respondJSON(w, http.StatusOK, map[string]int64{"count": count})
	}
}
