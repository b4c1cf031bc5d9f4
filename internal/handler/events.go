package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
	"github.com/pulseofthecity/api/internal/store"
)

// parseLimit clamps a ?limit= query value to (0, max], falling back to def.
func parseLimit(r *http.Request, def, max int64) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ListEvents handles GET /api/events with city/genre/vibe/date/featured
// filters.
func ListEvents(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := store.EventFilter{
			Genre:      city.Normalize(q.Get("genre")),
			Vibe:       city.Normalize(q.Get("vibe")),
			DateFilter: q.Get("date_filter"),
			Featured:   q.Get("featured") == "true",
			Limit:      parseLimit(r, 50, 100),
		}
		if c := q.Get("city"); c != "" {
			filter.City = city.Normalize(c)
		}

		events, err := db.ListEvents(r.Context(), filter)
		if err != nil {
			log.Printf("handler/events: failed to list events: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to load events")
			return
		}

		respondJSON(w, http.StatusOK, events)
	}
}

// GetEvent handles GET /api/events/{id}.
func GetEvent(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := db.GetEvent(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			respondDetail(w, http.StatusNotFound, "Event not found")
			return
		}
		if err != nil {
			log.Printf("handler/events: failed to get event: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to load event")
			return
		}

		respondJSON(w, http.StatusOK, event)
	}
}

// CreateEvent handles POST /api/events. Events posted by promoter accounts
// are featured automatically.
func CreateEvent(db *store.Store) http.HandlerFunc {
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

		var req model.EventCreate
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Title == "" || req.City == "" {
			respondDetail(w, http.StatusBadRequest, "Title and city are required")
			return
		}

		event := model.Event{
			ID:           uuid.NewString(),
			Title:        req.Title,
			Description:  req.Description,
			City:         city.Normalize(req.City),
			VenueName:    req.VenueName,
			VenueAddress: req.VenueAddress,
			Date:         req.Date,
			Time:         req.Time,
			Genre:        req.Genre,
			Vibe:         req.Vibe,
			ImageURL:     req.ImageURL,
			TicketURL:    req.TicketURL,
			Price:        req.Price,
			PromoterID:   user.ID,
			PromoterName: user.Username,
			IsFeatured:   user.IsPromoter,
			CreatedAt:    time.Now().UTC(),
		}
		if err := db.CreateEvent(ctx, event); err != nil {
			log.Printf("handler/events: failed to create event: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to create event")
			return
		}

		respondJSON(w, http.StatusOK, event)
	}
}

// AttendEvent handles POST /api/events/{id}/attend.
func AttendEvent(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.UserIDFromContext(r.Context()); err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		err := db.IncrementAttendees(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			respondDetail(w, http.StatusNotFound, "Event not found")
			return
		}
		if err != nil {
			log.Printf("handler/events: failed to record attendance: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to record attendance")
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "You're attending this event!"})
	}
}
