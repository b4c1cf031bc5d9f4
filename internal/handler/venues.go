package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
	"github.com/pulseofthecity/api/internal/store"
)

// ListVenues handles GET /api/venues.
func ListVenues(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cityID string
		if c := r.URL.Query().Get("city"); c != "" {
			cityID = city.Normalize(c)
		}

		venues, err := db.ListVenues(r.Context(), cityID, parseLimit(r, 50, 100))
		if err != nil {
			log.Printf("handler/venues: failed to list venues: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to load venues")
			return
		}

		respondJSON(w, http.StatusOK, venues)
	}
}

// GetVenue handles GET /api/venues/{id}.
func GetVenue(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		venue, err := db.GetVenue(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			respondDetail(w, http.StatusNotFound, "Venue not found")
			return
		}
		if err != nil {
			log.Printf("handler/venues: failed to get venue: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to load venue")
			return
		}

		respondJSON(w, http.StatusOK, venue)
	}
}

// CreateVenue handles POST /api/venues. Venues created by promoter accounts
// start out verified.
func CreateVenue(db *store.Store) http.HandlerFunc {
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

		var req model.VenueCreate
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" || req.City == "" {
			respondDetail(w, http.StatusBadRequest, "Name and city are required")
			return
		}

		venue := model.Venue{
			ID:          uuid.NewString(),
			Name:        req.Name,
			City:        city.Normalize(req.City),
			Address:     req.Address,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Genres:      req.Genres,
			Vibes:       req.Vibes,
			Instagram:   req.Instagram,
			Website:     req.Website,
			IsVerified:  user.IsPromoter,
			OwnerID:     user.ID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := db.CreateVenue(ctx, venue); err != nil {
			log.Printf("handler/venues: failed to create venue: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to create venue")
			return
		}

		respondJSON(w, http.StatusOK, venue)
	}
}
