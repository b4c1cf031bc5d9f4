package handler

import (
	"log"
	"net/http"

	"github.com/pulseofthecity/api/internal/store"
)

// Seed handles POST /api/seed: loads demo data on a fresh database, refuses
// once events exist.
func Seed(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := db.Seed(r.Context())
		if err != nil {
			log.Printf("handler/seed: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Failed to seed data")
			return
		}

		if res.AlreadySeeded {
			respondJSON(w, http.StatusOK, map[string]string{"message": "Data already seeded"})
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"message": "Data seeded successfully",
			"events":  res.Events,
			"venues":  res.Venues,
			"posts":   res.Posts,
		})
	}
}
