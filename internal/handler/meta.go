package handler

import (
	"net/http"

	"github.com/pulseofthecity/api/internal/city"
)

// Root handles GET /api/.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"message": "Pulse of the City API",
			"version": "1.0.0",
		})
	}
}

// Cities handles GET /api/cities.
func Cities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"cities": city.List()})
	}
}

// Genres handles GET /api/genres.
func Genres() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"genres": city.Genres})
	}
}

// Vibes handles GET /api/vibes.
func Vibes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"vibes": city.Vibes})
	}
}
