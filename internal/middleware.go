package internal

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pulseofthecity/api/internal/auth"
)

// RequireAuth validates the request's bearer JWT and stores the subject user
// id on the context. Requests without a valid token get a 401.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if err != nil {
				unauthorized(w)
				return
			}

			userID, err := auth.ValidateJWT(token, secret)
			if err != nil {
				unauthorized(w)
				return
			}

			r = r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck
	json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid token"})
}

// CORS mirrors the original deployment: the React frontend is served from a
// different origin, so everything is allowed through.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
