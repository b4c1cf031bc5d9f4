package handler

import (
	"errors"
	"log"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/city"
	"github.com/pulseofthecity/api/internal/model"
	"github.com/pulseofthecity/api/internal/store"
)

// authUser is the trimmed user object returned alongside a fresh token.
type authUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	City       string `json:"city"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	IsVerified bool   `json:"is_verified"`
	IsPromoter bool   `json:"is_promoter"`
}

// Register handles POST /api/auth/register.
func Register(db *store.Store, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Username string `json:"username"`
			City     string `json:"city"`
		}
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if _, err := mail.ParseAddress(req.Email); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid email address")
			return
		}
		if req.Password == "" || req.Username == "" {
			respondDetail(w, http.StatusBadRequest, "Username and password are required")
			return
		}
		if req.City == "" {
			req.City = "miami"
		}

		switch _, err := db.GetUserByEmail(ctx, req.Email); {
		case err == nil:
			respondDetail(w, http.StatusBadRequest, "Email already registered")
			return
		case !errors.Is(err, store.ErrNotFound):
			log.Printf("handler/account: email lookup failed: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}
		switch _, err := db.GetUserByUsername(ctx, req.Username); {
		case err == nil:
			respondDetail(w, http.StatusBadRequest, "Username already taken")
			return
		case !errors.Is(err, store.ErrNotFound):
			log.Printf("handler/account: username lookup failed: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Printf("handler/account: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}

		user := model.User{
			ID:             uuid.NewString(),
			Email:          req.Email,
			Username:       req.Username,
			HashedPassword: hashed,
			City:           city.Normalize(req.City),
			FavoriteGenres: []string{},
			FavoriteVibes:  []string{},
			CreatedAt:      time.Now().UTC(),
		}
		if err := db.CreateUser(ctx, user); err != nil {
			log.Printf("handler/account: failed to create user: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}

		token, err := auth.MakeJWT(user.ID, jwtSecret, auth.TokenTTL)
		if err != nil {
			log.Printf("handler/account: failed to make JWT: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}

		slog.InfoContext(ctx, "user signed up",
			slog.String("username", user.Username))

		respondJSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user": authUser{
				ID:       user.ID,
				Email:    user.Email,
				Username: user.Username,
				City:     user.City,
			},
		})
	}
}

// Login handles POST /api/auth/login.
func Login(db *store.Store, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeJSON(r, &req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := db.GetUserByEmail(ctx, req.Email)
		if errors.Is(err, store.ErrNotFound) {
			respondDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			log.Printf("handler/account: email lookup failed: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}

		ok, err := auth.CheckPasswordHash(req.Password, user.HashedPassword)
		if err != nil {
			log.Printf("handler/account: cannot verify password: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}
		if !ok {
			respondDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := auth.MakeJWT(user.ID, jwtSecret, auth.TokenTTL)
		if err != nil {
			log.Printf("handler/account: failed to make JWT: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}

		slog.InfoContext(ctx, "user logged in",
			slog.String("username", user.Username))

		respondJSON(w, http.StatusOK, map[string]any{
			"token": token,
			"user": authUser{
				ID:         user.ID,
				Email:      user.Email,
				Username:   user.Username,
				City:       user.City,
				AvatarURL:  user.AvatarURL,
				IsVerified: user.IsVerified,
				IsPromoter: user.IsPromoter,
			},
		})
	}
}

// Me handles GET /api/auth/me.
func Me(db *store.Store) http.HandlerFunc {
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

		respondJSON(w, http.StatusOK, user)
	}
}

// UpdateMe handles PUT /api/auth/me.
func UpdateMe(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := auth.UserIDFromContext(ctx)
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		var upd model.UserUpdate
		if err := decodeJSON(r, &upd); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if upd.City != nil {
			normalized := city.Normalize(*upd.City)
			upd.City = &normalized
		}

		user, err := db.UpdateUser(ctx, userID, upd)
		if err != nil {
			log.Printf("handler/account: failed to update user: %v", err)
			respondDetail(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
