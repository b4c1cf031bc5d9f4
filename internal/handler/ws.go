package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/pulseofthecity/api/internal/auth"
	"github.com/pulseofthecity/api/internal/chat"
	"github.com/pulseofthecity/api/internal/city"
)

// ServeChatWS upgrades GET /ws/chat/{city} to a websocket bound to one city
// room. An optional ?token= query parameter carries a JWT; when present and
// valid, the connection gets a verified identity and inbound messages may
// omit their sender fields.
//
// Clients are expected to fetch /api/chat/{city}/messages for history before
// (or right after) connecting; registration happens before the pumps start so
// the window between history and live delivery stays small.
func ServeChatWS(hub *chat.Hub, svc *chat.Service, users UserGetter, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cityID := city.Normalize(chi.URLParam(r, "city"))
		if !city.Valid(cityID) {
			respondDetail(w, http.StatusNotFound, "City not found")
			return
		}

		var ident chat.Identity
		if token := r.URL.Query().Get("token"); token != "" {
			userID, err := auth.ValidateJWT(token, jwtSecret)
			if err != nil {
				respondDetail(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			user, err := users.GetUserByID(ctx, userID)
			if err != nil {
				respondDetail(w, http.StatusUnauthorized, "User not found")
				return
			}
			ident = chat.Identity{
				UserID:    user.ID,
				Username:  user.Username,
				AvatarURL: user.AvatarURL,
			}
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Printf("handler/ws: failed to upgrade connection: %v", err)
			return
		}

		c := chat.NewClient(conn, cityID, ident, hub, svc)
		c.SetMessageLimiter(30, time.Minute)

		if err := hub.Register(c); err != nil {
			conn.Close(websocket.StatusPolicyViolation, "unknown city")
			return
		}

		log.Printf("handler/ws: connection joined room %q (user %s)", cityID, ident.UserID)

		// Block on the read pump; returning from the handler cancels the
		// request context and would tear the socket down.
		go c.WriteMessages(ctx)
		c.ReadMessages(ctx)
	}
}
