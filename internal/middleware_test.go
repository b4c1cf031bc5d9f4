package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pulseofthecity/api/internal/auth"
)

func TestRequireAuth(t *testing.T) {
	const secret = "test-secret"

	validToken, err := auth.MakeJWT("user-123", secret, 5*time.Minute)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	expiredToken, err := auth.MakeJWT("user-123", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	tests := []struct {
		name              string
		header            string
		wantHandlerCalled bool
		wantCode          int
	}{
		{"valid_token", "Bearer " + validToken, true, http.StatusOK},
		{"expired_token", "Bearer " + expiredToken, false, http.StatusUnauthorized},
		{"wrong_scheme", "Basic " + validToken, false, http.StatusUnauthorized},
		{"missing_header", "", false, http.StatusUnauthorized},
		{"garbage_token", "Bearer not-a-jwt", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			isHandlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				isHandlerCalled = true

				userID, err := auth.UserIDFromContext(r.Context())
				if err != nil {
					t.Errorf("user id missing from context: %v", err)
				}
				if userID != "user-123" {
					t.Errorf("want user-123, got %s", userID)
				}

				w.WriteHeader(http.StatusOK)
			})

			RequireAuth(secret)(next).ServeHTTP(rec, req)

			if isHandlerCalled != tt.wantHandlerCalled {
				t.Errorf("handler called = %v, want %v", isHandlerCalled, tt.wantHandlerCalled)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("want %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	rec := httptest.NewRecorder()

	called := false
	CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	if called {
		t.Error("preflight requests must not reach the handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("want %d, got %d", http.StatusNoContent, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("want *, got %q", got)
	}
}
