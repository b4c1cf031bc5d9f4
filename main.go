// Package main our entry point.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pulseofthecity/api/internal"
	"github.com/pulseofthecity/api/internal/chat"
	"github.com/pulseofthecity/api/internal/config"
	"github.com/pulseofthecity/api/internal/handler"
	"github.com/pulseofthecity/api/internal/ratelimiter"
	"github.com/pulseofthecity/api/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Init DB
	log.Println("Starting application...")
	log.Println("Initializing MongoDB connection...")

	db, err := store.New(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		log.Fatalf("could not connect to mongodb: %v", err)
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("could not create indexes: %v", err)
	}

	// The hub owns every city room's live connection set; the chat service
	// persists a message and then hands it to the hub for fan-out.
	hub := chat.NewHub()
	chatSvc := chat.NewService(db, hub)

	authLimiter := ratelimiter.NewIPRateLimiter(10, time.Minute, ratelimiter.CleanupOpts{
		TTL:      10 * time.Minute,
		Interval: time.Minute,
	})
	defer authLimiter.Cancel()

	r := chi.NewRouter()
	r.Use(internal.CORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", handler.Root())
		r.Get("/cities", handler.Cities())
		r.Get("/genres", handler.Genres())
		r.Get("/vibes", handler.Vibes())
		r.Post("/seed", handler.Seed(db))

		r.Route("/auth", func(r chi.Router) {
			r.With(authLimiter.Middleware).Post("/register", handler.Register(db, cfg.JWTSecret))
			r.With(authLimiter.Middleware).Post("/login", handler.Login(db, cfg.JWTSecret))

			r.Group(func(r chi.Router) {
				r.Use(internal.RequireAuth(cfg.JWTSecret))
				r.Get("/me", handler.Me(db))
				r.Put("/me", handler.UpdateMe(db))
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", handler.ListEvents(db))
			r.Get("/{id}", handler.GetEvent(db))

			r.Group(func(r chi.Router) {
				r.Use(internal.RequireAuth(cfg.JWTSecret))
				r.Post("/", handler.CreateEvent(db))
				r.Post("/{id}/attend", handler.AttendEvent(db))
			})
		})

		r.Route("/feed", func(r chi.Router) {
			r.Get("/{city}", handler.CityFeed(db))

			r.Group(func(r chi.Router) {
				r.Use(internal.RequireAuth(cfg.JWTSecret))
				r.Post("/", handler.CreateFeedPost(db))
				r.Post("/{id}/like", handler.LikeFeedPost(db))
			})
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/{city}/messages", handler.ChatHistory(chatSvc))
			r.With(internal.RequireAuth(cfg.JWTSecret)).
				Post("/{city}/message", handler.PostChatMessage(chatSvc, db))
		})

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", handler.ListVenues(db))
			r.Get("/{id}", handler.GetVenue(db))
			r.With(internal.RequireAuth(cfg.JWTSecret)).Post("/", handler.CreateVenue(db))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(internal.RequireAuth(cfg.JWTSecret))
			r.Get("/", handler.ListNotifications(db))
			r.Get("/unread-count", handler.UnreadNotificationCount(db))
			r.Put("/{id}/read", handler.MarkNotificationRead(db))
		})
	})

	r.Get("/ws/chat/{city}", handler.ServeChatWS(hub, chatSvc, db, cfg.JWTSecret))

	server := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		log.Printf("Server starting at 0.0.0.0:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutdown signal received; shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println(err)
	}

	if err := db.Close(shutdownCtx); err != nil {
		log.Printf("couldn't close mongodb connection: %+v", err)
	}

	log.Println("Server stopped")
}
