package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pulseofthecity/api/internal/model"
)

// SeedResult reports what Seed inserted.
type SeedResult struct {
	AlreadySeeded bool
	Events        int
	Venues        int
	Posts         int
}

// Seed loads demo events, venues, and feed posts. It is a no-op when any
// events already exist, so it can be called on a fresh deployment without
// risking duplicates.
func (s *Store) Seed(ctx context.Context) (SeedResult, error) {
	existing, err := s.CountEvents(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	if existing > 0 {
		return SeedResult{AlreadySeeded: true}, nil
	}

	now := time.Now().UTC()
	date := func(days int) string { return now.AddDate(0, 0, days).Format("2006-01-02") }

	events := []interface{}{
		model.Event{
			ID:           uuid.NewString(),
			Title:        "Dancehall Fridays at Fiction",
			Description:  "The biggest dancehall party in Kingston. Live DJs, bottle service, and the hottest vibes.",
			City:         "kingston",
			VenueName:    "Fiction Nightclub",
			VenueAddress: "67 Knutsford Blvd, Kingston",
			Date:         date(1), Time: "10:00 PM",
			Genre: []string{"dancehall", "reggae"}, Vibe: "lit",
			ImageURL: "https://images.unsplash.com/photo-1574155331040-87b9dae81218?w=800",
			Price:    "$20 USD", IsFeatured: true, AttendeeCount: 234, CreatedAt: now,
		},
		model.Event{
			ID:           uuid.NewString(),
			Title:        "Rooftop Sessions",
			Description:  "Sunset vibes with R&B and Neo-Soul. Dress code: Smart Casual",
			City:         "kingston",
			VenueName:    "Sky Lounge",
			VenueAddress: "The Jamaica Pegasus Hotel",
			Date:         date(2), Time: "6:00 PM",
			Genre: []string{"rnb"}, Vibe: "upscale",
			ImageURL: "https://images.unsplash.com/photo-1622962284117-b8a4f9c43b9f?w=800",
			Price:    "$30 USD", IsFeatured: true, AttendeeCount: 89, CreatedAt: now,
		},
		model.Event{
			ID:           uuid.NewString(),
			Title:        "Soca Brunch Miami",
			Description:  "Bottomless brunch with the best soca music. Caribbean food, unlimited drinks.",
			City:         "miami",
			VenueName:    "Clevelander South Beach",
			VenueAddress: "1020 Ocean Dr, Miami Beach",
			Date:         date(1), Time: "12:00 PM",
			Genre: []string{"soca", "dancehall"}, Vibe: "lit",
			ImageURL: "https://images.unsplash.com/photo-1758200519616-56bac165cb33?w=800",
			Price:    "$65 USD", IsFeatured: true, AttendeeCount: 156, CreatedAt: now,
		},
		model.Event{
			ID:           uuid.NewString(),
			Title:        "Afrobeat Takeover",
			Description:  "Miami's premier Afrobeat party. Live Afrohouse, Amapiano, and Afrobeat.",
			City:         "miami",
			VenueName:    "E11even Miami",
			VenueAddress: "29 NE 11th St, Miami",
			Date:         date(3), Time: "11:00 PM",
			Genre: []string{"afrobeat"}, Vibe: "upscale",
			ImageURL: "https://images.unsplash.com/photo-1763322564752-12ce8fae2bfe?w=800",
			Price:    "$40 USD", IsFeatured: true, AttendeeCount: 312, CreatedAt: now,
		},
		model.Event{
			ID:           uuid.NewString(),
			Title:        "Hip-Hop Wednesdays",
			Description:  "Old school meets new school. Classic hip-hop all night long.",
			City:         "nyc",
			VenueName:    "Marquee New York",
			VenueAddress: "289 10th Ave, New York",
			Date:         date(2), Time: "10:00 PM",
			Genre: []string{"hiphop", "rnb"}, Vibe: "upscale",
			ImageURL: "https://images.unsplash.com/photo-1759336773390-200b9e86b386?w=800",
			Price:    "$30 USD", IsFeatured: true, AttendeeCount: 445, CreatedAt: now,
		},
		model.Event{
			ID:           uuid.NewString(),
			Title:        "Underground Reggae",
			Description:  "Roots, dub, and conscious reggae in Brooklyn. Strictly vinyl selections.",
			City:         "nyc",
			VenueName:    "The Basement Brooklyn",
			VenueAddress: "446 Meeker Ave, Brooklyn",
			Date:         date(1), Time: "9:00 PM",
			Genre: []string{"reggae"}, Vibe: "underground",
			ImageURL: "https://images.unsplash.com/photo-1762294049200-608cf4fe13cf?w=800",
			Price:    "$15 USD", IsFeatured: false, AttendeeCount: 78, CreatedAt: now,
		},
	}

	venues := []interface{}{
		model.Venue{
			ID:          uuid.NewString(),
			Name:        "Fiction Nightclub",
			City:        "kingston",
			Address:     "67 Knutsford Blvd, Kingston",
			Description: "Kingston's premier nightlife destination. Three floors of music.",
			ImageURL:    "https://images.unsplash.com/photo-1574155331040-87b9dae81218?w=800",
			Genres:      []string{"dancehall", "reggae", "hiphop"},
			Vibes:       []string{"lit", "upscale"},
			IsVerified:  true, CreatedAt: now,
		},
		model.Venue{
			ID:          uuid.NewString(),
			Name:        "E11even Miami",
			City:        "miami",
			Address:     "29 NE 11th St, Miami",
			Description: "24/7 ultraclub in the heart of downtown Miami.",
			ImageURL:    "https://images.unsplash.com/photo-1763322564752-12ce8fae2bfe?w=800",
			Genres:      []string{"edm", "hiphop", "afrobeat"},
			Vibes:       []string{"upscale", "lit"},
			IsVerified:  true, CreatedAt: now,
		},
		model.Venue{
			ID:          uuid.NewString(),
			Name:        "Marquee New York",
			City:        "nyc",
			Address:     "289 10th Ave, New York",
			Description: "Iconic NYC nightclub in Chelsea with world-class DJs.",
			ImageURL:    "https://images.unsplash.com/photo-1759336773390-200b9e86b386?w=800",
			Genres:      []string{"edm", "hiphop", "rnb"},
			Vibes:       []string{"upscale"},
			IsVerified:  true, CreatedAt: now,
		},
	}

	posts := []interface{}{
		model.FeedPost{
			ID:      uuid.NewString(),
			Content: "Kingston heating up tonight! Fiction is PACKED 🔥",
			City:    "kingston", PostType: "vibe_check",
			UserID: "system", Username: "PulseKingston",
			IsVerified: true, Likes: 45, CreatedAt: now,
		},
		model.FeedPost{
			ID:      uuid.NewString(),
			Content: "Who's coming to Soca Brunch tomorrow? The lineup is crazy!",
			City:    "miami", PostType: "announcement",
			UserID: "system", Username: "PulseMiami",
			IsVerified: true, Likes: 89, CreatedAt: now,
		},
		model.FeedPost{
			ID:      uuid.NewString(),
			Content: "NYC late night crowd moving to Marquee. Hip-Hop Wednesdays never disappoints.",
			City:    "nyc", PostType: "update",
			UserID: "system", Username: "PulseNYC",
			IsVerified: true, Likes: 123, CreatedAt: now,
		},
	}

	if _, err := s.db.Collection("events").InsertMany(ctx, events); err != nil {
		return SeedResult{}, storageErr("seed events", err)
	}
	if _, err := s.db.Collection("venues").InsertMany(ctx, venues); err != nil {
		return SeedResult{}, storageErr("seed venues", err)
	}
	if _, err := s.db.Collection("feed_posts").InsertMany(ctx, posts); err != nil {
		return SeedResult{}, storageErr("seed feed posts", err)
	}

	return SeedResult{Events: len(events), Venues: len(venues), Posts: len(posts)}, nil
}
