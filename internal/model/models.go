// Package model defines the documents stored in MongoDB and served over the API.
package model

import "time"

// User is the users collection document. HashedPassword never leaves the
// server; Profile strips it for responses.
type User struct {
	ID             string    `bson:"id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	Username       string    `bson:"username" json:"username"`
	HashedPassword string    `bson:"password" json:"-"`
	City           string    `bson:"city" json:"city"`
	AvatarURL      string    `bson:"avatar_url" json:"avatar_url,omitempty"`
	Bio            string    `bson:"bio" json:"bio,omitempty"`
	FavoriteGenres []string  `bson:"favorite_genres" json:"favorite_genres"`
	FavoriteVibes  []string  `bson:"favorite_vibes" json:"favorite_vibes"`
	IsVerified     bool      `bson:"is_verified" json:"is_verified"`
	IsPromoter     bool      `bson:"is_promoter" json:"is_promoter"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// UserUpdate carries the mutable profile fields. Nil means "leave unchanged".
type UserUpdate struct {
	Username       *string   `json:"username"`
	City           *string   `json:"city"`
	AvatarURL      *string   `json:"avatar_url"`
	Bio            *string   `json:"bio"`
	FavoriteGenres *[]string `json:"favorite_genres"`
	FavoriteVibes  *[]string `json:"favorite_vibes"`
}

// Event is a nightlife event listing.
type Event struct {
	ID            string    `bson:"id" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Description   string    `bson:"description" json:"description"`
	City          string    `bson:"city" json:"city"`
	VenueName     string    `bson:"venue_name" json:"venue_name"`
	VenueAddress  string    `bson:"venue_address" json:"venue_address"`
	Date          string    `bson:"date" json:"date"`
	Time          string    `bson:"time" json:"time"`
	Genre         []string  `bson:"genre" json:"genre"`
	Vibe          string    `bson:"vibe" json:"vibe"`
	ImageURL      string    `bson:"image_url" json:"image_url,omitempty"`
	TicketURL     string    `bson:"ticket_url" json:"ticket_url,omitempty"`
	Price         string    `bson:"price" json:"price,omitempty"`
	PromoterID    string    `bson:"promoter_id" json:"promoter_id,omitempty"`
	PromoterName  string    `bson:"promoter_name" json:"promoter_name,omitempty"`
	IsFeatured    bool      `bson:"is_featured" json:"is_featured"`
	AttendeeCount int       `bson:"attendee_count" json:"attendee_count"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// EventCreate is the client payload for POST /api/events.
type EventCreate struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	City         string   `json:"city"`
	VenueName    string   `json:"venue_name"`
	VenueAddress string   `json:"venue_address"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Genre        []string `json:"genre"`
	Vibe         string   `json:"vibe"`
	ImageURL     string   `json:"image_url"`
	TicketURL    string   `json:"ticket_url"`
	Price        string   `json:"price"`
}

// FeedPost is a post on a city's feed.
type FeedPost struct {
	ID         string    `bson:"id" json:"id"`
	Content    string    `bson:"content" json:"content"`
	City       string    `bson:"city" json:"city"`
	ImageURL   string    `bson:"image_url" json:"image_url,omitempty"`
	EventID    string    `bson:"event_id" json:"event_id,omitempty"`
	PostType   string    `bson:"post_type" json:"post_type"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Username   string    `bson:"username" json:"username"`
	UserAvatar string    `bson:"user_avatar" json:"user_avatar,omitempty"`
	IsVerified bool      `bson:"is_verified" json:"is_verified"`
	Likes      int       `bson:"likes" json:"likes"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// FeedPostCreate is the client payload for POST /api/feed.
type FeedPostCreate struct {
	Content  string `json:"content"`
	City     string `json:"city"`
	ImageURL string `json:"image_url"`
	EventID  string `json:"event_id"`
	PostType string `json:"post_type"` // update, flyer, announcement, vibe_check
}

// Venue is a club, lounge, or bar profile.
type Venue struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	City        string    `bson:"city" json:"city"`
	Address     string    `bson:"address" json:"address"`
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"image_url" json:"image_url,omitempty"`
	Genres      []string  `bson:"genres" json:"genres"`
	Vibes       []string  `bson:"vibes" json:"vibes"`
	Instagram   string    `bson:"instagram" json:"instagram,omitempty"`
	Website     string    `bson:"website" json:"website,omitempty"`
	IsVerified  bool      `bson:"is_verified" json:"is_verified"`
	OwnerID     string    `bson:"owner_id" json:"owner_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// VenueCreate is the client payload for POST /api/venues.
type VenueCreate struct {
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Genres      []string `json:"genres"`
	Vibes       []string `json:"vibes"`
	Instagram   string   `json:"instagram"`
	Website     string   `json:"website"`
}

// Notification is a per-user notification document.
type Notification struct {
	ID               string    `bson:"id" json:"id"`
	UserID           string    `bson:"user_id" json:"user_id"`
	Title            string    `bson:"title" json:"title"`
	Message          string    `bson:"message" json:"message"`
	NotificationType string    `bson:"notification_type" json:"notification_type"` // event, chat, system
	City             string    `bson:"city" json:"city,omitempty"`
	EventID          string    `bson:"event_id" json:"event_id,omitempty"`
	IsRead           bool      `bson:"is_read" json:"is_read"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}
