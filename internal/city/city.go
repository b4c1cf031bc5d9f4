// Package city holds the fixed set of cities the app operates in. The set is
// static after startup; every chat room, feed, and event is keyed by one of
// these identifiers.
package city

import (
	"errors"
	"strings"
)

var ErrUnknown = errors.New("city: not a supported city")

// Info describes a supported city for the /api/cities endpoint.
type Info struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Flag    string `json:"flag"`
}

var cities = []Info{
	{ID: "kingston", Name: "Kingston", Country: "Jamaica", Flag: "🇯🇲"},
	{ID: "miami", Name: "Miami", Country: "USA", Flag: "🇺🇸"},
	{ID: "nyc", Name: "New York City", Country: "USA", Flag: "🇺🇸"},
}

var Genres = []string{"dancehall", "hiphop", "rnb", "soca", "afrobeat", "edm", "reggae", "latin"}

var Vibes = []string{"chill", "lit", "upscale", "street", "underground", "rooftop"}

// Normalize lowercases and trims a city identifier so that "Miami " and
// "miami" address the same room.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Valid reports whether id (after normalization) names a supported city.
func Valid(id string) bool {
	id = Normalize(id)
	for _, c := range cities {
		if c.ID == id {
			return true
		}
	}
	return false
}

// List returns the supported cities in a fixed order.
func List() []Info {
	out := make([]Info, len(cities))
	copy(out, cities)
	return out
}
