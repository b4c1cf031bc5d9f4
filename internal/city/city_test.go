package city

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, id := range []string{"kingston", "miami", "nyc", "MIAMI", " nyc "} {
		assert.True(t, Valid(id), "expected %q to be valid", id)
	}

	for _, id := range []string{"", "atlantis", "new york", "mia"} {
		assert.False(t, Valid(id), "expected %q to be invalid", id)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "miami", Normalize("  MiAmI "))
	assert.Equal(t, "nyc", Normalize("nyc"))
}

func TestListIsACopy(t *testing.T) {
	list := List()
	assert.Len(t, list, 3)

	list[0].ID = "mutated"
	assert.Equal(t, "kingston", List()[0].ID, "List must not expose internal state")
}
