package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUniqueAccommodationSlug(t *testing.T) {
	db := newTestDB(t)

	assert.Equal(t, "sea-cottage", GenerateUniqueAccommodationSlug(db, "Sea Cottage"))

	seedAccommodation(t, db) // takes "sea-cottage"
	assert.Equal(t, "sea-cottage-1", GenerateUniqueAccommodationSlug(db, "Sea Cottage"))
}
