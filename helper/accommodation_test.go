package helper

import (
	"testing"

	"stay_manager/model"
	"stay_manager/utils"

	"github.com/stretchr/testify/assert"
)

func TestToAccommodationSummary(t *testing.T) {
	accommodation := model.Accommodation{
		Title:         "Sea Cottage",
		Type:          "HOUSE",
		Town:          "Brighton",
		Bedrooms:      2,
		MaxOccupancy:  4,
		BasePrice:     100,
		HasSeaView:    utils.Ptr(true),
		AverageRating: 4.5,
		Amenities: []model.Amenity{
			{Name: "Wifi"},
			{Name: "PetFriendly"},
		},
		Images: []model.AccommodationImage{
			{Url: "https://cdn.example.com/b.jpg", Position: 1},
			{Url: "https://cdn.example.com/a.jpg", Position: 0},
		},
	}

	summary := ToAccommodationSummary(&accommodation)
	assert.Equal(t, "Sea Cottage", summary.Title)
	assert.True(t, summary.HasSeaView)
	assert.True(t, summary.PetFriendly)
	assert.Equal(t, 4.5, summary.AverageRating)
	assert.Equal(t, "https://cdn.example.com/a.jpg", summary.MainImageUrl, "position 0 is the primary image")
}

func TestToAccommodationSummaryDefaults(t *testing.T) {
	summary := ToAccommodationSummary(&model.Accommodation{Title: "Bare Flat"})
	assert.False(t, summary.HasSeaView)
	assert.False(t, summary.PetFriendly)
	assert.Empty(t, summary.MainImageUrl)
}

func TestToAccommodationDetailOrdersImages(t *testing.T) {
	accommodation := model.Accommodation{
		Slug:      "sea-cottage",
		Title:     "Sea Cottage",
		AccountId: 7,
		Amenities: []model.Amenity{{Name: "Wifi"}, {Name: "Pool"}},
		Images: []model.AccommodationImage{
			{Url: "https://cdn.example.com/c.jpg", Position: 2},
			{Url: "https://cdn.example.com/a.jpg", Position: 0},
			{Url: "https://cdn.example.com/b.jpg", Position: 1},
		},
	}

	detail := ToAccommodationDetail(&accommodation)
	assert.Equal(t, "sea-cottage", detail.Slug)
	assert.Equal(t, uint(7), detail.OwnerId)
	assert.Equal(t, []string{"Wifi", "Pool"}, detail.Amenities)
	assert.Equal(t, []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
		"https://cdn.example.com/c.jpg",
	}, detail.ImageUrls)
}
