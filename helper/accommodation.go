package helper

import (
	"sort"

	"stay_manager/constants"
	"stay_manager/model"
)

// ToAccommodationSummary projects the entity to a search-result row.
// Expects Images, Amenities and the rating aggregates to be loaded.
func ToAccommodationSummary(a *model.Accommodation) model.AccommodationSummary {
	summary := model.AccommodationSummary{
		ID:            a.ID,
		Title:         a.Title,
		Type:          a.Type,
		Town:          a.Town,
		Bedrooms:      a.Bedrooms,
		MaxOccupancy:  a.MaxOccupancy,
		BasePrice:     a.BasePrice,
		AverageRating: a.AverageRating,
	}
	if a.HasSeaView != nil {
		summary.HasSeaView = *a.HasSeaView
	}
	summary.MainImageUrl = mainImageUrl(a.Images)
	for _, amenity := range a.Amenities {
		if amenity.Name == constants.AMENITY_PET_FRIENDLY {
			summary.PetFriendly = true
			break
		}
	}
	return summary
}

func ToAccommodationDetail(a *model.Accommodation) model.AccommodationDetail {
	detail := model.AccommodationDetail{
		AccommodationSummary: ToAccommodationSummary(a),
		Slug:                 a.Slug,
		Street:               a.Street,
		PostalCode:           a.PostalCode,
		Country:              a.Country,
		Latitude:             a.Latitude,
		Longitude:            a.Longitude,
		Bathrooms:            a.Bathrooms,
		CleaningFee:          a.CleaningFee,
		Deposit:              a.Deposit,
		OwnerId:              a.AccountId,
		ReviewCount:          a.ReviewCount,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}

	detail.Amenities = make([]string, 0, len(a.Amenities))
	for _, amenity := range a.Amenities {
		detail.Amenities = append(detail.Amenities, amenity.Name)
	}

	detail.ImageUrls = make([]string, 0, len(a.Images))
	for _, img := range sortedImages(a.Images) {
		detail.ImageUrls = append(detail.ImageUrls, img.Url)
	}
	return detail
}

func mainImageUrl(images []model.AccommodationImage) string {
	sorted := sortedImages(images)
	if len(sorted) == 0 {
		return ""
	}
	return sorted[0].Url
}

func sortedImages(images []model.AccommodationImage) []model.AccommodationImage {
	out := make([]model.AccommodationImage, len(images))
	copy(out, images)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}
