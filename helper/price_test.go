package helper

import (
	"testing"

	"stay_manager/model"
	"stay_manager/utils"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPrice(t *testing.T) {
	assert.Equal(t, 300.0, CalculateTotalPrice(100, day(10), day(13)))
	assert.Equal(t, 100.0, CalculateTotalPrice(100, day(10), day(11)), "one-night stay")
	assert.Equal(t, 0.0, CalculateTotalPrice(100, day(13), day(10)), "inverted dates clamp to zero")
}

func TestNightlyRateBasePrice(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(1), day(60), true)

	rate := NightlyRate(db, &accommodation, day(10), day(13))
	assert.Equal(t, 100.0, rate)
}

func TestNightlyRatePrefersCoveringOverride(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)

	period := model.AvailabilityPeriod{
		AccommodationId: accommodation.ID,
		StartDate:       day(1),
		EndDate:         day(60),
		IsAvailable:     utils.Ptr(true),
		PriceOverride:   utils.Ptr(150.0),
	}
	assert.NoError(t, db.Create(&period).Error)

	rate := NightlyRate(db, &accommodation, day(10), day(13))
	assert.Equal(t, 150.0, rate)
}

func TestNightlyRateIgnoresNonCoveringOverride(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)

	period := model.AvailabilityPeriod{
		AccommodationId: accommodation.ID,
		StartDate:       day(1),
		EndDate:         day(11),
		IsAvailable:     utils.Ptr(true),
		PriceOverride:   utils.Ptr(150.0),
	}
	assert.NoError(t, db.Create(&period).Error)

	rate := NightlyRate(db, &accommodation, day(10), day(13))
	assert.Equal(t, 100.0, rate, "override period must cover the whole stay")
}
