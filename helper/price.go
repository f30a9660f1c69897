package helper

import (
	"stay_manager/model"
	"stay_manager/utils"

	"gorm.io/gorm"
)

// NightlyRate resolves the rate for a stay: the price override of the
// covering available period when one is set, otherwise the base price.
// Limit(1).Find instead of First keeps the no-override case off the error log.
func NightlyRate(db *gorm.DB, accommodation *model.Accommodation, checkIn, checkOut utils.DateOnly) float64 {
	var period model.AvailabilityPeriod
	result := db.
		Where("accommodation_id = ?", accommodation.ID).
		Where("is_available = ?", true).
		Where("start_date <= ? AND end_date >= ?", checkIn, checkOut).
		Where("price_override IS NOT NULL").
		Order("start_date ASC").
		Limit(1).
		Find(&period)

	if result.Error == nil && result.RowsAffected > 0 && period.PriceOverride != nil {
		return *period.PriceOverride
	}
	return accommodation.BasePrice
}

// CalculateTotalPrice is nights times nightly rate, nights being whole days
// between check-in and check-out.
func CalculateTotalPrice(rate float64, checkIn, checkOut utils.DateOnly) float64 {
	nights := utils.DaysBetween(checkIn, checkOut)
	if nights < 0 {
		nights = 0
	}
	return float64(nights) * rate
}
