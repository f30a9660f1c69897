package helper

import (
	"stay_manager/constants"
	"stay_manager/model"

	"gorm.io/gorm"
)

var allowedTransitions = map[string][]string{
	constants.BOOKING_STATUS_PENDING: {
		constants.BOOKING_STATUS_CONFIRMED,
		constants.BOOKING_STATUS_CANCELLED,
	},
	constants.BOOKING_STATUS_CONFIRMED: {
		constants.BOOKING_STATUS_CANCELLED,
		constants.BOOKING_STATUS_COMPLETED,
		constants.BOOKING_STATUS_NO_SHOW,
	},
	// CANCELLED, COMPLETED, NO_SHOW are terminal
}

// CanTransitionBookingStatus reports whether a status update is legal.
// Setting the current status again is always allowed.
func CanTransitionBookingStatus(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ExistsBookingById(db *gorm.DB, id uint) bool {
	var count int64
	db.Model(&model.Booking{}).Where("id = ?", id).Count(&count)
	return count > 0
}
