package helper

import (
	"log"

	"stay_manager/constants"
	"stay_manager/model"
	"stay_manager/utils"

	"gorm.io/gorm"
)

// IsAccommodationAvailable decides whether a stay [checkIn, checkOut) is
// bookable. It fails closed: unknown accommodation, bad date order, past
// check-in or any query error all answer false. Both the read path
// (check-availability endpoint) and the write path (create/update booking)
// go through this one predicate.
func IsAccommodationAvailable(db *gorm.DB, accommodationId uint, checkIn, checkOut utils.DateOnly, excludeBookingId *uint) bool {
	if checkIn.IsZero() || checkOut.IsZero() {
		return false
	}
	if !checkIn.Time.Before(checkOut.Time) {
		return false
	}
	if checkIn.Time.Before(utils.Today().Time) {
		return false
	}

	var count int64
	if err := db.Model(&model.Accommodation{}).Where("id = ?", accommodationId).Count(&count).Error; err != nil {
		log.Printf("availability: accommodation lookup failed (id=%d): %v", accommodationId, err)
		return false
	}
	if count == 0 {
		return false
	}

	if !HasCoveringPeriod(db, accommodationId, checkIn, checkOut) {
		return false
	}

	return !HasOverlappingBooking(db, accommodationId, checkIn, checkOut, excludeBookingId)
}

// HasCoveringPeriod requires a single available period spanning the whole
// stay. Partial coverage stitched from adjacent periods does not count.
func HasCoveringPeriod(db *gorm.DB, accommodationId uint, checkIn, checkOut utils.DateOnly) bool {
	var count int64
	err := db.Model(&model.AvailabilityPeriod{}).
		Where("accommodation_id = ?", accommodationId).
		Where("is_available = ?", true).
		Where("start_date <= ? AND end_date >= ?", checkIn, checkOut).
		Count(&count).Error
	if err != nil {
		log.Printf("availability: period query failed (id=%d): %v", accommodationId, err)
		return false
	}
	return count > 0
}

// HasOverlappingBooking checks the three overlap cases against every
// non-cancelled booking of the accommodation. The strict > on the first case
// keeps turnover days free: a stay checking out on day D never conflicts
// with one checking in on day D.
func HasOverlappingBooking(db *gorm.DB, accommodationId uint, checkIn, checkOut utils.DateOnly, excludeBookingId *uint) bool {
	query := db.Model(&model.Booking{}).
		Where("accommodation_id = ?", accommodationId).
		Where("status <> ?", constants.BOOKING_STATUS_CANCELLED).
		Where(
			db.Where("check_in_date < ? AND check_out_date > ?", checkIn, checkIn).
				Or("check_in_date < ? AND check_out_date >= ?", checkOut, checkOut).
				Or("check_in_date >= ? AND check_out_date <= ?", checkIn, checkOut),
		)

	if excludeBookingId != nil {
		query = query.Where("id <> ?", *excludeBookingId)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		log.Printf("availability: overlap query failed (id=%d): %v", accommodationId, err)
		return true // fail closed
	}
	return count > 0
}
