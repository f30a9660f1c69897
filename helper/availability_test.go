package helper

import (
	"testing"

	"stay_manager/database"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.Migrate(db)
	return db
}

// day returns today + offset days as a DateOnly. Tests work with future
// dates so the past-check-in guard never interferes.
func day(offset int) utils.DateOnly {
	return utils.NewDateOnly(utils.Today().Time.AddDate(0, 0, offset))
}

func seedAccommodation(t *testing.T, db *gorm.DB) model.Accommodation {
	t.Helper()
	accommodation := model.Accommodation{
		Slug:         "sea-cottage",
		Title:        "Sea Cottage",
		Type:         "HOUSE",
		Town:         "Brighton",
		MaxOccupancy: 4,
		BasePrice:    100,
		AccountId:    1,
	}
	if err := db.Create(&accommodation).Error; err != nil {
		t.Fatalf("seed accommodation: %v", err)
	}
	return accommodation
}

func seedPeriod(t *testing.T, db *gorm.DB, accommodationId uint, start, end utils.DateOnly, available bool) model.AvailabilityPeriod {
	t.Helper()
	period := model.AvailabilityPeriod{
		AccommodationId: accommodationId,
		StartDate:       start,
		EndDate:         end,
		IsAvailable:     utils.Ptr(available),
	}
	if err := db.Create(&period).Error; err != nil {
		t.Fatalf("seed period: %v", err)
	}
	return period
}

func seedBooking(t *testing.T, db *gorm.DB, accommodationId uint, checkIn, checkOut utils.DateOnly, status string) model.Booking {
	t.Helper()
	booking := model.Booking{
		PublicCode:      checkIn.String() + "/" + checkOut.String() + "/" + status,
		AccommodationId: accommodationId,
		GuestId:         1,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		GuestCount:      2,
		TotalPrice:      100,
		Status:          status,
		BookingDate:     utils.Today().Time,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}

func TestIsAccommodationAvailableCoveredAndFree(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(1), day(60), true)

	assert.True(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(13), nil))
}

func TestIsAccommodationAvailableNoPeriod(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)

	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(13), nil))
}

func TestIsAccommodationAvailableBlockedPeriod(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(1), day(60), false)

	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(13), nil))
}

func TestIsAccommodationAvailableNoStitchedCoverage(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	// two adjacent periods together span the stay, but no single one does
	seedPeriod(t, db, accommodation.ID, day(1), day(11), true)
	seedPeriod(t, db, accommodation.ID, day(12), day(60), true)

	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(13), nil))
}

func TestIsAccommodationAvailableOverlapCases(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(1), day(60), true)
	seedBooking(t, db, accommodation.ID, day(10), day(15), "CONFIRMED")

	tests := []struct {
		name     string
		checkIn  utils.DateOnly
		checkOut utils.DateOnly
		want     bool
	}{
		{"same range", day(10), day(15), false},
		{"contained inside", day(11), day(13), false},
		{"straddles start", day(8), day(12), false},
		{"straddles end", day(13), day(18), false},
		{"contains existing", day(8), day(18), false},
		{"checks out on existing check-in", day(7), day(10), true},
		{"checks in on existing check-out", day(15), day(18), true},
		{"fully before", day(3), day(7), true},
		{"fully after", day(20), day(25), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsAccommodationAvailable(db, accommodation.ID, tc.checkIn, tc.checkOut, nil)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsAccommodationAvailableCancelledBookingFreesRange(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(1), day(60), true)
	seedBooking(t, db, accommodation.ID, day(10), day(15), "CANCELLED")

	assert.True(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(15), nil))
}

func TestIsAccommodationAvailableExcludesOwnBooking(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(1), day(60), true)
	booking := seedBooking(t, db, accommodation.ID, day(10), day(15), "CONFIRMED")

	// extending the same stay conflicts only with itself
	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(17), nil))
	assert.True(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(17), &booking.ID))
}

func TestIsAccommodationAvailableRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(-30), day(60), true)

	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, day(13), day(10), nil), "inverted dates")
	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, day(10), day(10), nil), "zero-night stay")
	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, day(-5), day(2), nil), "past check-in")
	assert.False(t, IsAccommodationAvailable(db, accommodation.ID, utils.DateOnly{}, day(10), nil), "zero check-in")
	assert.False(t, IsAccommodationAvailable(db, 9999, day(10), day(13), nil), "unknown accommodation")
}

func TestHasCoveringPeriodBoundaries(t *testing.T) {
	db := newTestDB(t)
	accommodation := seedAccommodation(t, db)
	seedPeriod(t, db, accommodation.ID, day(10), day(20), true)

	assert.True(t, HasCoveringPeriod(db, accommodation.ID, day(10), day(20)))
	assert.False(t, HasCoveringPeriod(db, accommodation.ID, day(9), day(20)), "starts before period")
	assert.False(t, HasCoveringPeriod(db, accommodation.ID, day(10), day(21)), "ends after period")
}
