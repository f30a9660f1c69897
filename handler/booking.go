package handler

import (
	"errors"
	"time"

	"stay_manager/constants"
	"stay_manager/database"
	"stay_manager/helper"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBooking books a stay for the logged-in guest. Availability and
// pricing run inside one transaction; protection against two requests
// racing on the same dates is left to the database's isolation, there is
// no in-process lock.
func CreateBooking(c *fiber.Ctx) error {
	claim, guest := helper.GetInfoGuestFromToken(c)
	if claim.GuestId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	input, ok := c.Locals("inputCreateBooking").(model.CreateBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE BOOKING INPUT TO LOCALS FAIL"))
	}

	db := database.DB
	tx := db.Begin()

	var accommodation model.Accommodation
	if err := tx.First(&accommodation, input.AccommodationId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if input.GuestCount > accommodation.MaxOccupancy {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.BOOKING_OCCUPANCY_EXCEEDED, nil)
	}

	if !helper.IsAccommodationAvailable(tx, accommodation.ID, input.CheckInDate, input.CheckOutDate, nil) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.BOOKING_DATES_UNAVAILABLE, nil)
	}

	rate := helper.NightlyRate(tx, &accommodation, input.CheckInDate, input.CheckOutDate)
	totalPrice := helper.CalculateTotalPrice(rate, input.CheckInDate, input.CheckOutDate)

	booking := model.Booking{
		PublicCode:      uuid.NewString(),
		AccommodationId: accommodation.ID,
		GuestId:         claim.GuestId,
		CheckInDate:     input.CheckInDate,
		CheckOutDate:    input.CheckOutDate,
		GuestCount:      input.GuestCount,
		TotalPrice:      totalPrice,
		Status:          constants.BOOKING_STATUS_CONFIRMED,
		SpecialRequests: input.SpecialRequests,
		BookingDate:     time.Now(),
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}
	tx.Commit()

	utils.SendBookingConfirmationEmail(guest.Email, utils.BookingConfirmationData{
		BookingCode:        booking.PublicCode,
		AccommodationTitle: accommodation.Title,
		CheckInDate:        booking.CheckInDate.String(),
		CheckOutDate:       booking.CheckOutDate.String(),
		Nights:             utils.DaysBetween(booking.CheckInDate, booking.CheckOutDate),
		GuestCount:         booking.GuestCount,
		TotalPrice:         booking.TotalPrice,
	})

	var created model.Booking
	if err := db.Preload("Accommodation").Preload("Guest").First(&created, booking.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, created)
}

// UpdateBooking applies a partial update. Date changes re-run the
// availability predicate with the booking's own id excluded and recompute
// the total price.
func UpdateBooking(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoGuestFromToken(c)
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if claim.GuestId == 0 && !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	input, ok := c.Locals("inputEditBooking").(model.EditBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE BOOKING INPUT TO LOCALS FAIL"))
	}
	bookingId, ok := c.Locals("inputBookingId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE BOOKING ID TO LOCALS FAIL"))
	}

	db := database.DB
	tx := db.Begin()

	var booking model.Booking
	if err := tx.First(&booking, bookingId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !isAdmin && booking.GuestId != claim.GuestId {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not your booking"))
	}

	var accommodation model.Accommodation
	if err := tx.First(&accommodation, booking.AccommodationId).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	newCheckIn := booking.CheckInDate
	newCheckOut := booking.CheckOutDate
	if input.CheckInDate != nil {
		newCheckIn = *input.CheckInDate
	}
	if input.CheckOutDate != nil {
		newCheckOut = *input.CheckOutDate
	}

	datesChanged := !newCheckIn.Time.Equal(booking.CheckInDate.Time) ||
		!newCheckOut.Time.Equal(booking.CheckOutDate.Time)

	if datesChanged {
		if !newCheckIn.Time.Before(newCheckOut.Time) {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("checkOutDate must be after checkInDate"))
		}
		if !helper.IsAccommodationAvailable(tx, booking.AccommodationId, newCheckIn, newCheckOut, &booking.ID) {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.BOOKING_DATES_UNAVAILABLE, nil)
		}
		booking.CheckInDate = newCheckIn
		booking.CheckOutDate = newCheckOut

		rate := helper.NightlyRate(tx, &accommodation, newCheckIn, newCheckOut)
		booking.TotalPrice = helper.CalculateTotalPrice(rate, newCheckIn, newCheckOut)
	}

	if input.GuestCount != nil {
		if *input.GuestCount > accommodation.MaxOccupancy {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.BOOKING_OCCUPANCY_EXCEEDED, nil)
		}
		booking.GuestCount = *input.GuestCount
	}

	if input.Status != nil {
		if !helper.CanTransitionBookingStatus(booking.Status, *input.Status) {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.BOOKING_INVALID_TRANSITION, nil)
		}
		if *input.Status == constants.BOOKING_STATUS_CANCELLED && booking.CancelledAt == nil {
			now := time.Now()
			booking.CancelledAt = &now
		}
		booking.Status = *input.Status
	}

	if input.SpecialRequests != nil {
		booking.SpecialRequests = input.SpecialRequests
	}
	if input.IsPaid != nil {
		booking.IsPaid = *input.IsPaid
	}

	if err := tx.Save(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}
	tx.Commit()

	var updated model.Booking
	if err := db.Preload("Accommodation").Preload("Guest").First(&updated, booking.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

// CancelBooking cancels a stay. Cancelling an already-cancelled booking is
// a no-op success keeping the first cancellation stamp and reason.
func CancelBooking(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoGuestFromToken(c)
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if claim.GuestId == 0 && !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	input, ok := c.Locals("inputCancelBooking").(model.CancelBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE CANCEL INPUT TO LOCALS FAIL"))
	}
	bookingId, ok := c.Locals("inputBookingId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE BOOKING ID TO LOCALS FAIL"))
	}

	db := database.DB
	var booking model.Booking
	if err := db.First(&booking, bookingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !isAdmin && booking.GuestId != claim.GuestId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not your booking"))
	}

	if booking.Status == constants.BOOKING_STATUS_CANCELLED {
		return utils.SuccessResponse(c, fiber.StatusOK, booking)
	}
	if !helper.CanTransitionBookingStatus(booking.Status, constants.BOOKING_STATUS_CANCELLED) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.BOOKING_INVALID_TRANSITION, nil)
	}

	now := time.Now()
	booking.Status = constants.BOOKING_STATUS_CANCELLED
	booking.CancelledAt = &now
	if input.Reason != "" {
		booking.CancellationReason = &input.Reason
	}

	if err := db.Save(&booking).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

func GetBookingById(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	claim, _ := helper.GetInfoGuestFromToken(c)
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)

	db := database.DB
	var booking model.Booking
	if err := db.Preload("Accommodation").Preload("Guest").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !isAdmin && booking.GuestId != claim.GuestId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not your booking"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

// GetBookings is the admin list: filter by accommodation, guest, status and
// a booking-date window, newest first.
func GetBookings(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	filterInput := new(model.FilterBooking)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Booking{})

	if filterInput.AccommodationId != 0 {
		condition = condition.Where("accommodation_id = ?", filterInput.AccommodationId)
	}
	if filterInput.GuestId != 0 {
		condition = condition.Where("guest_id = ?", filterInput.GuestId)
	}
	if filterInput.Status != "" {
		condition = condition.Where("status = ?", filterInput.Status)
	}
	if filterInput.FromDate != nil {
		condition = condition.Where("check_in_date >= ?", *filterInput.FromDate)
	}
	if filterInput.ToDate != nil {
		condition = condition.Where("check_out_date <= ?", *filterInput.ToDate)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page, 20)
	condition = utils.ApplyPagination(condition, &limit, &page)

	var bookings []model.Booking
	if err := condition.
		Preload("Accommodation").
		Preload("Guest").
		Order("booking_date DESC").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       bookings,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// GetMyBookings lists the logged-in guest's bookings, newest first.
func GetMyBookings(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoGuestFromToken(c)
	if claim.GuestId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	var bookings []model.Booking
	if err := database.DB.
		Preload("Accommodation").
		Preload("Accommodation.Images").
		Where("guest_id = ?", claim.GuestId).
		Order("booking_date DESC").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, bookings)
}

// GetBookingsByAccommodation lists a listing's bookings for its owner,
// newest first.
func GetBookingsByAccommodation(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var accommodation model.Accommodation
	if err := db.First(&accommodation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !isAdmin && accommodation.AccountId != claim.AccountId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}

	var bookings []model.Booking
	if err := db.
		Preload("Guest").
		Where("accommodation_id = ?", accommodation.ID).
		Order("booking_date DESC").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, bookings)
}

// CheckAvailability answers the boolean availability query for a date range.
func CheckAvailability(c *fiber.Ctx) error {
	accommodationId := c.QueryInt("accommodationId")
	if accommodationId == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "accommodationId is required", nil)
	}

	checkIn, err := time.Parse("2006-01-02", c.Query("checkIn"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "checkIn format must be YYYY-MM-DD", err)
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("checkOut"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "checkOut format must be YYYY-MM-DD", err)
	}

	available := helper.IsAccommodationAvailable(
		database.DB,
		uint(accommodationId),
		utils.NewDateOnly(checkIn),
		utils.NewDateOnly(checkOut),
		nil,
	)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"accommodationId": accommodationId,
		"checkIn":         checkIn.Format("2006-01-02"),
		"checkOut":        checkOut.Format("2006-01-02"),
		"available":       available,
	})
}
