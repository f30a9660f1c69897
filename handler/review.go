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
	"gorm.io/gorm"
)

// CreateReview lets a guest review a stay they completed. One review per
// booking; new reviews wait for approval before showing up publicly.
func CreateReview(c *fiber.Ctx) error {
	claim, _ := helper.GetInfoGuestFromToken(c)
	if claim.GuestId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	input, ok := c.Locals("inputCreateReview").(model.CreateReviewInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE REVIEW INPUT TO LOCALS FAIL"))
	}

	db := database.DB

	var booking model.Booking
	if err := db.First(&booking, input.BookingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if booking.GuestId != claim.GuestId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not your booking"))
	}
	if booking.Status != constants.BOOKING_STATUS_COMPLETED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.REVIEW_BOOKING_NOT_COMPLETED, nil)
	}

	var existing int64
	if err := db.Model(&model.Review{}).Where("booking_id = ?", booking.ID).Count(&existing).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.REVIEW_ALREADY_EXISTS, nil)
	}

	review := model.Review{
		AccommodationId: booking.AccommodationId,
		GuestId:         claim.GuestId,
		BookingId:       booking.ID,
		Rating:          input.Rating,
		Comment:         input.Comment,
		IsApproved:      utils.Ptr(false),
		ReviewDate:      time.Now(),
	}
	if err := db.Create(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, review)
}

// GetReviewsByAccommodation lists approved reviews for a listing, newest
// first.
func GetReviewsByAccommodation(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	filterInput := new(model.FilterReview)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Review{}).
		Where("accommodation_id = ?", id).
		Where("is_approved = ?", true)

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page, 20)
	condition = utils.ApplyPagination(condition, &limit, &page)

	var reviews []model.Review
	if err := condition.Order("review_date DESC").Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       reviews,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// GetPendingReviews is the admin moderation queue.
func GetPendingReviews(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	filterInput := new(model.FilterReview)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Review{}).Where("is_approved = ?", false)
	if filterInput.AccommodationId != 0 {
		condition = condition.Where("accommodation_id = ?", filterInput.AccommodationId)
	}

	var totalCount int64
	if err := condition.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page, 20)
	condition = utils.ApplyPagination(condition, &limit, &page)

	var reviews []model.Review
	if err := condition.Order("review_date ASC").Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       reviews,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// ApproveReview publishes a pending review.
func ApproveReview(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var review model.Review
	if err := db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REVIEW_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	review.IsApproved = utils.Ptr(true)
	if err := db.Save(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, review)
}

// UnapproveReview pulls a review back out of the public list.
func UnapproveReview(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var review model.Review
	if err := db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REVIEW_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	review.IsApproved = utils.Ptr(false)
	if err := db.Save(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, review)
}

// DeleteReview removes a review (admin only).
func DeleteReview(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var review model.Review
	if err := db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.REVIEW_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Delete(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": review.ID})
}
