package handler

import (
	"errors"

	"stay_manager/constants"
	"stay_manager/database"
	"stay_manager/helper"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateAvailability(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	input, ok := c.Locals("inputCreateAvailability").(model.CreateAvailabilityInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE AVAILABILITY INPUT TO LOCALS FAIL"))
	}
	accommodationId, ok := c.Locals("inputAccommodationId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ACCOMMODATION ID TO LOCALS FAIL"))
	}

	db := database.DB
	var accommodation model.Accommodation
	if err := db.First(&accommodation, accommodationId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !isAdmin && accommodation.AccountId != claim.AccountId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}

	period := model.AvailabilityPeriod{
		AccommodationId: accommodation.ID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		PriceOverride:   input.PriceOverride,
		IsAvailable:     input.IsAvailable,
		MinStayNights:   input.MinStayNights,
		Note:            input.Note,
	}
	if period.IsAvailable == nil {
		period.IsAvailable = utils.Ptr(true)
	}

	if err := db.Create(&period).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, period)
}

func GetAvailabilityByAccommodation(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var count int64
	if err := db.Model(&model.Accommodation{}).Where("id = ?", id).Count(&count).Error; err != nil || count == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
	}

	var periods []model.AvailabilityPeriod
	if err := db.Where("accommodation_id = ?", id).Order("start_date ASC").Find(&periods).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, periods)
}

func EditAvailability(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	input, ok := c.Locals("inputEditAvailability").(model.EditAvailabilityInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE AVAILABILITY INPUT TO LOCALS FAIL"))
	}
	periodId, ok := c.Locals("inputPeriodId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE PERIOD ID TO LOCALS FAIL"))
	}

	db := database.DB
	var period model.AvailabilityPeriod
	if err := db.First(&period, periodId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.AVAILABILITY_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var accommodation model.Accommodation
	if err := db.First(&accommodation, period.AccommodationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !isAdmin && accommodation.AccountId != claim.AccountId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}

	if input.StartDate != nil {
		period.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		period.EndDate = *input.EndDate
	}
	if period.EndDate.Time.Before(period.StartDate.Time) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("endDate must not be before startDate"))
	}
	if input.PriceOverride != nil {
		period.PriceOverride = input.PriceOverride
	}
	if input.IsAvailable != nil {
		period.IsAvailable = input.IsAvailable
	}
	if input.MinStayNights != nil {
		period.MinStayNights = input.MinStayNights
	}
	if input.Note != nil {
		period.Note = input.Note
	}

	if err := db.Save(&period).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, period)
}

func DeleteAvailability(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var period model.AvailabilityPeriod
	if err := db.First(&period, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.AVAILABILITY_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var accommodation model.Accommodation
	if err := db.First(&accommodation, period.AccommodationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !isAdmin && accommodation.AccountId != claim.AccountId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}

	if err := db.Delete(&period).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": period.ID})
}

// DeleteAvailabilityBatch removes several periods at once. Owners can only
// touch periods of their own listings, admins are unrestricted.
func DeleteAvailabilityBatch(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DELETE IDS TO LOCALS FAIL"))
	}

	db := database.DB
	query := db.Where("id IN ?", input.IDs)
	if !isAdmin {
		query = query.Where(
			"accommodation_id IN (?)",
			db.Model(&model.Accommodation{}).Select("id").Where("account_id = ?", claim.AccountId),
		)
	}

	result := query.Delete(&model.AvailabilityPeriod{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, result.Error)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": result.RowsAffected})
}
