package handler

import (
	"errors"
	"strings"

	"stay_manager/constants"
	"stay_manager/database"
	"stay_manager/helper"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Me returns the logged-in guest's profile.
func Me(c *fiber.Ctx) error {
	claim, guest := helper.GetInfoGuestFromToken(c)
	if claim.GuestId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, guest)
}

func EditMe(c *fiber.Ctx) error {
	claim, guest := helper.GetInfoGuestFromToken(c)
	if claim.GuestId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_LOGGED_IN, nil)
	}

	input, ok := c.Locals("inputEditGuest").(model.EditGuestInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE GUEST INPUT TO LOCALS FAIL"))
	}

	if input.Name != nil {
		guest.Name = *input.Name
	}
	if input.Phone != nil {
		guest.Phone = *input.Phone
	}
	if input.Address != nil {
		guest.Address = input.Address
	}

	if err := database.DB.Save(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, guest)
}

// GetGuests lists guests for admins, filtered by name/email.
func GetGuests(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	filterInput := new(model.FilterGuest)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Guest{})

	if filterInput.SearchKey != "" {
		search := "%" + strings.ToLower(filterInput.SearchKey) + "%"
		condition = condition.Where(
			db.Where("LOWER(name) LIKE ?", search).
				Or("LOWER(email) LIKE ?", search),
		)
	}

	var totalCount int64
	condition.Count(&totalCount)

	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page, 20)
	condition = utils.ApplyPagination(condition, &limit, &page)

	var guests []model.Guest
	if err := condition.Order("id ASC").Find(&guests).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       guests,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}
