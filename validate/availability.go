package validate

import (
	"errors"
	"strconv"

	"stay_manager/constants"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateAvailability(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.CreateAvailabilityInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		// end date is inclusive, a one-day period is legal
		if input.EndDate.Time.Before(input.StartDate.Time) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("endDate must not be before startDate"))
		}

		c.Locals("inputAccommodationId", uint(id))
		c.Locals("inputCreateAvailability", input)
		return c.Next()
	}
}

func EditAvailability(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.EditAvailabilityInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if input.StartDate != nil && input.EndDate != nil &&
			input.EndDate.Time.Before(input.StartDate.Time) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("endDate must not be before startDate"))
		}

		c.Locals("inputPeriodId", uint(id))
		c.Locals("inputEditAvailability", input)
		return c.Next()
	}
}
