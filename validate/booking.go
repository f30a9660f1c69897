package validate

import (
	"errors"
	"strconv"
	"strings"

	"stay_manager/constants"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if !input.CheckInDate.Time.Before(input.CheckOutDate.Time) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("checkOutDate must be after checkInDate"))
		}
		if input.CheckInDate.Time.Before(utils.Today().Time) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("checkInDate must not be in the past"))
		}

		c.Locals("inputCreateBooking", input)
		return c.Next()
	}
}

func EditBooking(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.EditBookingInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if input.Status != nil {
			status := strings.ToUpper(strings.TrimSpace(*input.Status))
			if !utils.IsValidValueOfConstant(status, constants.BookingStatuses) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("unknown booking status"))
			}
			input.Status = &status
		}

		c.Locals("inputBookingId", uint(id))
		c.Locals("inputEditBooking", input)
		return c.Next()
	}
}

func CancelBooking(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.CancelBookingInput
		// body is optional, cancelling without a reason is fine
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
			}
		}

		c.Locals("inputBookingId", uint(id))
		c.Locals("inputCancelBooking", input)
		return c.Next()
	}
}
