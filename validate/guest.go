package validate

import (
	"stay_manager/constants"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func RegisterGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterGuestInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("inputRegisterGuest", input)
		return c.Next()
	}
}

func GuestLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.GuestLoginInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("inputGuestLogin", input)
		return c.Next()
	}
}

func EditGuest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditGuestInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("inputEditGuest", input)
		return c.Next()
	}
}
