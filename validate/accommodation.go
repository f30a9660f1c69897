package validate

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"stay_manager/constants"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateAccommodation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateAccommodationInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		input.Type = strings.ToUpper(strings.TrimSpace(input.Type))
		if !utils.IsValidValueOfConstant(input.Type, constants.AccommodationTypes) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("unknown accommodation type"))
		}

		c.Locals("inputCreateAccommodation", input)
		return c.Next()
	}
}

func EditAccommodation(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		var input model.EditAccommodationInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		if input.Type != nil {
			t := strings.ToUpper(strings.TrimSpace(*input.Type))
			if !utils.IsValidValueOfConstant(t, constants.AccommodationTypes) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("unknown accommodation type"))
			}
			input.Type = &t
		}

		c.Locals("inputAccommodationId", uint(id))
		c.Locals("inputEditAccommodation", input)
		return c.Next()
	}
}

// AccommodationPhoto checks the uploaded file before the handler pushes it
// to cloudinary.
func AccommodationPhoto(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(key))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}

		file, err := c.FormFile("photo")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "photo file is required", err)
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only PNG, JPG, JPEG are supported", nil)
		}

		c.Locals("inputAccommodationId", uint(id))
		c.Locals("photoFile", file)
		return c.Next()
	}
}
