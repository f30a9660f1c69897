package handler

import (
	"errors"
	"log"

	"stay_manager/constants"
	"stay_manager/database"
	"stay_manager/helper"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// RegisterGuest creates a guest profile and logs it straight in.
func RegisterGuest(c *fiber.Ctx) error {
	input, ok := c.Locals("inputRegisterGuest").(model.RegisterGuestInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE REGISTER INPUT TO LOCALS FAIL"))
	}

	db := database.DB

	var existing model.Guest
	err := db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Email already registered", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	guest := model.Guest{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Address:      input.Address,
	}
	if err := db.Create(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	tokens, err := issueTokens(model.TokenClaim{GuestId: guest.ID, Username: guest.Email})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"guest":  guest,
		"tokens": tokens,
	})
}

func GuestLogin(c *fiber.Ctx) error {
	input, ok := c.Locals("inputGuestLogin").(model.GuestLoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE LOGIN INPUT TO LOCALS FAIL"))
	}

	db := database.DB
	var guest model.Guest
	if err := db.Where("email = ?", input.Email).First(&guest).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}

	if !helper.CheckPasswordHash(input.Password, guest.PasswordHash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}

	tokens, err := issueTokens(model.TokenClaim{GuestId: guest.ID, Username: guest.Email})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"guest":  guest,
		"tokens": tokens,
	})
}

// Login authenticates an owner/admin account.
func Login(c *fiber.Ctx) error {
	input, ok := c.Locals("inputLogin").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE LOGIN INPUT TO LOCALS FAIL"))
	}

	db := database.DB
	var account model.Account
	if err := db.Where("username = ?", input.Username).First(&account).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}
	if account.Active != nil && !*account.Active {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account is disabled", nil)
	}

	if !helper.CheckPasswordHash(input.Password, account.PasswordHash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}

	tokens, err := issueTokens(model.TokenClaim{AccountId: account.ID, Username: account.Username, Role: account.Role})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tokens)
}

func RefreshToken(c *fiber.Ctx) error {
	input, ok := c.Locals("inputRefreshToken").(model.RefreshTokenInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE REFRESH INPUT TO LOCALS FAIL"))
	}

	token, err := helper.ParseToken(input.RefreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil)
	}

	guestId, _ := claims["guestId"].(float64)
	accountId, _ := claims["accountId"].(float64)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	tokens, err := issueTokens(model.TokenClaim{
		GuestId:   uint(guestId),
		AccountId: uint(accountId),
		Username:  username,
		Role:      role,
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, tokens)
}

func issueTokens(claim model.TokenClaim) (*model.TokenData, error) {
	access, err := helper.GenerateAccessToken(claim)
	if err != nil {
		log.Printf("access token generation failed: %v", err)
		return nil, err
	}
	refresh, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		log.Printf("refresh token generation failed: %v", err)
		return nil, err
	}
	return &model.TokenData{AccessToken: access, RefreshToken: refresh}, nil
}
