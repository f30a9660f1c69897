package helper

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"stay_manager/constants"
	"stay_manager/database"
	"stay_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["guestId"] = tokenClaim.GuestId
	claims["accountId"] = tokenClaim.AccountId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["guestId"] = tokenClaim.GuestId
	claims["accountId"] = tokenClaim.AccountId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

// GetInfoAccountFromToken resolves the logged-in owner/admin account.
// Returns the claim plus isAdmin / isOwner flags.
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, bool, bool) {
	u := c.Locals("user")
	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, false, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, false, false
	}
	accountIdFloat, _ := claims["accountId"].(float64)
	if accountIdFloat == 0 {
		return model.TokenClaim{}, false, false
	}
	accountId := uint(accountIdFloat)
	username, _ := claims["username"].(string)

	var account model.Account
	db := database.DB
	if err := db.First(&account, accountId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Account not found: id=%d", accountId)
		} else {
			log.Printf("Database query error for account: id=%d, error=%v", accountId, err)
		}
		return model.TokenClaim{}, false, false
	}
	if account.Active != nil && !*account.Active {
		return model.TokenClaim{}, false, false
	}

	accountInfo := model.TokenClaim{
		AccountId: accountId,
		Username:  username,
		Role:      account.Role,
	}

	return accountInfo,
		account.Role == constants.ROLE_ADMIN,
		account.Role == constants.ROLE_OWNER
}

// GetInfoGuestFromToken resolves the logged-in guest, falling back to a
// zero-valued claim for anonymous callers.
func GetInfoGuestFromToken(c *fiber.Ctx) (model.TokenClaim, model.Guest) {
	var emptyGuest model.Guest
	var anonymous = model.TokenClaim{}

	u := c.Locals("user")
	if u == nil {
		return anonymous, emptyGuest
	}

	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return anonymous, emptyGuest
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return anonymous, emptyGuest
	}

	guestIdFloat, _ := claims["guestId"].(float64)
	if guestIdFloat == 0 {
		return anonymous, emptyGuest
	}
	username, _ := claims["username"].(string)

	tokenClaim := model.TokenClaim{
		GuestId:  uint(guestIdFloat),
		Username: username,
	}

	var guest model.Guest
	db := database.DB
	if err := db.First(&guest, tokenClaim.GuestId).Error; err != nil {
		log.Printf("Guest not found (id=%d): %v", tokenClaim.GuestId, err)
		return anonymous, emptyGuest
	}

	return tokenClaim, guest
}
