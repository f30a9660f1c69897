package database

import (
	"log"

	"stay_manager/constants"
	"stay_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	accounts := []model.Account{
		{Username: "administrator", PasswordHash: hashPassword, Role: constants.ROLE_ADMIN, Email: "admin@staymanager.local"},
	}
	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	amenities := []model.Amenity{
		{Name: "Wifi"},
		{Name: "Parking"},
		{Name: "Pool"},
		{Name: "AirConditioning"},
		{Name: "Kitchen"},
		{Name: "WashingMachine"},
		{Name: "Balcony"},
		{Name: constants.AMENITY_PET_FRIENDLY},
	}
	for _, amenity := range amenities {
		if err := db.Where(model.Amenity{Name: amenity.Name}).FirstOrCreate(&amenity).Error; err != nil {
			log.Println("failed to seed amenity:", amenity.Name, "error:", err)
		}
	}
}
