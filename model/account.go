package model

type Account struct {
	DTO
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Email        string `json:"email"`
	Role         string `gorm:"not null" json:"role"` // ADMIN, OWNER
	Active       *bool  `gorm:"default:true" json:"isActive"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
