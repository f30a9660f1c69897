package model

type Guest struct {
	DTO
	Name         string  `gorm:"not null" validate:"required" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Phone        string  `json:"phone"`
	Address      *string `json:"address,omitempty"`
}

type RegisterGuestInput struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    string  `json:"phone"`
	Address  *string `json:"address"`
}

type GuestLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EditGuestInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type FilterGuest struct {
	Pagination
	SearchKey string `json:"searchKey" query:"searchKey"`
}
