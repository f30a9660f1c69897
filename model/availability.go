package model

import "stay_manager/utils"

type AvailabilityPeriod struct {
	DTO
	AccommodationId uint           `gorm:"not null;index" json:"accommodationId"`
	StartDate       utils.DateOnly `gorm:"type:date;not null" json:"startDate"`
	EndDate         utils.DateOnly `gorm:"type:date;not null" json:"endDate"` // inclusive
	PriceOverride   *float64       `json:"priceOverride,omitempty"`
	IsAvailable     *bool          `gorm:"default:true" json:"isAvailable"`
	MinStayNights   *int           `json:"minStayNights,omitempty"`
	Note            *string        `json:"note,omitempty"`
}

type CreateAvailabilityInput struct {
	StartDate     utils.DateOnly `json:"startDate" validate:"required"`
	EndDate       utils.DateOnly `json:"endDate" validate:"required"`
	PriceOverride *float64       `json:"priceOverride" validate:"omitempty,min=0"`
	IsAvailable   *bool          `json:"isAvailable"`
	MinStayNights *int           `json:"minStayNights" validate:"omitempty,min=1"`
	Note          *string        `json:"note"`
}

type EditAvailabilityInput struct {
	StartDate     *utils.DateOnly `json:"startDate"`
	EndDate       *utils.DateOnly `json:"endDate"`
	PriceOverride *float64        `json:"priceOverride" validate:"omitempty,min=0"`
	IsAvailable   *bool           `json:"isAvailable"`
	MinStayNights *int            `json:"minStayNights" validate:"omitempty,min=1"`
	Note          *string         `json:"note"`
}
