package model

import (
	"time"

	"stay_manager/utils"
)

type Booking struct {
	DTO
	PublicCode      string         `gorm:"uniqueIndex;size:40" json:"publicCode"`
	AccommodationId uint           `gorm:"not null;index" json:"accommodationId"`
	Accommodation   Accommodation  `gorm:"foreignKey:AccommodationId" json:"accommodation"`
	GuestId         uint           `gorm:"not null;index" json:"guestId"`
	Guest           Guest          `gorm:"foreignKey:GuestId" json:"guest"`
	CheckInDate     utils.DateOnly `gorm:"type:date;not null" json:"checkInDate"`
	CheckOutDate    utils.DateOnly `gorm:"type:date;not null" json:"checkOutDate"`
	GuestCount      int            `gorm:"not null" json:"guestCount"`
	TotalPrice      float64        `json:"totalPrice"`
	IsPaid          bool           `gorm:"default:false" json:"isPaid"`
	Status          string         `gorm:"not null;index" json:"status"` // PENDING, CONFIRMED, CANCELLED, COMPLETED, NO_SHOW
	SpecialRequests *string        `json:"specialRequests,omitempty"`
	BookingDate     time.Time      `gorm:"not null" json:"bookingDate"`

	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
}

type CreateBookingInput struct {
	AccommodationId uint           `json:"accommodationId" validate:"required"`
	CheckInDate     utils.DateOnly `json:"checkInDate" validate:"required"`
	CheckOutDate    utils.DateOnly `json:"checkOutDate" validate:"required"`
	GuestCount      int            `json:"guestCount" validate:"required,min=1"`
	SpecialRequests *string        `json:"specialRequests"`
}

// EditBookingInput carries partial updates, absent fields stay untouched.
type EditBookingInput struct {
	CheckInDate     *utils.DateOnly `json:"checkInDate"`
	CheckOutDate    *utils.DateOnly `json:"checkOutDate"`
	GuestCount      *int            `json:"guestCount" validate:"omitempty,min=1"`
	Status          *string         `json:"status"`
	SpecialRequests *string         `json:"specialRequests"`
	IsPaid          *bool           `json:"isPaid"`
}

type CancelBookingInput struct {
	Reason string `json:"reason"`
}

type FilterBooking struct {
	Pagination
	AccommodationId uint            `json:"accommodationId" query:"accommodationId"`
	GuestId         uint            `json:"guestId" query:"guestId"`
	Status          string          `json:"status" query:"status"`
	FromDate        *utils.DateOnly `json:"fromDate" query:"fromDate"`
	ToDate          *utils.DateOnly `json:"toDate" query:"toDate"`
}
