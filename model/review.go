package model

import "time"

type Review struct {
	DTO
	AccommodationId uint      `gorm:"not null;index" json:"accommodationId"`
	GuestId         uint      `gorm:"not null;index" json:"guestId"`
	BookingId       uint      `gorm:"uniqueIndex;not null" json:"bookingId"` // one review per stay
	Rating          int       `gorm:"not null" json:"rating"`
	Comment         *string   `json:"comment,omitempty"`
	IsApproved      *bool     `gorm:"default:false" json:"isApproved"`
	ReviewDate      time.Time `gorm:"not null" json:"reviewDate"`
}

type CreateReviewInput struct {
	BookingId uint    `json:"bookingId" validate:"required"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

type FilterReview struct {
	Pagination
	AccommodationId uint  `json:"accommodationId" query:"accommodationId"`
	Approved        *bool `json:"approved" query:"approved"`
}
