package model

import "time"

type Amenity struct {
	DTO
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type AccommodationImage struct {
	DTO
	AccommodationId uint   `gorm:"not null;index" json:"accommodationId"`
	Url             string `gorm:"not null" json:"url"`
	Position        int    `gorm:"not null" json:"position"` // 0 = primary
}

type Accommodation struct {
	DTO
	Slug         string  `gorm:"uniqueIndex" json:"slug"`
	Title        string  `gorm:"not null" validate:"required" json:"title"`
	Type         string  `gorm:"not null" json:"type"`
	Street       string  `json:"street"`
	Town         string  `gorm:"not null;index" json:"town"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	MaxOccupancy int     `gorm:"not null" json:"maxOccupancy"`
	HasSeaView   *bool   `gorm:"default:false" json:"hasSeaView"`

	BasePrice   float64  `gorm:"not null" json:"basePrice"`
	CleaningFee *float64 `json:"cleaningFee,omitempty"`
	Deposit     *float64 `json:"deposit,omitempty"`

	AccountId uint    `gorm:"not null;index" json:"ownerId"`
	Owner     Account `gorm:"foreignKey:AccountId" json:"-"`

	Amenities []Amenity            `gorm:"many2many:accommodation_amenities;" json:"amenities"`
	Images    []AccommodationImage `gorm:"foreignKey:AccommodationId;constraint:OnDelete:CASCADE" json:"images"`

	// filled by query, never stored
	AverageRating float64 `gorm:"-" json:"averageRating"`
	ReviewCount   int64   `gorm:"-" json:"reviewCount"`
}

type CreateAccommodationInput struct {
	Title        string   `json:"title" validate:"required"`
	Type         string   `json:"type" validate:"required"`
	Street       string   `json:"street"`
	Town         string   `json:"town" validate:"required"`
	PostalCode   string   `json:"postalCode"`
	Country      string   `json:"country"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Bedrooms     int      `json:"bedrooms" validate:"min=0"`
	Bathrooms    int      `json:"bathrooms" validate:"min=0"`
	MaxOccupancy int      `json:"maxOccupancy" validate:"required,min=1"`
	HasSeaView   *bool    `json:"hasSeaView"`
	BasePrice    float64  `json:"basePrice" validate:"min=0"`
	CleaningFee  *float64 `json:"cleaningFee" validate:"omitempty,min=0"`
	Deposit      *float64 `json:"deposit" validate:"omitempty,min=0"`
	Amenities    []string `json:"amenities"`
	ImageUrls    []string `json:"imageUrls"`
}

type EditAccommodationInput struct {
	Title        *string  `json:"title"`
	Type         *string  `json:"type"`
	Street       *string  `json:"street"`
	Town         *string  `json:"town"`
	PostalCode   *string  `json:"postalCode"`
	Country      *string  `json:"country"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Bedrooms     *int     `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms    *int     `json:"bathrooms" validate:"omitempty,min=0"`
	MaxOccupancy *int     `json:"maxOccupancy" validate:"omitempty,min=1"`
	HasSeaView   *bool    `json:"hasSeaView"`
	BasePrice    *float64 `json:"basePrice" validate:"omitempty,min=0"`
	CleaningFee  *float64 `json:"cleaningFee" validate:"omitempty,min=0"`
	Deposit      *float64 `json:"deposit" validate:"omitempty,min=0"`
	Amenities    []string `json:"amenities"`
}

type FilterAccommodation struct {
	Pagination
	Town          string   `json:"town" query:"town"`
	MinPrice      *float64 `json:"minPrice" query:"minPrice"`
	MaxPrice      *float64 `json:"maxPrice" query:"maxPrice"`
	MinBedrooms   *int     `json:"minBedrooms" query:"minBedrooms"`
	MinOccupancy  *int     `json:"minOccupancy" query:"minOccupancy"`
	Type          string   `json:"type" query:"type"`
	HasSeaView    *bool    `json:"hasSeaView" query:"hasSeaView"`
	Amenities     []string `json:"amenities" query:"amenities"`
	SortBy        string   `json:"sortBy" query:"sortBy"`
	SortDirection string   `json:"sortDirection" query:"sortDirection"`
}

// AccommodationSummary is the search-result row.
type AccommodationSummary struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	Town          string  `json:"town"`
	Bedrooms      int     `json:"bedrooms"`
	MaxOccupancy  int     `json:"maxOccupancy"`
	BasePrice     float64 `json:"basePrice"`
	AverageRating float64 `json:"averageRating"`
	HasSeaView    bool    `json:"hasSeaView"`
	MainImageUrl  string  `json:"mainImageUrl"`
	PetFriendly   bool    `json:"petFriendly"`
}

// AccommodationDetail extends the summary by composition, no DTO inheritance.
type AccommodationDetail struct {
	AccommodationSummary
	Slug        string    `json:"slug"`
	Street      string    `json:"street"`
	PostalCode  string    `json:"postalCode"`
	Country     string    `json:"country"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Bathrooms   int       `json:"bathrooms"`
	CleaningFee *float64  `json:"cleaningFee,omitempty"`
	Deposit     *float64  `json:"deposit,omitempty"`
	OwnerId     uint      `json:"ownerId"`
	Amenities   []string  `json:"amenities"`
	ImageUrls   []string  `json:"imageUrls"`
	ReviewCount int64     `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
