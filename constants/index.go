package constants

// Roles
const (
	ROLE_ADMIN = "ADMIN"
	ROLE_OWNER = "OWNER"
)

// Booking statuses
const (
	BOOKING_STATUS_PENDING   = "PENDING"
	BOOKING_STATUS_CONFIRMED = "CONFIRMED"
	BOOKING_STATUS_CANCELLED = "CANCELLED"
	BOOKING_STATUS_COMPLETED = "COMPLETED"
	BOOKING_STATUS_NO_SHOW   = "NO_SHOW"
)

var BookingStatuses = []string{
	BOOKING_STATUS_PENDING,
	BOOKING_STATUS_CONFIRMED,
	BOOKING_STATUS_CANCELLED,
	BOOKING_STATUS_COMPLETED,
	BOOKING_STATUS_NO_SHOW,
}

// Accommodation types
const (
	ACCOMMODATION_TYPE_APARTMENT = "APARTMENT"
	ACCOMMODATION_TYPE_HOUSE     = "HOUSE"
	ACCOMMODATION_TYPE_VILLA     = "VILLA"
	ACCOMMODATION_TYPE_ROOM      = "ROOM"
	ACCOMMODATION_TYPE_STUDIO    = "STUDIO"
)

var AccommodationTypes = []string{
	ACCOMMODATION_TYPE_APARTMENT,
	ACCOMMODATION_TYPE_HOUSE,
	ACCOMMODATION_TYPE_VILLA,
	ACCOMMODATION_TYPE_ROOM,
	ACCOMMODATION_TYPE_STUDIO,
}

// Amenity key that surfaces as a derived flag in search results
const AMENITY_PET_FRIENDLY = "PetFriendly"

// Response messages
const (
	ERROR_INPUT                = "Invalid input"
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_CREATE               = "Create failed"
	ERROR_EDIT                 = "Update failed"
	ERROR_DELETE               = "Delete failed"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read parsed input"
	DATA_INPUT_IS_NOT_NUMBER   = "Id param must be a number"

	NOT_ADMIN              = "Admin permission required"
	ACCOUNT_NOT_PERMISSION = "Account has no permission"
	NOT_LOGGED_IN          = "Please log in"

	ACCOMMODATION_NOT_FOUND      = "Accommodation not found"
	ACCOMMODATION_HAS_DEPENDENTS = "Accommodation still has bookings or reviews"
	AVAILABILITY_NOT_FOUND       = "Availability period not found"
	BOOKING_NOT_FOUND            = "Booking not found"
	BOOKING_DATES_UNAVAILABLE    = "Requested dates are not available"
	BOOKING_INVALID_TRANSITION   = "Invalid booking status transition"
	BOOKING_OCCUPANCY_EXCEEDED   = "Guest count exceeds max occupancy"
	GUEST_NOT_FOUND              = "Guest not found"
	REVIEW_NOT_FOUND             = "Review not found"
	REVIEW_ALREADY_EXISTS        = "Booking already has a review"
	REVIEW_BOOKING_NOT_COMPLETED = "Only completed stays can be reviewed"
)
