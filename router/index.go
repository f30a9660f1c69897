package router

import (
	"stay_manager/handler"
	"stay_manager/middleware"
	"stay_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", validate.RefreshToken(), handler.RefreshToken)

	guests := v1.Group("/guests", logger.New())
	guests.Post("/register", validate.RegisterGuest(), handler.RegisterGuest)
	guests.Post("/login", validate.GuestLogin(), handler.GuestLogin)
	guests.Get("/me", middleware.Protected(), handler.Me)
	guests.Put("/me", middleware.Protected(), validate.EditGuest(), handler.EditMe)
	guests.Get("/", middleware.Protected(), handler.GetGuests)

	accommodation := v1.Group("/accommodations", logger.New())
	accommodation.Get("/", middleware.OptionalJWT(), handler.GetAccommodations)
	accommodation.Get("/slug/:slug", middleware.OptionalJWT(), handler.GetAccommodationBySlug)
	accommodation.Get("/:accommodationId", middleware.OptionalJWT(), validate.GetById("accommodationId"), handler.GetAccommodationById)
	accommodation.Post("/", middleware.Protected(), validate.CreateAccommodation(), handler.CreateAccommodation)
	accommodation.Put("/:accommodationId", middleware.Protected(), validate.EditAccommodation("accommodationId"), handler.EditAccommodation)
	accommodation.Delete("/:accommodationId", middleware.Protected(), validate.GetById("accommodationId"), handler.DeleteAccommodation)
	accommodation.Post("/:accommodationId/photo", middleware.Protected(), validate.AccommodationPhoto("accommodationId"), handler.UploadAccommodationPhoto)

	accommodation.Get("/:accommodationId/availability", middleware.OptionalJWT(), validate.GetById("accommodationId"), handler.GetAvailabilityByAccommodation)
	accommodation.Post("/:accommodationId/availability", middleware.Protected(), validate.CreateAvailability("accommodationId"), handler.CreateAvailability)
	accommodation.Get("/:accommodationId/bookings", middleware.Protected(), validate.GetById("accommodationId"), handler.GetBookingsByAccommodation)
	accommodation.Get("/:accommodationId/reviews", middleware.OptionalJWT(), validate.GetById("accommodationId"), handler.GetReviewsByAccommodation)

	availability := v1.Group("/availability", logger.New())
	availability.Put("/:periodId", middleware.Protected(), validate.EditAvailability("periodId"), handler.EditAvailability)
	availability.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteAvailabilityBatch)
	availability.Delete("/:periodId", middleware.Protected(), validate.GetById("periodId"), handler.DeleteAvailability)

	booking := v1.Group("/bookings", logger.New())
	booking.Get("/check-availability", middleware.OptionalJWT(), handler.CheckAvailability)
	booking.Get("/me", middleware.OptionalJWT(), handler.GetMyBookings)
	booking.Get("/", middleware.Protected(), handler.GetBookings)
	booking.Get("/:bookingId", middleware.OptionalJWT(), validate.GetById("bookingId"), handler.GetBookingById)
	booking.Post("/", middleware.OptionalJWT(), validate.CreateBooking(), handler.CreateBooking)
	booking.Put("/:bookingId", middleware.OptionalJWT(), validate.EditBooking("bookingId"), handler.UpdateBooking)
	booking.Post("/:bookingId/cancel", middleware.OptionalJWT(), validate.CancelBooking("bookingId"), handler.CancelBooking)

	review := v1.Group("/reviews", logger.New())
	review.Post("/", middleware.OptionalJWT(), validate.CreateReview(), handler.CreateReview)
	review.Get("/pending", middleware.Protected(), handler.GetPendingReviews)
	review.Patch("/:reviewId/approve", middleware.Protected(), validate.GetById("reviewId"), handler.ApproveReview)
	review.Patch("/:reviewId/unapprove", middleware.Protected(), validate.GetById("reviewId"), handler.UnapproveReview)
	review.Delete("/:reviewId", middleware.Protected(), validate.GetById("reviewId"), handler.DeleteReview)
}
