package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stay_manager/constants"
	"stay_manager/helper"
	"stay_manager/middleware"
	"stay_manager/model"
	"stay_manager/utils"
	"stay_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newReviewApp() *fiber.App {
	app := fiber.New()
	v1 := app.Group("/api/v1")
	v1.Post("/reviews", middleware.OptionalJWT(), validate.CreateReview(), CreateReview)
	v1.Get("/accommodations/:accommodationId/reviews", validate.GetById("accommodationId"), GetReviewsByAccommodation)
	v1.Get("/reviews/pending", middleware.Protected(), GetPendingReviews)
	v1.Patch("/reviews/:reviewId/approve", middleware.Protected(), validate.GetById("reviewId"), ApproveReview)
	v1.Patch("/reviews/:reviewId/unapprove", middleware.Protected(), validate.GetById("reviewId"), UnapproveReview)
	return app
}

func seedReviewFixtures(t *testing.T, db *gorm.DB) (model.Booking, string, string) {
	t.Helper()
	guest := model.Guest{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	assert.NoError(t, db.Create(&guest).Error)

	admin := model.Account{Username: "admin", PasswordHash: "x", Role: constants.ROLE_ADMIN, Active: utils.Ptr(true)}
	assert.NoError(t, db.Create(&admin).Error)

	accommodation := model.Accommodation{
		Slug: "sea-cottage", Title: "Sea Cottage", Type: "HOUSE", Town: "Brighton",
		MaxOccupancy: 4, BasePrice: 100, AccountId: admin.ID,
	}
	assert.NoError(t, db.Create(&accommodation).Error)

	booking := model.Booking{
		PublicCode:      "stay-1",
		AccommodationId: accommodation.ID,
		GuestId:         guest.ID,
		CheckInDate:     testDay(-10),
		CheckOutDate:    testDay(-7),
		GuestCount:      2,
		TotalPrice:      300,
		Status:          constants.BOOKING_STATUS_COMPLETED,
		BookingDate:     time.Now(),
	}
	assert.NoError(t, db.Create(&booking).Error)

	guestToken, err := helper.GenerateAccessToken(model.TokenClaim{GuestId: guest.ID, Username: guest.Email})
	assert.NoError(t, err)
	adminToken, err := helper.GenerateAccessToken(model.TokenClaim{AccountId: admin.ID, Username: admin.Username, Role: admin.Role})
	assert.NoError(t, err)

	return booking, guestToken, adminToken
}

type reviewListEnvelope struct {
	Data struct {
		Rows       []model.Review `json:"rows"`
		TotalCount int64          `json:"totalCount"`
	} `json:"data"`
}

func listReviews(t *testing.T, app *fiber.App, path, token string) reviewListEnvelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	var envelope reviewListEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode response: %v\n%s", err, raw)
	}
	return envelope
}

func TestCreateReviewLifecycle(t *testing.T) {
	db := setupTestDB(t)
	booking, guestToken, adminToken := seedReviewFixtures(t, db)
	app := newReviewApp()

	status, _ := doBookingRequest(t, app, http.MethodPost, "/api/v1/reviews", guestToken, fiber.Map{
		"bookingId": booking.ID,
		"rating":    5,
		"comment":   "lovely stay",
	})
	assert.Equal(t, http.StatusOK, status)

	// one review per stay
	status, _ = doBookingRequest(t, app, http.MethodPost, "/api/v1/reviews", guestToken, fiber.Map{
		"bookingId": booking.ID,
		"rating":    4,
	})
	assert.Equal(t, http.StatusConflict, status)

	publicPath := fmt.Sprintf("/api/v1/accommodations/%d/reviews", booking.AccommodationId)

	// pending reviews stay out of the public list but show in the queue
	assert.Equal(t, int64(0), listReviews(t, app, publicPath, "").Data.TotalCount)
	pending := listReviews(t, app, "/api/v1/reviews/pending", adminToken)
	assert.Equal(t, int64(1), pending.Data.TotalCount)

	approvePath := fmt.Sprintf("/api/v1/reviews/%d/approve", pending.Data.Rows[0].ID)
	status, _ = doBookingRequest(t, app, http.MethodPatch, approvePath, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	published := listReviews(t, app, publicPath, "")
	assert.Equal(t, int64(1), published.Data.TotalCount)
	if assert.Len(t, published.Data.Rows, 1) {
		assert.Equal(t, 5, published.Data.Rows[0].Rating)
	}
}

func TestReviewApprovalFlow(t *testing.T) {
	db := setupTestDB(t)
	booking, guestToken, adminToken := seedReviewFixtures(t, db)
	app := newReviewApp()

	status, _ := doBookingRequest(t, app, http.MethodPost, "/api/v1/reviews", guestToken, fiber.Map{
		"bookingId": booking.ID,
		"rating":    5,
		"comment":   "lovely stay",
	})
	assert.Equal(t, http.StatusOK, status)

	var review model.Review
	assert.NoError(t, db.First(&review, "booking_id = ?", booking.ID).Error)
	assert.False(t, *review.IsApproved)

	var publicCount int64
	db.Model(&model.Review{}).
		Where("accommodation_id = ?", booking.AccommodationId).
		Where("is_approved = ?", true).
		Count(&publicCount)
	assert.Equal(t, int64(0), publicCount)

	approvePath := fmt.Sprintf("/api/v1/reviews/%d/approve", review.ID)

	// guests cannot approve
	status, _ = doBookingRequest(t, app, http.MethodPatch, approvePath, guestToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doBookingRequest(t, app, http.MethodPatch, approvePath, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	assert.NoError(t, db.First(&review, review.ID).Error)
	assert.True(t, *review.IsApproved)

	unapprovePath := fmt.Sprintf("/api/v1/reviews/%d/unapprove", review.ID)
	status, _ = doBookingRequest(t, app, http.MethodPatch, unapprovePath, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	assert.NoError(t, db.First(&review, review.ID).Error)
	assert.False(t, *review.IsApproved)
}

func TestCreateReviewRejections(t *testing.T) {
	db := setupTestDB(t)
	booking, guestToken, _ := seedReviewFixtures(t, db)
	app := newReviewApp()

	// bookings that are not completed cannot be reviewed
	assert.NoError(t, db.Model(&model.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", constants.BOOKING_STATUS_CONFIRMED).Error)
	status, _ := doBookingRequest(t, app, http.MethodPost, "/api/v1/reviews", guestToken, fiber.Map{
		"bookingId": booking.ID,
		"rating":    5,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// somebody else's booking
	stranger := model.Guest{Name: "Eve", Email: "eve@example.com", PasswordHash: "x"}
	assert.NoError(t, db.Create(&stranger).Error)
	strangerToken, err := helper.GenerateAccessToken(model.TokenClaim{GuestId: stranger.ID, Username: stranger.Email})
	assert.NoError(t, err)
	status, _ = doBookingRequest(t, app, http.MethodPost, "/api/v1/reviews", strangerToken, fiber.Map{
		"bookingId": booking.ID,
		"rating":    5,
	})
	assert.Equal(t, http.StatusForbidden, status)

	// unknown booking
	status, _ = doBookingRequest(t, app, http.MethodPost, "/api/v1/reviews", guestToken, fiber.Map{
		"bookingId": 9999,
		"rating":    5,
	})
	assert.Equal(t, http.StatusNotFound, status)

	// rating out of range never reaches the handler
	status, _ = doBookingRequest(t, app, http.MethodPost, "/api/v1/reviews", guestToken, fiber.Map{
		"bookingId": booking.ID,
		"rating":    6,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}
