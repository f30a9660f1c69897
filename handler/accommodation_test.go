package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"stay_manager/database"
	"stay_manager/model"
	"stay_manager/utils"
	"stay_manager/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.Migrate(db)
	database.DB = db
	return db
}

type searchEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Rows       []model.AccommodationSummary `json:"rows"`
		Limit      int                          `json:"limit"`
		Page       int                          `json:"page"`
		TotalCount int64                        `json:"totalCount"`
	} `json:"data"`
}

func searchAccommodations(t *testing.T, app *fiber.App, query string) searchEnvelope {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accommodations"+query, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode response: %v\n%s", err, body)
	}
	return envelope
}

func seedSearchFixtures(t *testing.T, db *gorm.DB) []model.Accommodation {
	t.Helper()
	fixtures := []model.Accommodation{
		{Slug: "harbour-flat", Title: "Harbour Flat", Type: "APARTMENT", Town: "Brighton", Bedrooms: 1, MaxOccupancy: 2, BasePrice: 100, AccountId: 1},
		{Slug: "garden-house", Title: "Garden House", Type: "HOUSE", Town: "Brighton", Bedrooms: 2, MaxOccupancy: 4, BasePrice: 150, AccountId: 1},
		{Slug: "cliff-villa", Title: "Cliff Villa", Type: "VILLA", Town: "Hove", Bedrooms: 3, MaxOccupancy: 6, BasePrice: 200, AccountId: 1, HasSeaView: utils.Ptr(true)},
		{Slug: "mews-house", Title: "Mews House", Type: "HOUSE", Town: "Hove", Bedrooms: 2, MaxOccupancy: 4, BasePrice: 150, AccountId: 1},
	}
	for i := range fixtures {
		if err := db.Create(&fixtures[i]).Error; err != nil {
			t.Fatalf("seed accommodation: %v", err)
		}
	}
	return fixtures
}

func TestGetAccommodationsFilterSortPaginate(t *testing.T) {
	db := setupTestDB(t)
	seedSearchFixtures(t, db)

	app := fiber.New()
	app.Get("/api/v1/accommodations", GetAccommodations)

	envelope := searchAccommodations(t, app, "?minBedrooms=2&sortBy=price&sortDirection=desc")

	assert.Equal(t, int64(3), envelope.Data.TotalCount)
	if assert.Len(t, envelope.Data.Rows, 3) {
		assert.Equal(t, "Cliff Villa", envelope.Data.Rows[0].Title)
		// equal prices keep id order
		assert.Equal(t, "Garden House", envelope.Data.Rows[1].Title)
		assert.Equal(t, "Mews House", envelope.Data.Rows[2].Title)
	}
}

func TestGetAccommodationsTotalCountSurvivesPagination(t *testing.T) {
	db := setupTestDB(t)
	seedSearchFixtures(t, db)

	app := fiber.New()
	app.Get("/api/v1/accommodations", GetAccommodations)

	envelope := searchAccommodations(t, app, "?limit=2&page=2&sortBy=price")

	assert.Equal(t, int64(4), envelope.Data.TotalCount)
	assert.Equal(t, 2, envelope.Data.Limit)
	assert.Equal(t, 2, envelope.Data.Page)
	if assert.Len(t, envelope.Data.Rows, 2) {
		assert.Equal(t, "Mews House", envelope.Data.Rows[0].Title)
		assert.Equal(t, "Cliff Villa", envelope.Data.Rows[1].Title)
	}
}

func TestGetAccommodationsCombinedFilters(t *testing.T) {
	db := setupTestDB(t)
	seedSearchFixtures(t, db)

	app := fiber.New()
	app.Get("/api/v1/accommodations", GetAccommodations)

	envelope := searchAccommodations(t, app, "?town=hove&type=house&maxPrice=160")
	assert.Equal(t, int64(1), envelope.Data.TotalCount)
	if assert.Len(t, envelope.Data.Rows, 1) {
		assert.Equal(t, "Mews House", envelope.Data.Rows[0].Title)
	}

	empty := searchAccommodations(t, app, "?town=brighton&minPrice=500")
	assert.Equal(t, int64(0), empty.Data.TotalCount)
	assert.Len(t, empty.Data.Rows, 0)
}

func TestGetAccommodationsAmenityFilter(t *testing.T) {
	db := setupTestDB(t)
	fixtures := seedSearchFixtures(t, db)

	wifi := model.Amenity{Name: "Wifi"}
	pool := model.Amenity{Name: "Pool"}
	assert.NoError(t, db.Create(&wifi).Error)
	assert.NoError(t, db.Create(&pool).Error)
	assert.NoError(t, db.Model(&fixtures[1]).Association("Amenities").Append(&wifi))
	assert.NoError(t, db.Model(&fixtures[2]).Association("Amenities").Append(&wifi, &pool))

	app := fiber.New()
	app.Get("/api/v1/accommodations", GetAccommodations)

	envelope := searchAccommodations(t, app, "?amenities=Wifi&amenities=Pool")
	assert.Equal(t, int64(1), envelope.Data.TotalCount)
	if assert.Len(t, envelope.Data.Rows, 1) {
		assert.Equal(t, "Cliff Villa", envelope.Data.Rows[0].Title)
	}
}

func TestGetAccommodationsProjectsAssociations(t *testing.T) {
	db := setupTestDB(t)
	fixtures := seedSearchFixtures(t, db)

	petFriendly := model.Amenity{Name: "PetFriendly"}
	assert.NoError(t, db.Create(&petFriendly).Error)
	assert.NoError(t, db.Model(&fixtures[1]).Association("Amenities").Append(&petFriendly))
	images := []model.AccommodationImage{
		{AccommodationId: fixtures[1].ID, Url: "https://cdn.example.com/b.jpg", Position: 1},
		{AccommodationId: fixtures[1].ID, Url: "https://cdn.example.com/a.jpg", Position: 0},
	}
	for i := range images {
		assert.NoError(t, db.Create(&images[i]).Error)
	}

	app := fiber.New()
	app.Get("/api/v1/accommodations", GetAccommodations)

	envelope := searchAccommodations(t, app, "?town=brighton&sortBy=price")
	if assert.Len(t, envelope.Data.Rows, 2) {
		assert.Equal(t, "Harbour Flat", envelope.Data.Rows[0].Title)
		assert.False(t, envelope.Data.Rows[0].PetFriendly)
		assert.Empty(t, envelope.Data.Rows[0].MainImageUrl)

		assert.Equal(t, "Garden House", envelope.Data.Rows[1].Title)
		assert.True(t, envelope.Data.Rows[1].PetFriendly)
		assert.Equal(t, "https://cdn.example.com/a.jpg", envelope.Data.Rows[1].MainImageUrl)
	}
}

func TestGetAccommodationByIdSurfacesRatingQueryErrors(t *testing.T) {
	db := setupTestDB(t)
	fixtures := seedSearchFixtures(t, db)

	app := fiber.New()
	app.Get("/api/v1/accommodations/:accommodationId", validate.GetById("accommodationId"), GetAccommodationById)

	path := fmt.Sprintf("/api/v1/accommodations/%d", fixtures[0].ID)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// a broken rating query must not degrade to a silent zero rating
	assert.NoError(t, db.Migrator().DropTable(&model.Review{}))
	req = httptest.NewRequest(http.MethodGet, path, nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetAccommodationsRatingSortUsesApprovedReviewsOnly(t *testing.T) {
	db := setupTestDB(t)
	fixtures := seedSearchFixtures(t, db)

	reviews := []model.Review{
		{AccommodationId: fixtures[0].ID, GuestId: 1, BookingId: 1, Rating: 5, IsApproved: utils.Ptr(true)},
		{AccommodationId: fixtures[0].ID, GuestId: 1, BookingId: 2, Rating: 3, IsApproved: utils.Ptr(true)},
		{AccommodationId: fixtures[1].ID, GuestId: 1, BookingId: 3, Rating: 2, IsApproved: utils.Ptr(true)},
		// pending review must not move the average
		{AccommodationId: fixtures[1].ID, GuestId: 1, BookingId: 4, Rating: 5, IsApproved: utils.Ptr(false)},
	}
	for i := range reviews {
		assert.NoError(t, db.Create(&reviews[i]).Error)
	}

	app := fiber.New()
	app.Get("/api/v1/accommodations", GetAccommodations)

	envelope := searchAccommodations(t, app, "?sortBy=rating&sortDirection=desc")
	if assert.Len(t, envelope.Data.Rows, 4) {
		assert.Equal(t, "Harbour Flat", envelope.Data.Rows[0].Title)
		assert.Equal(t, 4.0, envelope.Data.Rows[0].AverageRating)
		assert.Equal(t, "Garden House", envelope.Data.Rows[1].Title)
		assert.Equal(t, 2.0, envelope.Data.Rows[1].AverageRating)
		// unreviewed listings trail with a zero average, id order
		assert.Equal(t, "Cliff Villa", envelope.Data.Rows[2].Title)
		assert.Equal(t, 0.0, envelope.Data.Rows[2].AverageRating)
	}
}
