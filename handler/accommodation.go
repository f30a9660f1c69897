package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"stay_manager/constants"
	"stay_manager/database"
	"stay_manager/helper"
	"stay_manager/model"
	"stay_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type accommodationWithRating struct {
	model.Accommodation
	AvgRating float64 `gorm:"column:avg_rating"`
	ReviewCnt int64   `gorm:"column:review_cnt"`
}

// GetAccommodations is the public search endpoint: filter, sort, paginate.
func GetAccommodations(c *fiber.Ctx) error {
	filterInput := new(model.FilterAccommodation)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	limit, page := utils.NormalizePage(filterInput.Limit, filterInput.Page, 20)
	offset := (page - 1) * limit

	// === COUNT QUERY (no joins, no limit/offset) ===
	var totalCount int64
	countQuery := applyAccommodationFilters(db.Model(&model.Accommodation{}), db, filterInput)
	if err := countQuery.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Count failed", err)
	}

	// === DATA QUERY (rating aggregate + limit/offset) ===
	baseQuery := db.Model(&model.Accommodation{}).
		Select("accommodations.*, COALESCE(AVG(reviews.rating), 0) AS avg_rating, COUNT(reviews.id) AS review_cnt").
		Joins("LEFT JOIN reviews ON reviews.accommodation_id = accommodations.id AND reviews.is_approved = ?", true)
	baseQuery = applyAccommodationFilters(baseQuery, db, filterInput)

	var rows []accommodationWithRating
	err := baseQuery.
		Group("accommodations.id").
		Order(accommodationSortClause(filterInput.SortBy, filterInput.SortDirection)).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error

	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Query failed", err)
	}

	// associations cannot be preloaded onto the scan struct, load them
	// against the entity and merge back by id
	summaries := make([]model.AccommodationSummary, 0, len(rows))
	if len(rows) > 0 {
		ids := make([]uint, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}

		var loaded []model.Accommodation
		if err := db.Preload("Images").Preload("Amenities").Where("id IN ?", ids).Find(&loaded).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Query failed", err)
		}
		byId := make(map[uint]model.Accommodation, len(loaded))
		for _, accommodation := range loaded {
			byId[accommodation.ID] = accommodation
		}

		for _, row := range rows {
			accommodation := byId[row.ID]
			accommodation.AverageRating = row.AvgRating
			accommodation.ReviewCount = row.ReviewCnt
			summaries = append(summaries, helper.ToAccommodationSummary(&accommodation))
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       summaries,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// applyAccommodationFilters ANDs every provided filter onto query. Each
// requested amenity narrows the result on its own.
func applyAccommodationFilters(query *gorm.DB, db *gorm.DB, f *model.FilterAccommodation) *gorm.DB {
	if f.Town != "" {
		query = query.Where("LOWER(accommodations.town) LIKE ?", "%"+strings.ToLower(f.Town)+"%")
	}
	if f.MinPrice != nil {
		query = query.Where("accommodations.base_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("accommodations.base_price <= ?", *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		query = query.Where("accommodations.bedrooms >= ?", *f.MinBedrooms)
	}
	if f.MinOccupancy != nil {
		query = query.Where("accommodations.max_occupancy >= ?", *f.MinOccupancy)
	}
	if f.Type != "" {
		query = query.Where("accommodations.type = ?", strings.ToUpper(strings.TrimSpace(f.Type)))
	}
	if f.HasSeaView != nil {
		query = query.Where("accommodations.has_sea_view = ?", *f.HasSeaView)
	}
	for _, amenity := range f.Amenities {
		query = query.Where(
			"EXISTS (SELECT 1 FROM accommodation_amenities aa JOIN amenities am ON am.id = aa.amenity_id WHERE aa.accommodation_id = accommodations.id AND am.name = ?)",
			amenity,
		)
	}
	return query
}

// accommodationSortClause maps the sort key to a column, defaulting to
// price, and always breaks ties by id for stable pagination.
func accommodationSortClause(sortBy, direction string) string {
	column := "accommodations.base_price"
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "rating":
		column = "avg_rating"
	case "name":
		column = "accommodations.title"
	case "bedrooms":
		column = "accommodations.bedrooms"
	case "price":
		column = "accommodations.base_price"
	}

	dir := "ASC"
	if strings.EqualFold(strings.TrimSpace(direction), "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, accommodations.id ASC", column, dir)
}

func GetAccommodationById(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var accommodation model.Accommodation
	if err := db.Preload("Images").Preload("Amenities").First(&accommodation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := loadRatingAggregates(db, &accommodation); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, helper.ToAccommodationDetail(&accommodation))
}

func GetAccommodationBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "slug is required", nil)
	}

	db := database.DB
	var accommodation model.Accommodation
	if err := db.Preload("Images").Preload("Amenities").Where("slug = ?", slug).First(&accommodation).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
	}

	if err := loadRatingAggregates(db, &accommodation); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, helper.ToAccommodationDetail(&accommodation))
}

func loadRatingAggregates(db *gorm.DB, accommodation *model.Accommodation) error {
	type agg struct {
		AvgRating float64
		ReviewCnt int64
	}
	var result agg
	err := db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(id) AS review_cnt").
		Where("accommodation_id = ?", accommodation.ID).
		Where("is_approved = ?", true).
		Scan(&result).Error
	if err != nil {
		return err
	}
	accommodation.AverageRating = result.AvgRating
	accommodation.ReviewCount = result.ReviewCnt
	return nil
}

func CreateAccommodation(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	input, ok := c.Locals("inputCreateAccommodation").(model.CreateAccommodationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ACCOMMODATION INPUT TO LOCALS FAIL"))
	}

	db := database.DB
	tx := db.Begin()

	newAccommodation := new(model.Accommodation)
	copier.Copy(&newAccommodation, input)
	newAccommodation.AccountId = claim.AccountId
	newAccommodation.Slug = helper.GenerateUniqueAccommodationSlug(tx, input.Title)
	newAccommodation.Amenities = nil
	newAccommodation.Images = nil

	if err := tx.Create(&newAccommodation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	if len(input.Amenities) > 0 {
		amenities, err := resolveAmenities(tx, input.Amenities)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}
		if err := tx.Model(&newAccommodation).Association("Amenities").Replace(amenities); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}
	}

	for i, url := range input.ImageUrls {
		image := model.AccommodationImage{
			AccommodationId: newAccommodation.ID,
			Url:             url,
			Position:        i,
		}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
		}
	}

	tx.Commit()

	var created model.Accommodation
	if err := db.Preload("Images").Preload("Amenities").First(&created, newAccommodation.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, helper.ToAccommodationDetail(&created))
}

// resolveAmenities maps names to catalog rows, creating unseen ones.
// Duplicate names collapse to one row.
func resolveAmenities(tx *gorm.DB, names []string) ([]model.Amenity, error) {
	seen := map[string]bool{}
	var amenities []model.Amenity
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var amenity model.Amenity
		if err := tx.Where(model.Amenity{Name: name}).FirstOrCreate(&amenity).Error; err != nil {
			return nil, err
		}
		amenities = append(amenities, amenity)
	}
	return amenities, nil
}

func EditAccommodation(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	input, ok := c.Locals("inputEditAccommodation").(model.EditAccommodationInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ACCOMMODATION INPUT TO LOCALS FAIL"))
	}
	accommodationId, ok := c.Locals("inputAccommodationId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ACCOMMODATION ID TO LOCALS FAIL"))
	}

	db := database.DB
	tx := db.Begin()

	var accommodation model.Accommodation
	if err := tx.First(&accommodation, accommodationId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// owners only touch their own listings
	if !isAdmin && accommodation.AccountId != claim.AccountId {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}

	if input.Title != nil {
		accommodation.Title = *input.Title
		accommodation.Slug = helper.GenerateUniqueAccommodationSlug(tx, *input.Title)
	}
	if input.Type != nil {
		accommodation.Type = *input.Type
	}
	if input.Street != nil {
		accommodation.Street = *input.Street
	}
	if input.Town != nil {
		accommodation.Town = *input.Town
	}
	if input.PostalCode != nil {
		accommodation.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		accommodation.Country = *input.Country
	}
	if input.Latitude != nil {
		accommodation.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		accommodation.Longitude = *input.Longitude
	}
	if input.Bedrooms != nil {
		accommodation.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		accommodation.Bathrooms = *input.Bathrooms
	}
	if input.MaxOccupancy != nil {
		accommodation.MaxOccupancy = *input.MaxOccupancy
	}
	if input.HasSeaView != nil {
		accommodation.HasSeaView = input.HasSeaView
	}
	if input.BasePrice != nil {
		accommodation.BasePrice = *input.BasePrice
	}
	if input.CleaningFee != nil {
		accommodation.CleaningFee = input.CleaningFee
	}
	if input.Deposit != nil {
		accommodation.Deposit = input.Deposit
	}

	if err := tx.Save(&accommodation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	if input.Amenities != nil {
		amenities, err := resolveAmenities(tx, input.Amenities)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
		}
		if err := tx.Model(&accommodation).Association("Amenities").Replace(amenities); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
		}
	}

	tx.Commit()

	var updated model.Accommodation
	if err := db.Preload("Images").Preload("Amenities").First(&updated, accommodationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	loadRatingAggregates(db, &updated)
	return utils.SuccessResponse(c, fiber.StatusOK, helper.ToAccommodationDetail(&updated))
}

// DeleteAccommodation removes a listing. Rejected while bookings or reviews
// still reference it; availability periods and images go with it.
func DeleteAccommodation(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ID TO LOCALS FAIL"))
	}

	db := database.DB
	var accommodation model.Accommodation
	if err := db.First(&accommodation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !isAdmin && accommodation.AccountId != claim.AccountId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}

	var bookingCount, reviewCount int64
	db.Model(&model.Booking{}).Where("accommodation_id = ?", accommodation.ID).Count(&bookingCount)
	db.Model(&model.Review{}).Where("accommodation_id = ?", accommodation.ID).Count(&reviewCount)
	if bookingCount > 0 || reviewCount > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.ACCOMMODATION_HAS_DEPENDENTS, nil)
	}

	tx := db.Begin()
	if err := tx.Where("accommodation_id = ?", accommodation.ID).Delete(&model.AvailabilityPeriod{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Where("accommodation_id = ?", accommodation.ID).Delete(&model.AccommodationImage{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Model(&accommodation).Association("Amenities").Clear(); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	if err := tx.Delete(&accommodation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": accommodation.ID})
}

// UploadAccommodationPhoto appends one cloudinary-hosted image to the
// listing's gallery.
func UploadAccommodationPhoto(c *fiber.Ctx) error {
	claim, isAdmin, isOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not permission"))
	}

	accommodationId, ok := c.Locals("inputAccommodationId").(uint)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE ACCOMMODATION ID TO LOCALS FAIL"))
	}
	file, ok := c.Locals("photoFile").(*multipart.FileHeader)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE PHOTO FILE TO LOCALS FAIL"))
	}

	db := database.DB
	var accommodation model.Accommodation
	if err := db.First(&accommodation, accommodationId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ACCOMMODATION_NOT_FOUND, err)
	}
	if !isAdmin && accommodation.AccountId != claim.AccountId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_PERMISSION, errors.New("not the owner"))
	}

	url, err := helper.UploadAccommodationPhoto(file, accommodation.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Upload failed", err)
	}

	var maxPosition int
	db.Model(&model.AccommodationImage{}).
		Where("accommodation_id = ?", accommodation.ID).
		Select("COALESCE(MAX(position) + 1, 0)").
		Scan(&maxPosition)

	image := model.AccommodationImage{
		AccommodationId: accommodation.ID,
		Url:             url,
		Position:        maxPosition,
	}
	if err := db.Create(&image).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, image)
}
