package dto

import "storefront_backend/internal/models"

// CreateStoreRequest is bound from JSON or multipart form. The
// required-field list is declarative, checked before persistence.
type CreateStoreRequest struct {
	Name        string   `json:"name" form:"name" validate:"required,min=1,max=120"`
	Description string   `json:"description" form:"description" validate:"max=2000"`
	Tags        []string `json:"tags" form:"tags" validate:"dive,min=1,max=40"`
	Lng         *float64 `json:"lng" form:"lng" validate:"required,longitude"`
	Lat         *float64 `json:"lat" form:"lat" validate:"required,latitude"`
	Address     string   `json:"address" form:"address" validate:"required,min=1,max=300"`

	// Photo is the stored filename; set by the handler after the
	// upload has been resized and saved, never by the client directly.
	Photo string `json:"-" form:"-"`
}

// UpdateStoreRequest mirrors CreateStoreRequest. The author reference
// is immutable and has no field here.
type UpdateStoreRequest struct {
	Name        string   `json:"name" form:"name" validate:"required,min=1,max=120"`
	Description string   `json:"description" form:"description" validate:"max=2000"`
	Tags        []string `json:"tags" form:"tags" validate:"dive,min=1,max=40"`
	Lng         *float64 `json:"lng" form:"lng" validate:"required,longitude"`
	Lat         *float64 `json:"lat" form:"lat" validate:"required,latitude"`
	Address     string   `json:"address" form:"address" validate:"required,min=1,max=300"`

	Photo string `json:"-" form:"-"`
}

type StoreListResponse struct {
	Stores []models.Store `json:"stores"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
	Count  int64          `json:"count"`
}

type TagPageResponse struct {
	Tag    string            `json:"tag"`
	Tags   []models.TagCount `json:"tags"`
	Stores []models.Store    `json:"stores"`
}
