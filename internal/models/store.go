package models

import (
	"github.com/lib/pq"
)

type Store struct {
	BaseModel
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags" swaggerignore:"true"`

	// Location. Lng/Lat are WGS84 coordinates.
	Lng     float64 `gorm:"not null" json:"lng"`
	Lat     float64 `gorm:"not null" json:"lat"`
	Address string  `gorm:"not null" json:"address"`

	// Photo is the stored filename, served through the storage layer.
	Photo string `json:"photo"`

	// AuthorID is immutable after creation.
	AuthorID string `gorm:"type:uuid;not null;index" json:"author_id"`

	// Relations
	Author  *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Reviews []Review `gorm:"foreignKey:StoreID" json:"reviews,omitempty"`
}

// TopStore is the projection returned by the top-rated aggregation.
type TopStore struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Photo         string  `json:"photo"`
	ReviewCount   int64   `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// TagCount is one row of the tag aggregation.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// StoreSummary is the minimal projection used by the map endpoint.
type StoreSummary struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Lng         float64 `json:"lng"`
	Lat         float64 `json:"lat"`
	Address     string  `json:"address"`
	Photo       string  `json:"photo"`
}
