package models

type Review struct {
	BaseModel
	StoreID  string `gorm:"type:uuid;not null;index" json:"store_id"`
	AuthorID string `gorm:"type:uuid;not null;index" json:"author_id"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Text     string `json:"text"`

	// Relations
	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
