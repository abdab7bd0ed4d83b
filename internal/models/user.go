package models

import (
	"time"

	"github.com/lib/pq"
)

// AdminLevel is the reserved authorization tier. Users above it may
// edit any store regardless of ownership.
const AdminLevel = 11

type User struct {
	BaseModel
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Level        int    `gorm:"default:1" json:"level"`

	// Password recovery. A non-empty ResetToken always carries a
	// ResetTokenExp; both are cleared when the token is consumed.
	ResetToken    string     `json:"-"`
	ResetTokenExp *time.Time `json:"-"`

	// Hearts holds the IDs of favorited stores. Set semantics, never
	// duplicated.
	Hearts pq.StringArray `gorm:"type:text[]" json:"hearts" swaggerignore:"true"`
}

func (u *User) IsAdmin() bool {
	return u.Level > AdminLevel
}

// HasHearted reports whether storeID is already in the hearts set.
func (u *User) HasHearted(storeID string) bool {
	for _, id := range u.Hearts {
		if id == storeID {
			return true
		}
	}
	return false
}
