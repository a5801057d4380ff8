package model

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an address-book entry. One is auto-created from a saved quote's
// customer fields when an email is present and no contact with that email
// (case-insensitive) exists yet.
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Company   string    `gorm:"type:varchar(255)" json:"company,omitempty"`
	Email     string    `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updatedAt"`
}
