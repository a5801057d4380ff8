package model

import (
	"time"

	"github.com/google/uuid"
)

// JobNote is a free-form dated note, optionally tied to a customer name.
type JobNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Date      string    `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Customer  string    `gorm:"type:varchar(255)" json:"customer,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
