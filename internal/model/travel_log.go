package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TravelLog records a business trip. The tax deduction (distance * rate per km)
// is derived in responses and never stored. Legacy exports used kms/km and
// origin/destination aliases; those are canonicalized once at import time.
type TravelLog struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	Date      string          `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	From      string          `gorm:"column:from_location;type:varchar(255);not null" json:"from"`
	To        string          `gorm:"column:to_location;type:varchar(255);not null" json:"to"`
	Distance  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"distance"` // km
	Purpose   string          `gorm:"type:text" json:"purpose,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
