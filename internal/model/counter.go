package model

import (
	"time"

	"github.com/google/uuid"
)

// Counter holds the per-user document number sequences. Both counters are
// monotonically non-decreasing; allocation is a single atomic database-side
// increment, never read-then-write.
type Counter struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	QuoteCounter   int64     `gorm:"not null;default:0" json:"quoteCounter"`
	InvoiceCounter int64     `gorm:"not null;default:0" json:"invoiceCounter"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
