package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense categories offered by the client; the server accepts any string so
// imported data with historical categories survives.
var ExpenseCategories = []string{
	"Materials",
	"Equipment",
	"Fuel",
	"Maintenance",
	"Supplies",
	"Insurance",
	"Subcontractors",
	"Other",
}

// Expense is a flat cost entry with no derived fields.
type Expense struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	Date        string          `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
