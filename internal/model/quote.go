package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote status enum constants
const (
	QuoteDraft    = "Draft"
	QuoteSent     = "Sent"
	QuoteAccepted = "Accepted"
	QuoteRejected = "Rejected"
)

// Quote is a priced offer to a customer. QuoteNumber is assigned once at first
// save and never changes on later edits; totals are always recomputed from the
// line items when the record is written.
type Quote struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	QuoteNumber     int64           `gorm:"not null;index" json:"quoteNumber"`
	QuoteDate       string          `gorm:"type:varchar(10);not null" json:"quoteDate"` // YYYY-MM-DD
	ValidUntil      string          `gorm:"type:varchar(10);not null" json:"validUntil"`
	CustomerName    string          `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerEmail   string          `gorm:"type:varchar(255)" json:"customerEmail"`
	CustomerAddress string          `gorm:"type:text" json:"customerAddress"`
	JobDescription  string          `gorm:"type:text" json:"jobDescription"`
	LineItems       LineItems       `gorm:"type:jsonb;not null" json:"lineItems"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"taxRate"` // percentage, e.g. 10 = 10%
	GSTInclusive    bool            `gorm:"not null;default:true" json:"gstInclusive"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"taxAmount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"totalAmount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'Draft'" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
