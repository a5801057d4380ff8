package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice status enum constants
const (
	InvoiceDraft     = "Draft"
	InvoiceSent      = "Sent"
	InvoiceSubmitted = "Submitted"
	InvoicePaid      = "Paid"
)

// Invoice mirrors Quote plus a due date and payment metadata. InvoiceNumber is
// assigned exactly once at first save; edit paths must reuse the stored number.
type Invoice struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	InvoiceNumber   int64           `gorm:"not null;index" json:"invoiceNumber"`
	InvoiceDate     string          `gorm:"type:varchar(10);not null" json:"invoiceDate"` // YYYY-MM-DD
	DueDate         string          `gorm:"type:varchar(10);not null" json:"dueDate"`
	CustomerName    string          `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerEmail   string          `gorm:"type:varchar(255)" json:"customerEmail"`
	CustomerAddress string          `gorm:"type:text" json:"customerAddress"`
	JobDescription  string          `gorm:"type:text" json:"jobDescription"`
	LineItems       LineItems       `gorm:"type:jsonb;not null" json:"lineItems"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"taxRate"`
	GSTInclusive    bool            `gorm:"not null;default:true" json:"gstInclusive"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"taxAmount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"totalAmount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'Draft'" json:"status"`

	// Stamped by the mark-paid action, never by a regular edit
	PaidDate         string `gorm:"type:varchar(10)" json:"paidDate,omitempty"`
	PaymentMethod    string `gorm:"type:varchar(50)" json:"paymentMethod,omitempty"`
	PaymentReference string `gorm:"type:varchar(100)" json:"paymentReference,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
