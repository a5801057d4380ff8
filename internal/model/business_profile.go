package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessProfile is a per-user singleton used for document rendering (PDF
// headers, bank payment details). It carries no invariants of its own.
type BusinessProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	BusinessName    string    `gorm:"type:varchar(255)" json:"businessName"`
	Address         string    `gorm:"type:text" json:"address"`
	Phone           string    `gorm:"type:varchar(50)" json:"phone"`
	Email           string    `gorm:"type:varchar(255)" json:"email"`
	ABN             string    `gorm:"type:varchar(20)" json:"abn"`
	LogoDataURL     string    `gorm:"type:text" json:"logoDataUrl"`
	BankName        string    `gorm:"type:varchar(100)" json:"bankName"`
	BankBSB         string    `gorm:"type:varchar(10)" json:"bankBSB"`
	BankAccount     string    `gorm:"type:varchar(20)" json:"bankAccount"`
	BankAccountName string    `gorm:"type:varchar(255)" json:"bankAccountName"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}
