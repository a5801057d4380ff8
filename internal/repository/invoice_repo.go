package repository

import (
	"context"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Invoice, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Invoice, error)
	Upsert(ctx context.Context, invoice *model.Invoice) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("invoice_number desc").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Upsert(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Clauses(ownerConflict()).Create(invoice).Error
}

func (r *invoiceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Invoice{}).Error
}
