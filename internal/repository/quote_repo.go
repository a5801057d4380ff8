package repository

import (
	"context"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuoteRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Quote, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Quote, error)
	Upsert(ctx context.Context, quote *model.Quote) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Quote, error) {
	var quotes []model.Quote
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("quote_number desc").Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Quote, error) {
	var quote model.Quote
	if err := GetDB(ctx, r.db).First(&quote, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// Upsert is a keyed write: last writer wins, no concurrency token. The conflict
// target includes user_id, so an id imported from another account inserts a
// fresh row under the importing user instead of rewriting the source row.
func (r *quoteRepository) Upsert(ctx context.Context, quote *model.Quote) error {
	return GetDB(ctx, r.db).Clauses(ownerConflict()).Create(quote).Error
}

func (r *quoteRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Quote{}).Error
}
