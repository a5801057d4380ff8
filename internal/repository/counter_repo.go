package repository

import (
	"context"
	"fmt"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter column identifiers. Kept as an enum so Increment never interpolates
// caller input into SQL.
const (
	QuoteCounter   = "quote_counter"
	InvoiceCounter = "invoice_counter"
)

// CounterRepository manages the per-user number sequences.
type CounterRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.Counter, error)
	Set(ctx context.Context, counter *model.Counter) error
	// Increment atomically bumps one counter and returns the new value. The
	// increment is a single UPDATE ... RETURNING statement serialized by the
	// database row lock, so concurrent allocations can never observe the same
	// value. Failures propagate; there is no fallback value.
	Increment(ctx context.Context, userID uuid.UUID, column string) (int64, error)
}

type counterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Get(ctx context.Context, userID uuid.UUID) (*model.Counter, error) {
	counter := model.Counter{UserID: userID}
	if err := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
		return nil, err
	}
	if err := GetDB(ctx, r.db).First(&counter, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &counter, nil
}

// Set overwrites both counters verbatim; used by backup import only.
func (r *counterRepository) Set(ctx context.Context, counter *model.Counter) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{UpdateAll: true}).Create(counter).Error
}

func (r *counterRepository) Increment(ctx context.Context, userID uuid.UUID, column string) (int64, error) {
	if column != QuoteCounter && column != InvoiceCounter {
		return 0, fmt.Errorf("unknown counter column %q", column)
	}

	db := GetDB(ctx, r.db)

	// Seed the row on first allocation; DO NOTHING keeps this idempotent.
	seed := model.Counter{UserID: userID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, err
	}

	var next int64
	row := db.Raw(
		"UPDATE counters SET "+column+" = "+column+" + 1 WHERE user_id = ? RETURNING "+column,
		userID,
	).Row()
	if err := row.Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}
