package repository

import (
	"context"
	"errors"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BusinessProfileRepository handles the per-user singleton profile document.
type BusinessProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.BusinessProfile, error)
	Set(ctx context.Context, profile *model.BusinessProfile) error
}

type businessProfileRepository struct {
	db *gorm.DB
}

func NewBusinessProfileRepository(db *gorm.DB) BusinessProfileRepository {
	return &businessProfileRepository{db: db}
}

// Get returns an empty profile when none has been saved yet, matching the
// store contract the views rely on.
func (r *businessProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*model.BusinessProfile, error) {
	var profile model.BusinessProfile
	err := GetDB(ctx, r.db).First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.BusinessProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *businessProfileRepository) Set(ctx context.Context, profile *model.BusinessProfile) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{UpdateAll: true}).Create(profile).Error
}
