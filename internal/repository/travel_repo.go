package repository

import (
	"context"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TravelLogRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.TravelLog, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.TravelLog, error)
	Upsert(ctx context.Context, log *model.TravelLog) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type travelLogRepository struct {
	db *gorm.DB
}

func NewTravelLogRepository(db *gorm.DB) TravelLogRepository {
	return &travelLogRepository{db: db}
}

func (r *travelLogRepository) List(ctx context.Context, userID uuid.UUID) ([]model.TravelLog, error) {
	var logs []model.TravelLog
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("date desc").Find(&logs).Error
	return logs, err
}

func (r *travelLogRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.TravelLog, error) {
	var log model.TravelLog
	if err := GetDB(ctx, r.db).First(&log, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *travelLogRepository) Upsert(ctx context.Context, log *model.TravelLog) error {
	return GetDB(ctx, r.db).Clauses(ownerConflict()).Create(log).Error
}

func (r *travelLogRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.TravelLog{}).Error
}
