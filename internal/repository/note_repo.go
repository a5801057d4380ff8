package repository

import (
	"context"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobNoteRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.JobNote, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.JobNote, error)
	Upsert(ctx context.Context, note *model.JobNote) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type jobNoteRepository struct {
	db *gorm.DB
}

func NewJobNoteRepository(db *gorm.DB) JobNoteRepository {
	return &jobNoteRepository{db: db}
}

func (r *jobNoteRepository) List(ctx context.Context, userID uuid.UUID) ([]model.JobNote, error) {
	var notes []model.JobNote
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("date desc").Find(&notes).Error
	return notes, err
}

func (r *jobNoteRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.JobNote, error) {
	var note model.JobNote
	if err := GetDB(ctx, r.db).First(&note, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *jobNoteRepository) Upsert(ctx context.Context, note *model.JobNote) error {
	return GetDB(ctx, r.db).Clauses(ownerConflict()).Create(note).Error
}

func (r *jobNoteRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.JobNote{}).Error
}
