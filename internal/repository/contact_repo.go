package repository

import (
	"context"
	"strings"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Contact, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Contact, error)
	FindByEmail(ctx context.Context, userID uuid.UUID, email string) (*model.Contact, error)
	Upsert(ctx context.Context, contact *model.Contact) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Contact, error) {
	var contacts []model.Contact
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("name asc").Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Contact, error) {
	var contact model.Contact
	if err := GetDB(ctx, r.db).First(&contact, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByEmail matches case-insensitively; used for the auto-create-from-quote path.
func (r *contactRepository) FindByEmail(ctx context.Context, userID uuid.UUID, email string) (*model.Contact, error) {
	var contact model.Contact
	err := GetDB(ctx, r.db).
		First(&contact, "user_id = ? AND lower(email) = ?", userID, strings.ToLower(email)).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Upsert(ctx context.Context, contact *model.Contact) error {
	return GetDB(ctx, r.db).Clauses(ownerConflict()).Create(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Contact{}).Error
}
