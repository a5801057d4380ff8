package repository

import (
	"context"

	"tradebooks/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Expense, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Expense, error)
	Upsert(ctx context.Context, expense *model.Expense) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := GetDB(ctx, r.db).Where("user_id = ?", userID).Order("date desc").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := GetDB(ctx, r.db).First(&expense, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Upsert(ctx context.Context, expense *model.Expense) error {
	return GetDB(ctx, r.db).Clauses(ownerConflict()).Create(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Expense{}).Error
}
