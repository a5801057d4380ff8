package service

import (
	"context"
	"fmt"
	"strings"

	"tradebooks/internal/apperr"
	"tradebooks/internal/events"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type SaveExpenseRequest struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

type ExpenseResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
}

// --- Interface ---

type ExpenseService interface {
	List(ctx context.Context, userID uuid.UUID) ([]ExpenseResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req SaveExpenseRequest) (*ExpenseResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	hub         *events.Hub
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, hub *events.Hub) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, hub: hub}
}

// --- Implementation ---

func (s *expenseService) List(ctx context.Context, userID uuid.UUID) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	result := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		result = append(result, toExpenseResponse(&expenses[i]))
	}
	return result, nil
}

func (s *expenseService) Save(ctx context.Context, userID uuid.UUID, req SaveExpenseRequest) (*ExpenseResponse, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("description is required")
	}
	if req.Amount < 0 {
		return nil, apperr.Validation("amount cannot be negative")
	}

	category := req.Category
	if category == "" {
		category = "Other"
	}
	date := req.Date
	if date == "" {
		date = todayString()
	}

	expense := &model.Expense{
		ID:          parseOrNewID(req.ID),
		UserID:      userID,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Amount:      decimal.NewFromFloat(req.Amount).Round(2),
	}
	if err := s.expenseRepo.Upsert(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityExpenses)
	}

	resp := toExpenseResponse(expense)
	return &resp, nil
}

func (s *expenseService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid expense id")
	}
	if err := s.expenseRepo.Delete(ctx, userID, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityExpenses)
	}
	return nil
}

// --- Mapping ---

func toExpenseResponse(e *model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Date:        e.Date,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount.StringFixed(2),
	}
}

// parseOrNewID reuses a well-formed client id or mints a fresh one.
func parseOrNewID(id string) uuid.UUID {
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.New()
}
