package service

import (
	"context"
	"errors"
	"testing"

	"tradebooks/internal/apperr"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTravelService(t *testing.T) TravelLogService {
	t.Helper()
	db := setupTestDB(t)
	return NewTravelLogService(repository.NewTravelLogRepository(db), nil, testConfig())
}

func TestTravelDeduction(t *testing.T) {
	// 100 km at 85 cents per km.
	got := TravelDeduction(decimal.NewFromInt(100), 85)
	if got.StringFixed(2) != "85.00" {
		t.Fatalf("deduction = %s, want 85.00", got.StringFixed(2))
	}

	// Rounded to the cent.
	got = TravelDeduction(decimal.NewFromFloat(12.3), 85)
	if got.StringFixed(2) != "10.46" {
		t.Fatalf("deduction = %s, want 10.46", got.StringFixed(2))
	}
}

func TestTravelSaveDerivesDeduction(t *testing.T) {
	env := newBackupEnv(t)

	log, err := env.travel.Save(context.Background(), env.userID, SaveTravelLogRequest{
		From:     "Depot",
		To:       "Site",
		Distance: 40,
	})
	if err != nil {
		t.Fatalf("save travel log: %v", err)
	}
	if log.Deduction != "34.00" {
		t.Fatalf("deduction = %s, want 34.00", log.Deduction)
	}
	if log.Date == "" {
		t.Fatal("expected defaulted date")
	}
}

func TestTravelSaveValidation(t *testing.T) {
	svc := newTravelService(t)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Save(ctx, userID, SaveTravelLogRequest{From: "", To: "B", Distance: 5}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for missing from, got %v", err)
	}
	if _, err := svc.Save(ctx, userID, SaveTravelLogRequest{From: "A", To: "B", Distance: -1}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for negative distance, got %v", err)
	}
}
