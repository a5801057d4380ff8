package service

import (
	"context"
	"fmt"
	"strings"

	"tradebooks/internal/apperr"
	"tradebooks/internal/config"
	"tradebooks/internal/events"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type SaveTravelLogRequest struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
	Purpose  string  `json:"purpose"`
}

// TravelLogResponse carries the derived deduction (distance * rate per km),
// which is never stored.
type TravelLogResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	From      string `json:"from"`
	To        string `json:"to"`
	Distance  string `json:"distance"`
	Purpose   string `json:"purpose,omitempty"`
	Deduction string `json:"deduction"`
}

// --- Interface ---

type TravelLogService interface {
	List(ctx context.Context, userID uuid.UUID) ([]TravelLogResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req SaveTravelLogRequest) (*TravelLogResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

type travelLogService struct {
	travelRepo repository.TravelLogRepository
	hub        *events.Hub
	cfg        config.Config
}

func NewTravelLogService(travelRepo repository.TravelLogRepository, hub *events.Hub, cfg config.Config) TravelLogService {
	return &travelLogService{travelRepo: travelRepo, hub: hub, cfg: cfg}
}

// --- Implementation ---

func (s *travelLogService) List(ctx context.Context, userID uuid.UUID) ([]TravelLogResponse, error) {
	logs, err := s.travelRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch travel logs: %w", err)
	}
	result := make([]TravelLogResponse, 0, len(logs))
	for i := range logs {
		result = append(result, s.toResponse(&logs[i]))
	}
	return result, nil
}

func (s *travelLogService) Save(ctx context.Context, userID uuid.UUID, req SaveTravelLogRequest) (*TravelLogResponse, error) {
	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		return nil, apperr.Validation("from and to locations are required")
	}
	if req.Distance < 0 {
		return nil, apperr.Validation("distance cannot be negative")
	}

	date := req.Date
	if date == "" {
		date = todayString()
	}

	log := &model.TravelLog{
		ID:       parseOrNewID(req.ID),
		UserID:   userID,
		Date:     date,
		From:     strings.TrimSpace(req.From),
		To:       strings.TrimSpace(req.To),
		Distance: decimal.NewFromFloat(req.Distance).Round(2),
		Purpose:  req.Purpose,
	}
	if err := s.travelRepo.Upsert(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to save travel log: %w", err)
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityTravel)
	}

	resp := s.toResponse(log)
	return &resp, nil
}

func (s *travelLogService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	logID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid travel log id")
	}
	if err := s.travelRepo.Delete(ctx, userID, logID); err != nil {
		return fmt.Errorf("failed to delete travel log: %w", err)
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityTravel)
	}
	return nil
}

// --- Mapping ---

func (s *travelLogService) toResponse(log *model.TravelLog) TravelLogResponse {
	return TravelLogResponse{
		ID:        log.ID.String(),
		Date:      log.Date,
		From:      log.From,
		To:        log.To,
		Distance:  log.Distance.StringFixed(2),
		Purpose:   log.Purpose,
		Deduction: TravelDeduction(log.Distance, s.cfg.TravelCentsPerKm).StringFixed(2),
	}
}

// TravelDeduction computes distance * rate where the rate is configured in
// cents per kilometre.
func TravelDeduction(distance decimal.Decimal, centsPerKm int64) decimal.Decimal {
	rate := decimal.New(centsPerKm, -2) // cents -> dollars
	return distance.Mul(rate).Round(2)
}
