package service

import (
	"context"
	"fmt"

	"tradebooks/internal/repository"

	"github.com/google/uuid"
)

// SequenceService issues human-facing document numbers. Values are strictly
// increasing per user and kind; the underlying increment is atomic in the
// database, so concurrent saves (two tabs, two devices) can never be handed
// the same number. A store failure propagates — the allocator never invents
// a number to paper over data loss.
type SequenceService interface {
	NextQuoteNumber(ctx context.Context, userID uuid.UUID) (int64, error)
	NextInvoiceNumber(ctx context.Context, userID uuid.UUID) (int64, error)
}

type sequenceService struct {
	counterRepo repository.CounterRepository
}

func NewSequenceService(counterRepo repository.CounterRepository) SequenceService {
	return &sequenceService{counterRepo: counterRepo}
}

func (s *sequenceService) NextQuoteNumber(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.counterRepo.Increment(ctx, userID, repository.QuoteCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate quote number: %w", err)
	}
	return n, nil
}

func (s *sequenceService) NextInvoiceNumber(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.counterRepo.Increment(ctx, userID, repository.InvoiceCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return n, nil
}
