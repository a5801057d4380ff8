package service

import (
	"context"
	"fmt"

	"tradebooks/internal/apperr"
	"tradebooks/internal/pdf"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
)

// DocumentPDFService renders invoices and quotes with the account's business
// profile in the header. The returned number feeds the download filename.
type DocumentPDFService interface {
	InvoicePDF(ctx context.Context, userID uuid.UUID, id string) ([]byte, int64, error)
	QuotePDF(ctx context.Context, userID uuid.UUID, id string) ([]byte, int64, error)
}

type documentPDFService struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	profileRepo repository.BusinessProfileRepository
	generator   *pdf.Generator
}

func NewDocumentPDFService(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	profileRepo repository.BusinessProfileRepository,
	generator *pdf.Generator,
) DocumentPDFService {
	return &documentPDFService{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		profileRepo: profileRepo,
		generator:   generator,
	}
}

func (s *documentPDFService) InvoicePDF(ctx context.Context, userID uuid.UUID, id string) ([]byte, int64, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, 0, apperr.Validation("invalid invoice id")
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, 0, notFoundOr(err, "invoice not found")
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch business profile: %w", err)
	}
	data, err := s.generator.Invoice(invoice, profile)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return data, invoice.InvoiceNumber, nil
}

func (s *documentPDFService) QuotePDF(ctx context.Context, userID uuid.UUID, id string) ([]byte, int64, error) {
	quoteID, err := uuid.Parse(id)
	if err != nil {
		return nil, 0, apperr.Validation("invalid quote id")
	}
	quote, err := s.quoteRepo.FindByID(ctx, userID, quoteID)
	if err != nil {
		return nil, 0, notFoundOr(err, "quote not found")
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch business profile: %w", err)
	}
	data, err := s.generator.Quote(quote, profile)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to render quote pdf: %w", err)
	}
	return data, quote.QuoteNumber, nil
}
