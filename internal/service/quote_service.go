package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tradebooks/internal/apperr"
	"tradebooks/internal/billing"
	"tradebooks/internal/config"
	"tradebooks/internal/events"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

// SaveQuoteRequest is the full form payload. An empty ID (or an ID that is not
// actually persisted) means a new quote; totals sent by the client are ignored
// and recomputed from the line items.
type SaveQuoteRequest struct {
	ID              string           `json:"id"`
	QuoteDate       string           `json:"quoteDate"`
	ValidUntil      string           `json:"validUntil"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerAddress string           `json:"customerAddress"`
	JobDescription  string           `json:"jobDescription"`
	LineItems       []model.LineItem `json:"lineItems"`
	TaxRate         *float64         `json:"taxRate"`
	GSTInclusive    *bool            `json:"gstInclusive"`
	Status          string           `json:"status"`
}

type QuoteResponse struct {
	ID              string           `json:"id"`
	QuoteNumber     int64            `json:"quoteNumber"`
	QuoteDate       string           `json:"quoteDate"`
	ValidUntil      string           `json:"validUntil"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerAddress string           `json:"customerAddress"`
	JobDescription  string           `json:"jobDescription"`
	LineItems       model.LineItems  `json:"lineItems"`
	TaxRate         string           `json:"taxRate"`
	GSTInclusive    bool             `json:"gstInclusive"`
	Subtotal        string           `json:"subtotal"`
	TaxAmount       string           `json:"taxAmount"`
	TotalAmount     string           `json:"totalAmount"`
	Status          string           `json:"status"`
	Expired         bool             `json:"expired"`
	ExpiringSoon    bool             `json:"expiringSoon"`
}

// --- Interface ---

type QuoteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]QuoteResponse, error)
	Get(ctx context.Context, userID uuid.UUID, id string) (*QuoteResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req SaveQuoteRequest) (*QuoteResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
	ConvertToInvoice(ctx context.Context, userID uuid.UUID, id string) (*InvoiceResponse, error)
}

type quoteService struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	contactRepo repository.ContactRepository
	seq         SequenceService
	txManager   repository.TransactionManager
	hub         *events.Hub
	cfg         config.Config
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	contactRepo repository.ContactRepository,
	seq SequenceService,
	txManager repository.TransactionManager,
	hub *events.Hub,
	cfg config.Config,
) QuoteService {
	return &quoteService{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		seq:         seq,
		txManager:   txManager,
		hub:         hub,
		cfg:         cfg,
	}
}

// --- Implementation ---

func (s *quoteService) List(ctx context.Context, userID uuid.UUID) ([]QuoteResponse, error) {
	quotes, err := s.quoteRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}
	now := time.Now()
	result := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		result = append(result, toQuoteResponse(&quotes[i], now))
	}
	return result, nil
}

func (s *quoteService) Get(ctx context.Context, userID uuid.UUID, id string) (*QuoteResponse, error) {
	quoteID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid quote id")
	}
	quote, err := s.quoteRepo.FindByID(ctx, userID, quoteID)
	if err != nil {
		return nil, notFoundOr(err, "quote not found")
	}
	resp := toQuoteResponse(quote, time.Now())
	return &resp, nil
}

func (s *quoteService) Save(ctx context.Context, userID uuid.UUID, req SaveQuoteRequest) (*QuoteResponse, error) {
	if err := validateDocument(req.CustomerName, req.LineItems); err != nil {
		return nil, err
	}

	taxRate := s.cfg.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = decimal.NewFromFloat(*req.TaxRate)
	}
	gstInclusive := true
	if req.GSTInclusive != nil {
		gstInclusive = *req.GSTInclusive
	}

	items := normalizeLineItems(req.LineItems)
	totals := billing.Calculate(items, taxRate, gstInclusive)

	quoteDate := req.QuoteDate
	if quoteDate == "" {
		quoteDate = todayString()
	}
	validUntil := req.ValidUntil
	if validUntil == "" {
		validUntil = dateInDays(s.cfg.QuoteValidityDays)
	}
	status := req.Status
	if status == "" {
		status = model.QuoteDraft
	}

	var quote *model.Quote
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.findExistingQuote(txCtx, userID, req.ID)
		if err != nil {
			return err
		}

		var id uuid.UUID
		var number int64
		if existing != nil {
			// A real edit: the number is immutable once assigned.
			id = existing.ID
			number = existing.QuoteNumber
		} else {
			id = uuid.New()
			number, err = s.seq.NextQuoteNumber(txCtx, userID)
			if err != nil {
				return err
			}
		}

		quote = &model.Quote{
			ID:              id,
			UserID:          userID,
			QuoteNumber:     number,
			QuoteDate:       quoteDate,
			ValidUntil:      validUntil,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   req.CustomerEmail,
			CustomerAddress: req.CustomerAddress,
			JobDescription:  req.JobDescription,
			LineItems:       items,
			TaxRate:         taxRate,
			GSTInclusive:    gstInclusive,
			Subtotal:        totals.Subtotal,
			TaxAmount:       totals.TaxAmount,
			TotalAmount:     totals.Total,
			Status:          status,
		}
		return s.quoteRepo.Upsert(txCtx, quote)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save quote: %w", err)
	}

	s.ensureContactFromQuote(ctx, userID, quote)
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityQuotes)
	}

	resp := toQuoteResponse(quote, time.Now())
	return &resp, nil
}

// findExistingQuote decides whether a save is really an edit. Only a record
// actually present in the store reuses its number: trusting a stale client
// reference to a deleted or never-saved quote would create gaps or collisions.
func (s *quoteService) findExistingQuote(ctx context.Context, userID uuid.UUID, id string) (*model.Quote, error) {
	if id == "" {
		return nil, nil
	}
	quoteID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	existing, err := s.quoteRepo.FindByID(ctx, userID, quoteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check existing quote: %w", err)
	}
	return existing, nil
}

func (s *quoteService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	quoteID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid quote id")
	}
	if err := s.quoteRepo.Delete(ctx, userID, quoteID); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityQuotes)
	}
	return nil
}

// ConvertToInvoice copies the quote's financials verbatim (no recomputation),
// allocates a fresh invoice number, and flips the quote to Accepted. Both
// writes and the allocation share one transaction, so a failure on either
// side leaves no orphan invoice and no burned quote status.
func (s *quoteService) ConvertToInvoice(ctx context.Context, userID uuid.UUID, id string) (*InvoiceResponse, error) {
	quoteID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid quote id")
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		quote, err := s.quoteRepo.FindByID(txCtx, userID, quoteID)
		if err != nil {
			return notFoundOr(err, "quote not found")
		}

		number, err := s.seq.NextInvoiceNumber(txCtx, userID)
		if err != nil {
			return err
		}

		invoice = &model.Invoice{
			ID:              uuid.New(),
			UserID:          userID,
			InvoiceNumber:   number,
			InvoiceDate:     todayString(),
			DueDate:         dateInDays(s.cfg.InvoicePaymentTerms),
			CustomerName:    quote.CustomerName,
			CustomerEmail:   quote.CustomerEmail,
			CustomerAddress: quote.CustomerAddress,
			JobDescription:  quote.JobDescription,
			LineItems:       quote.LineItems,
			TaxRate:         quote.TaxRate,
			GSTInclusive:    quote.GSTInclusive,
			Subtotal:        quote.Subtotal,
			TaxAmount:       quote.TaxAmount,
			TotalAmount:     quote.TotalAmount,
			Status:          model.InvoiceDraft,
		}
		if err := s.invoiceRepo.Upsert(txCtx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		quote.Status = model.QuoteAccepted
		if err := s.quoteRepo.Upsert(txCtx, quote); err != nil {
			return fmt.Errorf("failed to update quote status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityQuotes)
		s.hub.PublishRefresh(events.EntityInvoices)
	}

	resp := toInvoiceResponse(invoice, time.Now())
	return &resp, nil
}

// ensureContactFromQuote auto-creates an address-book entry from the quote's
// customer when an email is present and no contact with that email exists.
// Best effort: a contact failure never fails the quote save.
func (s *quoteService) ensureContactFromQuote(ctx context.Context, userID uuid.UUID, quote *model.Quote) {
	if quote.CustomerEmail == "" {
		return
	}
	_, err := s.contactRepo.FindByEmail(ctx, userID, quote.CustomerEmail)
	if err == nil {
		return // already exists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("quotes: contact lookup failed: %v", err)
		return
	}

	contact := &model.Contact{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    quote.CustomerName,
		Email:   quote.CustomerEmail,
		Address: quote.CustomerAddress,
	}
	if err := s.contactRepo.Upsert(ctx, contact); err != nil {
		log.Printf("quotes: auto-create contact failed: %v", err)
		return
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityContacts)
	}
}

// --- Helpers ---

// validateDocument enforces the shared quote/invoice form rules before any
// write is attempted.
func validateDocument(customerName string, items []model.LineItem) error {
	if strings.TrimSpace(customerName) == "" {
		return apperr.Validation("customer name is required")
	}
	hasDescription := false
	for _, item := range items {
		if strings.TrimSpace(item.Description) != "" {
			hasDescription = true
			break
		}
	}
	if len(items) == 0 || !hasDescription {
		return apperr.Validation("at least one line item is required")
	}
	return nil
}

func normalizeLineItems(items []model.LineItem) model.LineItems {
	out := make(model.LineItems, len(items))
	for i, item := range items {
		item.ItemTotal = item.Qty * item.Price
		out[i] = item
	}
	return out
}

// --- Mapping ---

func toQuoteResponse(q *model.Quote, now time.Time) QuoteResponse {
	return QuoteResponse{
		ID:              q.ID.String(),
		QuoteNumber:     q.QuoteNumber,
		QuoteDate:       q.QuoteDate,
		ValidUntil:      q.ValidUntil,
		CustomerName:    q.CustomerName,
		CustomerEmail:   q.CustomerEmail,
		CustomerAddress: q.CustomerAddress,
		JobDescription:  q.JobDescription,
		LineItems:       q.LineItems,
		TaxRate:         q.TaxRate.String(),
		GSTInclusive:    q.GSTInclusive,
		Subtotal:        q.Subtotal.StringFixed(2),
		TaxAmount:       q.TaxAmount.StringFixed(2),
		TotalAmount:     q.TotalAmount.StringFixed(2),
		Status:          q.Status,
		Expired:         billing.IsQuoteExpired(q, now),
		ExpiringSoon:    billing.IsQuoteExpiringSoon(q, now),
	}
}
