package service

import (
	"context"
	"errors"
	"fmt"
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

type SaveInvoiceRequest struct {
	ID              string           `json:"id"`
	InvoiceDate     string           `json:"invoiceDate"`
	DueDate         string           `json:"dueDate"`
	CustomerName    string           `json:"customerName"`
	CustomerEmail   string           `json:"customerEmail"`
	CustomerAddress string           `json:"customerAddress"`
	JobDescription  string           `json:"jobDescription"`
	LineItems       []model.LineItem `json:"lineItems"`
	TaxRate         *float64         `json:"taxRate"`
	GSTInclusive    *bool            `json:"gstInclusive"`
	Status          string           `json:"status"`
}

// MarkPaidRequest stamps payment metadata alongside the status change.
type MarkPaidRequest struct {
	PaymentMethod    string `json:"paymentMethod"`
	PaymentReference string `json:"paymentReference"`
}

type InvoiceResponse struct {
	ID               string          `json:"id"`
	InvoiceNumber    int64           `json:"invoiceNumber"`
	InvoiceDate      string          `json:"invoiceDate"`
	DueDate          string          `json:"dueDate"`
	CustomerName     string          `json:"customerName"`
	CustomerEmail    string          `json:"customerEmail"`
	CustomerAddress  string          `json:"customerAddress"`
	JobDescription   string          `json:"jobDescription"`
	LineItems        model.LineItems `json:"lineItems"`
	TaxRate          string          `json:"taxRate"`
	GSTInclusive     bool            `json:"gstInclusive"`
	Subtotal         string          `json:"subtotal"`
	TaxAmount        string          `json:"taxAmount"`
	TotalAmount      string          `json:"totalAmount"`
	Status           string          `json:"status"`
	PaidDate         string          `json:"paidDate,omitempty"`
	PaymentMethod    string          `json:"paymentMethod,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Overdue          bool            `json:"overdue"`
}

// --- Interface ---

type InvoiceService interface {
	List(ctx context.Context, userID uuid.UUID) ([]InvoiceResponse, error)
	Get(ctx context.Context, userID uuid.UUID, id string) (*InvoiceResponse, error)
	Save(ctx context.Context, userID uuid.UUID, req SaveInvoiceRequest) (*InvoiceResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
	MarkPaid(ctx context.Context, userID uuid.UUID, id string, req MarkPaidRequest) (*InvoiceResponse, error)
	MarkSubmitted(ctx context.Context, userID uuid.UUID, id string) (*InvoiceResponse, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	seq         SequenceService
	txManager   repository.TransactionManager
	hub         *events.Hub
	cfg         config.Config
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	seq SequenceService,
	txManager repository.TransactionManager,
	hub *events.Hub,
	cfg config.Config,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		seq:         seq,
		txManager:   txManager,
		hub:         hub,
		cfg:         cfg,
	}
}

// --- Implementation ---

func (s *invoiceService) List(ctx context.Context, userID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	now := time.Now()
	result := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		result = append(result, toInvoiceResponse(&invoices[i], now))
	}
	return result, nil
}

func (s *invoiceService) Get(ctx context.Context, userID uuid.UUID, id string) (*InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid invoice id")
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice not found")
	}
	resp := toInvoiceResponse(invoice, time.Now())
	return &resp, nil
}

func (s *invoiceService) Save(ctx context.Context, userID uuid.UUID, req SaveInvoiceRequest) (*InvoiceResponse, error) {
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

	invoiceDate := req.InvoiceDate
	if invoiceDate == "" {
		invoiceDate = todayString()
	}
	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = dateInDays(s.cfg.InvoicePaymentTerms)
	}
	status := req.Status
	if status == "" {
		status = model.InvoiceDraft
	}

	var invoice *model.Invoice
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.findExistingInvoice(txCtx, userID, req.ID)
		if err != nil {
			return err
		}

		var id uuid.UUID
		var number int64
		if existing != nil {
			// The number was assigned at first save and never changes.
			id = existing.ID
			number = existing.InvoiceNumber
		} else {
			id = uuid.New()
			number, err = s.seq.NextInvoiceNumber(txCtx, userID)
			if err != nil {
				return err
			}
		}

		invoice = &model.Invoice{
			ID:              id,
			UserID:          userID,
			InvoiceNumber:   number,
			InvoiceDate:     invoiceDate,
			DueDate:         dueDate,
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
		if existing != nil {
			// Payment metadata survives regular edits; only mark-paid writes it.
			invoice.PaidDate = existing.PaidDate
			invoice.PaymentMethod = existing.PaymentMethod
			invoice.PaymentReference = existing.PaymentReference
		}
		return s.invoiceRepo.Upsert(txCtx, invoice)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityInvoices)
	}

	resp := toInvoiceResponse(invoice, time.Now())
	return &resp, nil
}

func (s *invoiceService) findExistingInvoice(ctx context.Context, userID uuid.UUID, id string) (*model.Invoice, error) {
	if id == "" {
		return nil, nil
	}
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	existing, err := s.invoiceRepo.FindByID(ctx, userID, invoiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check existing invoice: %w", err)
	}
	return existing, nil
}

func (s *invoiceService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid invoice id")
	}
	if err := s.invoiceRepo.Delete(ctx, userID, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityInvoices)
	}
	return nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, userID uuid.UUID, id string, req MarkPaidRequest) (*InvoiceResponse, error) {
	return s.mutateStatus(ctx, userID, id, func(inv *model.Invoice) {
		inv.Status = model.InvoicePaid
		inv.PaidDate = todayString()
		inv.PaymentMethod = req.PaymentMethod
		inv.PaymentReference = req.PaymentReference
	})
}

func (s *invoiceService) MarkSubmitted(ctx context.Context, userID uuid.UUID, id string) (*InvoiceResponse, error) {
	return s.mutateStatus(ctx, userID, id, func(inv *model.Invoice) {
		inv.Status = model.InvoiceSubmitted
	})
}

// mutateStatus is the one sanctioned in-place mutation: fetch, change status
// fields, re-save. Everything else goes through the full rebuild in Save.
func (s *invoiceService) mutateStatus(ctx context.Context, userID uuid.UUID, id string, mutate func(*model.Invoice)) (*InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid invoice id")
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, notFoundOr(err, "invoice not found")
	}

	mutate(invoice)
	if err := s.invoiceRepo.Upsert(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityInvoices)
	}

	resp := toInvoiceResponse(invoice, time.Now())
	return &resp, nil
}

// --- Mapping ---

func toInvoiceResponse(inv *model.Invoice, now time.Time) InvoiceResponse {
	return InvoiceResponse{
		ID:               inv.ID.String(),
		InvoiceNumber:    inv.InvoiceNumber,
		InvoiceDate:      inv.InvoiceDate,
		DueDate:          inv.DueDate,
		CustomerName:     inv.CustomerName,
		CustomerEmail:    inv.CustomerEmail,
		CustomerAddress:  inv.CustomerAddress,
		JobDescription:   inv.JobDescription,
		LineItems:        inv.LineItems,
		TaxRate:          inv.TaxRate.String(),
		GSTInclusive:     inv.GSTInclusive,
		Subtotal:         inv.Subtotal.StringFixed(2),
		TaxAmount:        inv.TaxAmount.StringFixed(2),
		TotalAmount:      inv.TotalAmount.StringFixed(2),
		Status:           inv.Status,
		PaidDate:         inv.PaidDate,
		PaymentMethod:    inv.PaymentMethod,
		PaymentReference: inv.PaymentReference,
		Overdue:          billing.IsInvoiceOverdue(inv, now),
	}
}
