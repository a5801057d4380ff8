package service

import (
	"context"
	"fmt"
	"time"

	"tradebooks/internal/billing"
	"tradebooks/internal/config"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary aggregates the headline figures shown on the home screen.
// All monetary values are fixed to cents.
type DashboardSummary struct {
	TotalPaid        string `json:"totalPaid"`
	TotalOutstanding string `json:"totalOutstanding"`
	UnpaidCount      int    `json:"unpaidCount"`
	OverdueAmount    string `json:"overdueAmount"`
	OverdueCount     int    `json:"overdueCount"`
	TotalExpenses    string `json:"totalExpenses"`
	NetIncome        string `json:"netIncome"`
	TravelKm         string `json:"travelKm"`
	TravelDeduction  string `json:"travelDeduction"`
	QuoteCount       int    `json:"quoteCount"`
	PendingQuotes    int    `json:"pendingQuotes"`
}

type DashboardService interface {
	Summary(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error)
}

type dashboardService struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	expenseRepo repository.ExpenseRepository
	travelRepo  repository.TravelLogRepository
	cfg         config.Config
}

func NewDashboardService(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
	travelRepo repository.TravelLogRepository,
	cfg config.Config,
) DashboardService {
	return &dashboardService{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		travelRepo:  travelRepo,
		cfg:         cfg,
	}
}

func (s *dashboardService) Summary(ctx context.Context, userID uuid.UUID) (*DashboardSummary, error) {
	invoices, err := s.invoiceRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	quotes, err := s.quoteRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}
	expenses, err := s.expenseRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	travelLogs, err := s.travelRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch travel logs: %w", err)
	}

	now := time.Now()
	var totalPaid, totalOutstanding, overdueAmount decimal.Decimal
	unpaidCount, overdueCount := 0, 0
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status == model.InvoicePaid {
			totalPaid = totalPaid.Add(inv.TotalAmount)
			continue
		}
		totalOutstanding = totalOutstanding.Add(inv.TotalAmount)
		unpaidCount++
		if billing.IsInvoiceOverdue(inv, now) {
			overdueAmount = overdueAmount.Add(inv.TotalAmount)
			overdueCount++
		}
	}

	var totalExpenses decimal.Decimal
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}

	var travelKm decimal.Decimal
	for i := range travelLogs {
		travelKm = travelKm.Add(travelLogs[i].Distance)
	}

	pendingQuotes := 0
	for i := range quotes {
		switch quotes[i].Status {
		case model.QuoteDraft, model.QuoteSent:
			pendingQuotes++
		}
	}

	return &DashboardSummary{
		TotalPaid:        totalPaid.StringFixed(2),
		TotalOutstanding: totalOutstanding.StringFixed(2),
		UnpaidCount:      unpaidCount,
		OverdueAmount:    overdueAmount.StringFixed(2),
		OverdueCount:     overdueCount,
		TotalExpenses:    totalExpenses.StringFixed(2),
		NetIncome:        totalPaid.Sub(totalExpenses).StringFixed(2),
		TravelKm:         travelKm.StringFixed(2),
		TravelDeduction:  TravelDeduction(travelKm, s.cfg.TravelCentsPerKm).StringFixed(2),
		QuoteCount:       len(quotes),
		PendingQuotes:    pendingQuotes,
	}, nil
}
