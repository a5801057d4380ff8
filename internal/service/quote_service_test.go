package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tradebooks/internal/apperr"
	"tradebooks/internal/config"
	"tradebooks/internal/database"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() config.Config {
	return config.Config{
		DefaultTaxRate:      decimal.NewFromInt(10),
		QuoteValidityDays:   30,
		InvoicePaymentTerms: 14,
		TravelCentsPerKm:    85,
	}
}

type testEnv struct {
	db       *gorm.DB
	userID   uuid.UUID
	quotes   QuoteService
	invoices InvoiceService
	contacts repository.ContactRepository
	counters repository.CounterRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig()
	txManager := repository.NewTransactionManager(db)
	quoteRepo := repository.NewQuoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	contactRepo := repository.NewContactRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	seq := NewSequenceService(counterRepo)

	return &testEnv{
		db:       db,
		userID:   uuid.New(),
		quotes:   NewQuoteService(quoteRepo, invoiceRepo, contactRepo, seq, txManager, nil, cfg),
		invoices: NewInvoiceService(invoiceRepo, seq, txManager, nil, cfg),
		contacts: contactRepo,
		counters: counterRepo,
	}
}

func quoteFixture() SaveQuoteRequest {
	return SaveQuoteRequest{
		CustomerName: "Acme Pty Ltd",
		LineItems: []model.LineItem{
			{Description: "Labour", Qty: 2, Price: 55},
		},
	}
}

func TestSaveQuoteAssignsSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		quote, err := env.quotes.Save(ctx, env.userID, quoteFixture())
		if err != nil {
			t.Fatalf("save quote: %v", err)
		}
		if quote.QuoteNumber != want {
			t.Fatalf("quote number = %d, want %d", quote.QuoteNumber, want)
		}
	}
}

func TestSaveQuoteComputesTotals(t *testing.T) {
	env := newTestEnv(t)

	quote, err := env.quotes.Save(context.Background(), env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}

	// 2 x 55 at the default 10% GST-inclusive rate.
	if quote.Subtotal != "100.00" || quote.TaxAmount != "10.00" || quote.TotalAmount != "110.00" {
		t.Fatalf("totals = %s/%s/%s, want 100.00/10.00/110.00", quote.Subtotal, quote.TaxAmount, quote.TotalAmount)
	}
	if quote.Status != model.QuoteDraft {
		t.Fatalf("status = %s, want Draft", quote.Status)
	}
	if quote.QuoteDate == "" || quote.ValidUntil == "" {
		t.Fatal("expected defaulted dates")
	}
}

func TestSaveQuoteEditKeepsNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.quotes.Save(ctx, env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}

	edit := quoteFixture()
	edit.ID = first.ID
	edit.CustomerName = "Acme Pty Ltd (renamed)"
	edited, err := env.quotes.Save(ctx, env.userID, edit)
	if err != nil {
		t.Fatalf("edit quote: %v", err)
	}
	if edited.ID != first.ID {
		t.Fatalf("edit changed id: %s -> %s", first.ID, edited.ID)
	}
	if edited.QuoteNumber != first.QuoteNumber {
		t.Fatalf("edit changed number: %d -> %d", first.QuoteNumber, edited.QuoteNumber)
	}

	// The edit must not have burned a sequence slot.
	next, err := env.quotes.Save(ctx, env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save next quote: %v", err)
	}
	if next.QuoteNumber != first.QuoteNumber+1 {
		t.Fatalf("next number = %d, want %d", next.QuoteNumber, first.QuoteNumber+1)
	}
}

func TestSaveQuoteStaleIDGetsFreshNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A client reference to a never-persisted id is treated as a new quote.
	req := quoteFixture()
	req.ID = uuid.NewString()
	quote, err := env.quotes.Save(ctx, env.userID, req)
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}
	if quote.QuoteNumber != 1 {
		t.Fatalf("number = %d, want 1", quote.QuoteNumber)
	}
}

func TestDeletedQuoteNumberNeverReused(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.quotes.Save(ctx, env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}
	if err := env.quotes.Delete(ctx, env.userID, first.ID); err != nil {
		t.Fatalf("delete quote: %v", err)
	}

	second, err := env.quotes.Save(ctx, env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}
	if second.QuoteNumber != 2 {
		t.Fatalf("number after delete = %d, want 2", second.QuoteNumber)
	}
}

func TestSaveQuoteValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	noName := quoteFixture()
	noName.CustomerName = "   "
	if _, err := env.quotes.Save(ctx, env.userID, noName); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}

	noItems := quoteFixture()
	noItems.LineItems = nil
	if _, err := env.quotes.Save(ctx, env.userID, noItems); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for no items, got %v", err)
	}

	blankItems := quoteFixture()
	blankItems.LineItems = []model.LineItem{{Description: "  ", Qty: 1, Price: 10}}
	if _, err := env.quotes.Save(ctx, env.userID, blankItems); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for blank descriptions, got %v", err)
	}
}

func TestConvertToInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := quoteFixture()
	req.CustomerEmail = "acme@example.com"
	quote, err := env.quotes.Save(ctx, env.userID, req)
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}

	invoice, err := env.quotes.ConvertToInvoice(ctx, env.userID, quote.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	// Financials copied verbatim, never recomputed.
	if invoice.Subtotal != quote.Subtotal || invoice.TaxAmount != quote.TaxAmount || invoice.TotalAmount != quote.TotalAmount {
		t.Fatalf("invoice totals %s/%s/%s differ from quote %s/%s/%s",
			invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount,
			quote.Subtotal, quote.TaxAmount, quote.TotalAmount)
	}
	if invoice.InvoiceNumber != 1 {
		t.Fatalf("invoice number = %d, want 1", invoice.InvoiceNumber)
	}
	if invoice.Status != model.InvoiceDraft {
		t.Fatalf("invoice status = %s, want Draft", invoice.Status)
	}
	if invoice.CustomerName != quote.CustomerName {
		t.Fatalf("customer not carried over: %s", invoice.CustomerName)
	}

	converted, err := env.quotes.Get(ctx, env.userID, quote.ID)
	if err != nil {
		t.Fatalf("reload quote: %v", err)
	}
	if converted.Status != model.QuoteAccepted {
		t.Fatalf("quote status after convert = %s, want Accepted", converted.Status)
	}
}

func TestConvertMissingQuote(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.quotes.ConvertToInvoice(context.Background(), env.userID, uuid.NewString())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestQuoteSaveAutoCreatesContact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := quoteFixture()
	req.CustomerEmail = "acme@example.com"
	req.CustomerAddress = "1 Workshop Rd"
	if _, err := env.quotes.Save(ctx, env.userID, req); err != nil {
		t.Fatalf("save quote: %v", err)
	}

	contact, err := env.contacts.FindByEmail(ctx, env.userID, "acme@example.com")
	if err != nil {
		t.Fatalf("expected auto-created contact: %v", err)
	}
	if contact.Name != "Acme Pty Ltd" || contact.Address != "1 Workshop Rd" {
		t.Fatalf("contact fields = %q/%q", contact.Name, contact.Address)
	}

	// Saving again must not create a duplicate.
	if _, err := env.quotes.Save(ctx, env.userID, req); err != nil {
		t.Fatalf("second save: %v", err)
	}
	list, err := env.contacts.List(ctx, env.userID)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("contact count = %d, want 1", len(list))
	}
}

func TestQuoteScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	quote, err := env.quotes.Save(ctx, env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}

	otherUser := uuid.New()
	if _, err := env.quotes.Get(ctx, otherUser, quote.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found for foreign user, got %v", err)
	}
}
