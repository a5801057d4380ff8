package service

import (
	"context"
	"errors"
	"testing"

	"tradebooks/internal/apperr"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
)

func invoiceFixture() SaveInvoiceRequest {
	return SaveInvoiceRequest{
		CustomerName: "Jane Builder",
		LineItems: []model.LineItem{
			{Description: "Materials", Qty: 1, Price: 220},
		},
	}
}

func TestSaveInvoiceAssignsSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		invoice, err := env.invoices.Save(ctx, env.userID, invoiceFixture())
		if err != nil {
			t.Fatalf("save invoice: %v", err)
		}
		if invoice.InvoiceNumber != want {
			t.Fatalf("invoice number = %d, want %d", invoice.InvoiceNumber, want)
		}
	}
}

func TestInvoiceAndQuoteCountersIndependent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.quotes.Save(ctx, env.userID, quoteFixture()); err != nil {
		t.Fatalf("save quote: %v", err)
	}
	if _, err := env.quotes.Save(ctx, env.userID, quoteFixture()); err != nil {
		t.Fatalf("save quote: %v", err)
	}

	invoice, err := env.invoices.Save(ctx, env.userID, invoiceFixture())
	if err != nil {
		t.Fatalf("save invoice: %v", err)
	}
	if invoice.InvoiceNumber != 1 {
		t.Fatalf("invoice number = %d, want 1 (quote saves must not advance it)", invoice.InvoiceNumber)
	}
}

func TestSaveInvoiceEditPreservesPaymentMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	invoice, err := env.invoices.Save(ctx, env.userID, invoiceFixture())
	if err != nil {
		t.Fatalf("save invoice: %v", err)
	}

	paid, err := env.invoices.MarkPaid(ctx, env.userID, invoice.ID, MarkPaidRequest{
		PaymentMethod:    "bank transfer",
		PaymentReference: "INV-REF-42",
	})
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if paid.Status != model.InvoicePaid || paid.PaidDate == "" {
		t.Fatalf("paid stamp missing: status=%s paidDate=%q", paid.Status, paid.PaidDate)
	}

	edit := invoiceFixture()
	edit.ID = invoice.ID
	edit.Status = model.InvoicePaid
	edited, err := env.invoices.Save(ctx, env.userID, edit)
	if err != nil {
		t.Fatalf("edit invoice: %v", err)
	}
	if edited.InvoiceNumber != invoice.InvoiceNumber {
		t.Fatalf("edit changed number: %d -> %d", invoice.InvoiceNumber, edited.InvoiceNumber)
	}
	if edited.PaymentMethod != "bank transfer" || edited.PaymentReference != "INV-REF-42" {
		t.Fatalf("payment metadata lost on edit: %q/%q", edited.PaymentMethod, edited.PaymentReference)
	}
	if edited.PaidDate != paid.PaidDate {
		t.Fatalf("paid date lost on edit: %q", edited.PaidDate)
	}
}

func TestMarkSubmitted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	invoice, err := env.invoices.Save(ctx, env.userID, invoiceFixture())
	if err != nil {
		t.Fatalf("save invoice: %v", err)
	}

	submitted, err := env.invoices.MarkSubmitted(ctx, env.userID, invoice.ID)
	if err != nil {
		t.Fatalf("mark submitted: %v", err)
	}
	if submitted.Status != model.InvoiceSubmitted {
		t.Fatalf("status = %s, want Submitted", submitted.Status)
	}
}

func TestMarkPaidMissingInvoice(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.invoices.MarkPaid(context.Background(), env.userID, uuid.NewString(), MarkPaidRequest{})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestCounterIncrementHasNoGaps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := env.counters.Increment(ctx, env.userID, repository.InvoiceCounter)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got != want {
			t.Fatalf("counter = %d, want %d", got, want)
		}
	}

	counter, err := env.counters.Get(ctx, env.userID)
	if err != nil {
		t.Fatalf("get counter: %v", err)
	}
	if counter.InvoiceCounter != 5 {
		t.Fatalf("stored counter = %d, want 5", counter.InvoiceCounter)
	}
	if counter.QuoteCounter != 0 {
		t.Fatalf("quote counter = %d, want 0", counter.QuoteCounter)
	}
}

func TestCounterIncrementRejectsUnknownColumn(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.counters.Increment(context.Background(), env.userID, "balance; DROP TABLE counters"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}
