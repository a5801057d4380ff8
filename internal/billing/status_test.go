package billing

import (
	"testing"
	"time"

	"tradebooks/internal/model"
)

var now = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestIsInvoiceOverdue(t *testing.T) {
	cases := []struct {
		name    string
		dueDate string
		status  string
		want    bool
	}{
		{"past due unpaid", day(-1), model.InvoiceSent, true},
		{"due today", day(0), model.InvoiceSent, false},
		{"future due", day(5), model.InvoiceSent, false},
		{"past due but paid", day(-10), model.InvoicePaid, false},
		{"malformed date", "soon", model.InvoiceSent, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := &model.Invoice{DueDate: tc.dueDate, Status: tc.status}
			if got := IsInvoiceOverdue(inv, now); got != tc.want {
				t.Fatalf("IsInvoiceOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsQuoteExpired(t *testing.T) {
	cases := []struct {
		name       string
		validUntil string
		status     string
		want       bool
	}{
		{"past validity", day(-1), model.QuoteSent, true},
		{"valid today", day(0), model.QuoteSent, false},
		{"accepted never expires", day(-30), model.QuoteAccepted, false},
		{"rejected never expires", day(-30), model.QuoteRejected, false},
		{"malformed date", "", model.QuoteSent, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &model.Quote{ValidUntil: tc.validUntil, Status: tc.status}
			if got := IsQuoteExpired(q, now); got != tc.want {
				t.Fatalf("IsQuoteExpired = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsQuoteExpiringSoon(t *testing.T) {
	cases := []struct {
		name       string
		validUntil string
		status     string
		want       bool
	}{
		{"expires today", day(0), model.QuoteSent, true},
		{"expires at window edge", day(ExpiringSoonDays), model.QuoteSent, true},
		{"expires past window", day(ExpiringSoonDays + 1), model.QuoteSent, false},
		{"already expired", day(-1), model.QuoteSent, false},
		{"accepted", day(3), model.QuoteAccepted, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &model.Quote{ValidUntil: tc.validUntil, Status: tc.status}
			if got := IsQuoteExpiringSoon(q, now); got != tc.want {
				t.Fatalf("IsQuoteExpiringSoon = %v, want %v", got, tc.want)
			}
		})
	}
}
