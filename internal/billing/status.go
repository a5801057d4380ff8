package billing

import (
	"time"

	"tradebooks/internal/model"
)

const dateLayout = "2006-01-02"

// ExpiringSoonDays is the lookahead window for quote expiry warnings.
const ExpiringSoonDays = 7

// Derived status predicates. All comparisons are at calendar-day granularity
// (time-of-day zeroed) and recomputed at read time, never stored. An
// unparseable date yields false, matching how the views always treated
// malformed records.

// IsInvoiceOverdue reports whether an unpaid invoice's due date has passed.
func IsInvoiceOverdue(inv *model.Invoice, now time.Time) bool {
	if inv.Status == model.InvoicePaid {
		return false
	}
	due, err := time.Parse(dateLayout, inv.DueDate)
	if err != nil {
		return false
	}
	return due.Before(startOfDay(now))
}

// IsQuoteExpired reports whether an open quote's validity window has passed.
func IsQuoteExpired(q *model.Quote, now time.Time) bool {
	if q.Status == model.QuoteAccepted || q.Status == model.QuoteRejected {
		return false
	}
	validUntil, err := time.Parse(dateLayout, q.ValidUntil)
	if err != nil {
		return false
	}
	return validUntil.Before(startOfDay(now))
}

// IsQuoteExpiringSoon reports whether an open, unexpired quote expires within
// the next ExpiringSoonDays days (inclusive).
func IsQuoteExpiringSoon(q *model.Quote, now time.Time) bool {
	if q.Status == model.QuoteAccepted || q.Status == model.QuoteRejected {
		return false
	}
	if IsQuoteExpired(q, now) {
		return false
	}
	validUntil, err := time.Parse(dateLayout, q.ValidUntil)
	if err != nil {
		return false
	}
	days := int(validUntil.Sub(startOfDay(now)).Hours() / 24)
	return days >= 0 && days <= ExpiringSoonDays
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
