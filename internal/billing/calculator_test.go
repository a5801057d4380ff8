package billing

import (
	"testing"

	"tradebooks/internal/model"

	"github.com/shopspring/decimal"
)

func items(pairs ...float64) []model.LineItem {
	var out []model.LineItem
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.LineItem{Description: "item", Qty: pairs[i], Price: pairs[i+1]})
	}
	return out
}

func TestCalculateGSTInclusive(t *testing.T) {
	// 2 x 55.00 at 10% inclusive: the 110.00 already contains the tax.
	totals := Calculate(items(2, 55), decimal.NewFromInt(10), true)

	if got := totals.Subtotal.StringFixed(2); got != "100.00" {
		t.Fatalf("subtotal = %s, want 100.00", got)
	}
	if got := totals.TaxAmount.StringFixed(2); got != "10.00" {
		t.Fatalf("tax = %s, want 10.00", got)
	}
	if got := totals.Total.StringFixed(2); got != "110.00" {
		t.Fatalf("total = %s, want 110.00", got)
	}
}

func TestCalculateGSTExclusive(t *testing.T) {
	totals := Calculate(items(1, 100), decimal.NewFromInt(10), false)

	if got := totals.Subtotal.StringFixed(2); got != "100.00" {
		t.Fatalf("subtotal = %s, want 100.00", got)
	}
	if got := totals.TaxAmount.StringFixed(2); got != "10.00" {
		t.Fatalf("tax = %s, want 10.00", got)
	}
	if got := totals.Total.StringFixed(2); got != "110.00" {
		t.Fatalf("total = %s, want 110.00", got)
	}
}

func TestCalculateRoundsToCents(t *testing.T) {
	// 3 x 33.335 = 100.005; half-away-from-zero rounds up.
	totals := Calculate(items(3, 33.335), decimal.NewFromInt(0), false)
	if got := totals.Total.StringFixed(2); got != "100.01" {
		t.Fatalf("total = %s, want 100.01", got)
	}
}

func TestCalculateEmptyItems(t *testing.T) {
	totals := Calculate(nil, decimal.NewFromInt(10), true)
	for name, v := range map[string]decimal.Decimal{
		"subtotal": totals.Subtotal,
		"tax":      totals.TaxAmount,
		"total":    totals.Total,
	} {
		if !v.IsZero() {
			t.Fatalf("%s = %s, want 0", name, v)
		}
	}
}

func TestCalculateZeroRate(t *testing.T) {
	totals := Calculate(items(1, 80), decimal.Zero, true)
	if got := totals.Subtotal.StringFixed(2); got != "80.00" {
		t.Fatalf("subtotal = %s, want 80.00", got)
	}
	if !totals.TaxAmount.IsZero() {
		t.Fatalf("tax = %s, want 0", totals.TaxAmount)
	}
}
