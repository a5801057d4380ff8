package billing

import (
	"tradebooks/internal/model"

	"github.com/shopspring/decimal"
)

// Totals is the computed money breakdown of a document.
// Invariant: Subtotal + TaxAmount == Total at cent precision.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Calculate computes subtotal/tax/total from line items and a percentage tax
// rate (10 means 10%). With gstInclusive, line prices already contain the tax
// and the subtotal is derived by dividing it back out; otherwise tax is added
// on top. All three results are rounded to the cent, half away from zero.
// Pure and total: missing or garbage qty/price have already been coerced to 0
// during decoding, so there is no failure mode.
func Calculate(items []model.LineItem, taxRate decimal.Decimal, gstInclusive bool) Totals {
	sum := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromFloat(item.Qty)
		price := decimal.NewFromFloat(item.Price)
		sum = sum.Add(qty.Mul(price))
	}

	var subtotal, taxAmount, total decimal.Decimal
	if gstInclusive {
		multiplier := decimal.NewFromInt(1).Add(taxRate.Div(oneHundred))
		subtotal = sum.Div(multiplier)
		taxAmount = sum.Sub(subtotal)
		total = sum
	} else {
		subtotal = sum
		taxAmount = subtotal.Mul(taxRate.Div(oneHundred))
		total = subtotal.Add(taxAmount)
	}

	return Totals{
		Subtotal:  subtotal.Round(2),
		TaxAmount: taxAmount.Round(2),
		Total:     total.Round(2),
	}
}
