// Package pdf renders invoices and quotes as printable A4 documents using the
// account's business profile for the header and payment details.
package pdf

import (
	"bytes"
	"fmt"

	"tradebooks/internal/model"

	"github.com/jung-kurt/gofpdf"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Invoice(inv *model.Invoice, profile *model.BusinessProfile) ([]byte, error) {
	pdf := newDocument(fmt.Sprintf("Invoice #%d", inv.InvoiceNumber))

	writeHeader(pdf, "TAX INVOICE", profile)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice #%d", inv.InvoiceNumber))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s    Due: %s", inv.InvoiceDate, inv.DueDate))
	pdf.Ln(8)

	writeCustomer(pdf, inv.CustomerName, inv.CustomerEmail, inv.CustomerAddress)
	writeJobDescription(pdf, inv.JobDescription)
	writeLineItems(pdf, inv.LineItems)
	writeTotals(pdf, inv.Subtotal.StringFixed(2), inv.TaxAmount.StringFixed(2), inv.TotalAmount.StringFixed(2), inv.GSTInclusive)
	writeBankDetails(pdf, profile)

	if inv.Status == model.InvoicePaid {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		label := "PAID"
		if inv.PaidDate != "" {
			label = fmt.Sprintf("PAID %s", inv.PaidDate)
		}
		pdf.Cell(0, 7, label)
	}

	return output(pdf)
}

func (g *Generator) Quote(q *model.Quote, profile *model.BusinessProfile) ([]byte, error) {
	pdf := newDocument(fmt.Sprintf("Quote #%d", q.QuoteNumber))

	writeHeader(pdf, "QUOTE", profile)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Quote #%d", q.QuoteNumber))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s    Valid until: %s", q.QuoteDate, q.ValidUntil))
	pdf.Ln(8)

	writeCustomer(pdf, q.CustomerName, q.CustomerEmail, q.CustomerAddress)
	writeJobDescription(pdf, q.JobDescription)
	writeLineItems(pdf, q.LineItems)
	writeTotals(pdf, q.Subtotal.StringFixed(2), q.TaxAmount.StringFixed(2), q.TotalAmount.StringFixed(2), q.GSTInclusive)

	return output(pdf)
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	return pdf
}

func writeHeader(pdf *gofpdf.Fpdf, docType string, profile *model.BusinessProfile) {
	pdf.SetFont("Helvetica", "B", 18)
	name := profile.BusinessName
	if name == "" {
		name = docType
	}
	pdf.Cell(0, 10, name)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{profile.Address, profile.Phone, profile.Email} {
		if line != "" {
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
	}
	if profile.ABN != "" {
		pdf.Cell(0, 5, "ABN: "+profile.ABN)
		pdf.Ln(5)
	}

	if profile.BusinessName != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 8, docType)
		pdf.Ln(9)
	}
}

func writeCustomer(pdf *gofpdf.Fpdf, name, email, address string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Bill To:")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, name)
	pdf.Ln(5)
	for _, line := range []string{address, email} {
		if line != "" {
			pdf.Cell(0, 5, line)
			pdf.Ln(5)
		}
	}
	pdf.Ln(3)
}

func writeJobDescription(pdf *gofpdf.Fpdf, description string) {
	if description == "" {
		return
	}
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, description, "", "L", false)
	pdf.Ln(3)
}

func writeLineItems(pdf *gofpdf.Fpdf, items model.LineItems) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(100, 7, "Description")
	pdf.Cell(25, 7, "Qty")
	pdf.Cell(30, 7, "Price")
	pdf.Cell(30, 7, "Total")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.Cell(100, 6, trim(item.Description, 55))
		pdf.Cell(25, 6, fmt.Sprintf("%g", item.Qty))
		pdf.Cell(30, 6, fmt.Sprintf("$%.2f", item.Price))
		pdf.Cell(30, 6, fmt.Sprintf("$%.2f", item.ItemTotal))
		pdf.Ln(6)
	}
	pdf.Ln(3)
}

func writeTotals(pdf *gofpdf.Fpdf, subtotal, tax, total string, gstInclusive bool) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(125, 6, "")
	pdf.Cell(30, 6, "Subtotal:")
	pdf.Cell(30, 6, "$"+subtotal)
	pdf.Ln(6)

	gstLabel := "GST:"
	if gstInclusive {
		gstLabel = "GST (incl):"
	}
	pdf.Cell(125, 6, "")
	pdf.Cell(30, 6, gstLabel)
	pdf.Cell(30, 6, "$"+tax)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(125, 7, "")
	pdf.Cell(30, 7, "Total:")
	pdf.Cell(30, 7, "$"+total)
	pdf.Ln(10)
}

func writeBankDetails(pdf *gofpdf.Fpdf, profile *model.BusinessProfile) {
	if profile.BankAccount == "" && profile.BankBSB == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Payment Details")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	if profile.BankName != "" {
		pdf.Cell(0, 5, "Bank: "+profile.BankName)
		pdf.Ln(5)
	}
	if profile.BankAccountName != "" {
		pdf.Cell(0, 5, "Account Name: "+profile.BankAccountName)
		pdf.Ln(5)
	}
	if profile.BankBSB != "" {
		pdf.Cell(0, 5, "BSB: "+profile.BankBSB)
		pdf.Ln(5)
	}
	if profile.BankAccount != "" {
		pdf.Cell(0, 5, "Account: "+profile.BankAccount)
		pdf.Ln(5)
	}
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
