// Package export renders account data as downloadable CSV. The quoting rules
// intentionally match the files the legacy client produced: a field is wrapped
// in double quotes only when it contains a comma, and embedded quotes are
// doubled. encoding/csv would quote more aggressively and change the output
// byte-for-byte, breaking spreadsheet templates users built against the old
// files.
package export

import (
	"strconv"
	"strings"

	"tradebooks/internal/model"
)

func csvField(value string) string {
	if !strings.Contains(value, ",") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func csvLine(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = csvField(f)
	}
	return strings.Join(escaped, ",") + "\n"
}

func InvoicesCSV(invoices []model.Invoice) string {
	var b strings.Builder
	b.WriteString("invoiceNumber,invoiceDate,dueDate,customerName,jobDescription,status,totalAmount\n")
	for i := range invoices {
		inv := &invoices[i]
		b.WriteString(csvLine(
			intString(inv.InvoiceNumber),
			inv.InvoiceDate,
			inv.DueDate,
			inv.CustomerName,
			inv.JobDescription,
			inv.Status,
			inv.TotalAmount.StringFixed(2),
		))
	}
	return b.String()
}

func QuotesCSV(quotes []model.Quote) string {
	var b strings.Builder
	b.WriteString("quoteNumber,quoteDate,validUntil,customerName,jobDescription,status,totalAmount\n")
	for i := range quotes {
		q := &quotes[i]
		b.WriteString(csvLine(
			intString(q.QuoteNumber),
			q.QuoteDate,
			q.ValidUntil,
			q.CustomerName,
			q.JobDescription,
			q.Status,
			q.TotalAmount.StringFixed(2),
		))
	}
	return b.String()
}

func ExpensesCSV(expenses []model.Expense) string {
	var b strings.Builder
	b.WriteString("date,description,category,amount\n")
	for i := range expenses {
		e := &expenses[i]
		b.WriteString(csvLine(e.Date, e.Description, e.Category, e.Amount.StringFixed(2)))
	}
	return b.String()
}

func TravelLogsCSV(logs []model.TravelLog) string {
	var b strings.Builder
	b.WriteString("date,from,to,distance,purpose\n")
	for i := range logs {
		l := &logs[i]
		b.WriteString(csvLine(l.Date, l.From, l.To, l.Distance.StringFixed(2), l.Purpose))
	}
	return b.String()
}

func JobNotesCSV(notes []model.JobNote) string {
	var b strings.Builder
	b.WriteString("date,title,customer,content\n")
	for i := range notes {
		n := &notes[i]
		b.WriteString(csvLine(n.Date, n.Title, n.Customer, n.Content))
	}
	return b.String()
}

func ContactsCSV(contacts []model.Contact) string {
	var b strings.Builder
	b.WriteString("name,company,email,phone,address,notes\n")
	for i := range contacts {
		c := &contacts[i]
		b.WriteString(csvLine(c.Name, c.Company, c.Email, c.Phone, c.Address, c.Notes))
	}
	return b.String()
}

func intString(n int64) string {
	return strconv.FormatInt(n, 10)
}
