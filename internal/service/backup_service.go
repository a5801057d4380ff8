package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tradebooks/internal/apperr"
	"tradebooks/internal/events"
	"tradebooks/internal/export"
	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BackupVersion identifies the export format. Version 1.x exports (which used
// kms/origin/destination travel fields) are still accepted on import.
const BackupVersion = "2.0"

// --- DTOs ---

type BackupData struct {
	Quotes          []model.Quote          `json:"quotes"`
	Invoices        []model.Invoice        `json:"invoices"`
	Expenses        []model.Expense        `json:"expenses"`
	TravelLogs      []model.TravelLog      `json:"travelLogs"`
	JobNotes        []model.JobNote        `json:"jobNotes"`
	Contacts        []model.Contact        `json:"contacts"`
	BusinessProfile *model.BusinessProfile `json:"businessProfile,omitempty"`
}

type BackupCounters struct {
	QuoteCounter   int64 `json:"quoteCounter"`
	InvoiceCounter int64 `json:"invoiceCounter"`
}

// Old exports sometimes carry counters as numeric strings; coerce them the
// same way line item qty/price are coerced.
func (c *BackupCounters) UnmarshalJSON(data []byte) error {
	var aux struct {
		QuoteCounter   json.RawMessage `json:"quoteCounter"`
		InvoiceCounter json.RawMessage `json:"invoiceCounter"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.QuoteCounter = lenientInt(aux.QuoteCounter)
	c.InvoiceCounter = lenientInt(aux.InvoiceCounter)
	return nil
}

type ExportPayload struct {
	Version    string         `json:"version"`
	ExportDate string         `json:"exportDate"`
	Data       BackupData     `json:"data"`
	Counters   BackupCounters `json:"counters"`
}

// importTravelLog accepts both the current field names and the aliases older
// exports used (kms/km for distance, origin/destination for the locations).
// Canonicalization happens here, once, at the boundary.
type importTravelLog struct {
	ID       uuid.UUID
	Date     string
	From     string
	To       string
	Distance float64
	Purpose  string
}

func (t *importTravelLog) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID          uuid.UUID        `json:"id"`
		Date        string           `json:"date"`
		From        string           `json:"from"`
		Origin      string           `json:"origin"`
		To          string           `json:"to"`
		Destination string           `json:"destination"`
		Distance    *json.RawMessage `json:"distance"`
		Kms         *json.RawMessage `json:"kms"`
		Km          *json.RawMessage `json:"km"`
		Purpose     string           `json:"purpose"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.ID = aux.ID
	t.Date = aux.Date
	t.From = firstNonEmpty(aux.From, aux.Origin)
	t.To = firstNonEmpty(aux.To, aux.Destination)
	t.Purpose = aux.Purpose
	for _, raw := range []*json.RawMessage{aux.Distance, aux.Kms, aux.Km} {
		if raw == nil {
			continue
		}
		t.Distance = lenientFloat(*raw)
		break
	}
	return nil
}

type ImportRequest struct {
	Version string `json:"version"`
	Data    struct {
		Quotes          []model.Quote          `json:"quotes"`
		Invoices        []model.Invoice        `json:"invoices"`
		Expenses        []model.Expense        `json:"expenses"`
		TravelLogs      []importTravelLog      `json:"travelLogs"`
		JobNotes        []model.JobNote        `json:"jobNotes"`
		Contacts        []model.Contact        `json:"contacts"`
		BusinessProfile *model.BusinessProfile `json:"businessProfile"`
	} `json:"data"`
	Counters *BackupCounters `json:"counters"`
}

type ImportResult struct {
	Quotes     int `json:"quotes"`
	Invoices   int `json:"invoices"`
	Expenses   int `json:"expenses"`
	TravelLogs int `json:"travelLogs"`
	JobNotes   int `json:"jobNotes"`
	Contacts   int `json:"contacts"`
}

// WorkspaceResponse is the full dataset the client loads on startup; after that
// it refetches individual lists when a refresh event arrives.
type WorkspaceResponse struct {
	Quotes          []QuoteResponse        `json:"quotes"`
	Invoices        []InvoiceResponse      `json:"invoices"`
	Expenses        []ExpenseResponse      `json:"expenses"`
	TravelLogs      []TravelLogResponse    `json:"travelLogs"`
	JobNotes        []JobNoteResponse      `json:"jobNotes"`
	Contacts        []ContactResponse      `json:"contacts"`
	BusinessProfile *model.BusinessProfile `json:"businessProfile"`
}

// --- Interface ---

type BackupService interface {
	Export(ctx context.Context, userID uuid.UUID) (*ExportPayload, error)
	ExportCSV(ctx context.Context, userID uuid.UUID, entity string) (filename, content string, err error)
	Import(ctx context.Context, userID uuid.UUID, req ImportRequest) (*ImportResult, error)
	Workspace(ctx context.Context, userID uuid.UUID) (*WorkspaceResponse, error)
}

type backupService struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	expenseRepo repository.ExpenseRepository
	travelRepo  repository.TravelLogRepository
	noteRepo    repository.JobNoteRepository
	contactRepo repository.ContactRepository
	profileRepo repository.BusinessProfileRepository
	counterRepo repository.CounterRepository
	txManager   repository.TransactionManager
	hub         *events.Hub

	quotes   QuoteService
	invoices InvoiceService
	expenses ExpenseService
	travel   TravelLogService
	notes    JobNoteService
	contacts ContactService
}

func NewBackupService(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	expenseRepo repository.ExpenseRepository,
	travelRepo repository.TravelLogRepository,
	noteRepo repository.JobNoteRepository,
	contactRepo repository.ContactRepository,
	profileRepo repository.BusinessProfileRepository,
	counterRepo repository.CounterRepository,
	txManager repository.TransactionManager,
	hub *events.Hub,
	quotes QuoteService,
	invoices InvoiceService,
	expenses ExpenseService,
	travel TravelLogService,
	notes JobNoteService,
	contacts ContactService,
) BackupService {
	return &backupService{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
		travelRepo:  travelRepo,
		noteRepo:    noteRepo,
		contactRepo: contactRepo,
		profileRepo: profileRepo,
		counterRepo: counterRepo,
		txManager:   txManager,
		hub:         hub,
		quotes:      quotes,
		invoices:    invoices,
		expenses:    expenses,
		travel:      travel,
		notes:       notes,
		contacts:    contacts,
	}
}

// --- Implementation ---

func (s *backupService) Export(ctx context.Context, userID uuid.UUID) (*ExportPayload, error) {
	quotes, err := s.quoteRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export quotes: %w", err)
	}
	invoices, err := s.invoiceRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export invoices: %w", err)
	}
	expenses, err := s.expenseRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export expenses: %w", err)
	}
	travelLogs, err := s.travelRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export travel logs: %w", err)
	}
	notes, err := s.noteRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export job notes: %w", err)
	}
	contacts, err := s.contactRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export contacts: %w", err)
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export business profile: %w", err)
	}
	counter, err := s.counterRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export counters: %w", err)
	}

	return &ExportPayload{
		Version:    BackupVersion,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Data: BackupData{
			Quotes:          quotes,
			Invoices:        invoices,
			Expenses:        expenses,
			TravelLogs:      travelLogs,
			JobNotes:        notes,
			Contacts:        contacts,
			BusinessProfile: profile,
		},
		Counters: BackupCounters{
			QuoteCounter:   counter.QuoteCounter,
			InvoiceCounter: counter.InvoiceCounter,
		},
	}, nil
}

// ExportCSV renders one entity list in the legacy spreadsheet format.
func (s *backupService) ExportCSV(ctx context.Context, userID uuid.UUID, entity string) (string, string, error) {
	today := time.Now().Format("2006-01-02")
	switch entity {
	case "invoices":
		invoices, err := s.invoiceRepo.List(ctx, userID)
		if err != nil {
			return "", "", fmt.Errorf("failed to export invoices: %w", err)
		}
		return "invoices-" + today + ".csv", export.InvoicesCSV(invoices), nil
	case "quotes":
		quotes, err := s.quoteRepo.List(ctx, userID)
		if err != nil {
			return "", "", fmt.Errorf("failed to export quotes: %w", err)
		}
		return "quotes-" + today + ".csv", export.QuotesCSV(quotes), nil
	case "expenses":
		expenses, err := s.expenseRepo.List(ctx, userID)
		if err != nil {
			return "", "", fmt.Errorf("failed to export expenses: %w", err)
		}
		return "expenses-" + today + ".csv", export.ExpensesCSV(expenses), nil
	case "travel-logs":
		logs, err := s.travelRepo.List(ctx, userID)
		if err != nil {
			return "", "", fmt.Errorf("failed to export travel logs: %w", err)
		}
		return "travel-logs-" + today + ".csv", export.TravelLogsCSV(logs), nil
	case "job-notes":
		notes, err := s.noteRepo.List(ctx, userID)
		if err != nil {
			return "", "", fmt.Errorf("failed to export job notes: %w", err)
		}
		return "job-notes-" + today + ".csv", export.JobNotesCSV(notes), nil
	case "contacts":
		contacts, err := s.contactRepo.List(ctx, userID)
		if err != nil {
			return "", "", fmt.Errorf("failed to export contacts: %w", err)
		}
		return "contacts-" + today + ".csv", export.ContactsCSV(contacts), nil
	default:
		return "", "", apperr.Validation("unknown export entity " + entity)
	}
}

// Import merges a backup into the account inside one transaction: every record
// is upserted under the importing user's id, and the counters are overwritten
// verbatim with whatever the backup carries. A failure anywhere rolls the whole
// import back.
func (s *backupService) Import(ctx context.Context, userID uuid.UUID, req ImportRequest) (*ImportResult, error) {
	result := &ImportResult{}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for i := range req.Data.Quotes {
			q := req.Data.Quotes[i]
			q.UserID = userID
			if q.ID == uuid.Nil {
				q.ID = uuid.New()
			}
			if err := s.quoteRepo.Upsert(txCtx, &q); err != nil {
				return fmt.Errorf("failed to import quote: %w", err)
			}
			result.Quotes++
		}
		for i := range req.Data.Invoices {
			inv := req.Data.Invoices[i]
			inv.UserID = userID
			if inv.ID == uuid.Nil {
				inv.ID = uuid.New()
			}
			if err := s.invoiceRepo.Upsert(txCtx, &inv); err != nil {
				return fmt.Errorf("failed to import invoice: %w", err)
			}
			result.Invoices++
		}
		for i := range req.Data.Expenses {
			e := req.Data.Expenses[i]
			e.UserID = userID
			if e.ID == uuid.Nil {
				e.ID = uuid.New()
			}
			if err := s.expenseRepo.Upsert(txCtx, &e); err != nil {
				return fmt.Errorf("failed to import expense: %w", err)
			}
			result.Expenses++
		}
		for i := range req.Data.TravelLogs {
			src := req.Data.TravelLogs[i]
			log := model.TravelLog{
				ID:       src.ID,
				UserID:   userID,
				Date:     src.Date,
				From:     src.From,
				To:       src.To,
				Distance: decimal.NewFromFloat(src.Distance).Round(2),
				Purpose:  src.Purpose,
			}
			if log.ID == uuid.Nil {
				log.ID = uuid.New()
			}
			if err := s.travelRepo.Upsert(txCtx, &log); err != nil {
				return fmt.Errorf("failed to import travel log: %w", err)
			}
			result.TravelLogs++
		}
		for i := range req.Data.JobNotes {
			n := req.Data.JobNotes[i]
			n.UserID = userID
			if n.ID == uuid.Nil {
				n.ID = uuid.New()
			}
			if err := s.noteRepo.Upsert(txCtx, &n); err != nil {
				return fmt.Errorf("failed to import job note: %w", err)
			}
			result.JobNotes++
		}
		for i := range req.Data.Contacts {
			c := req.Data.Contacts[i]
			c.UserID = userID
			if c.ID == uuid.Nil {
				c.ID = uuid.New()
			}
			if err := s.contactRepo.Upsert(txCtx, &c); err != nil {
				return fmt.Errorf("failed to import contact: %w", err)
			}
			result.Contacts++
		}
		if req.Data.BusinessProfile != nil {
			profile := *req.Data.BusinessProfile
			profile.UserID = userID
			if err := s.profileRepo.Set(txCtx, &profile); err != nil {
				return fmt.Errorf("failed to import business profile: %w", err)
			}
		}
		if req.Counters != nil {
			counter := &model.Counter{
				UserID:         userID,
				QuoteCounter:   req.Counters.QuoteCounter,
				InvoiceCounter: req.Counters.InvoiceCounter,
			}
			if err := s.counterRepo.Set(txCtx, counter); err != nil {
				return fmt.Errorf("failed to import counters: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.PublishRefresh(events.EntityWorkspace)
	}
	return result, nil
}

func (s *backupService) Workspace(ctx context.Context, userID uuid.UUID) (*WorkspaceResponse, error) {
	quotes, err := s.quotes.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	travelLogs, err := s.travel.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	notes, err := s.notes.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contacts.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business profile: %w", err)
	}

	return &WorkspaceResponse{
		Quotes:          quotes,
		Invoices:        invoices,
		Expenses:        expenses,
		TravelLogs:      travelLogs,
		JobNotes:        notes,
		Contacts:        contacts,
		BusinessProfile: profile,
	}, nil
}

// --- Helpers ---

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// lenientFloat mirrors the line item coercion rules: numbers pass through,
// numeric strings parse, anything else is zero.
func lenientFloat(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		var parsed float64
		if _, err := fmt.Sscanf(str, "%g", &parsed); err == nil {
			return parsed
		}
	}
	return 0
}

func lenientInt(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	return int64(lenientFloat(raw))
}
