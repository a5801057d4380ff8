package service

import (
	"context"
	"encoding/json"
	"testing"

	"tradebooks/internal/model"
	"tradebooks/internal/repository"

	"github.com/google/uuid"
)

type backupEnv struct {
	*testEnv
	backup   BackupService
	expenses ExpenseService
	travel   TravelLogService
	notes    JobNoteService
	contactS ContactService
	profiles BusinessProfileService
}

func newBackupEnv(t *testing.T) *backupEnv {
	t.Helper()
	env := newTestEnv(t)
	cfg := testConfig()

	txManager := repository.NewTransactionManager(env.db)
	quoteRepo := repository.NewQuoteRepository(env.db)
	invoiceRepo := repository.NewInvoiceRepository(env.db)
	expenseRepo := repository.NewExpenseRepository(env.db)
	travelRepo := repository.NewTravelLogRepository(env.db)
	noteRepo := repository.NewJobNoteRepository(env.db)
	contactRepo := repository.NewContactRepository(env.db)
	profileRepo := repository.NewBusinessProfileRepository(env.db)
	counterRepo := repository.NewCounterRepository(env.db)

	expenses := NewExpenseService(expenseRepo, nil)
	travel := NewTravelLogService(travelRepo, nil, cfg)
	notes := NewJobNoteService(noteRepo, nil)
	contactS := NewContactService(contactRepo, nil)
	profiles := NewBusinessProfileService(profileRepo, nil)

	backup := NewBackupService(
		quoteRepo, invoiceRepo, expenseRepo, travelRepo, noteRepo, contactRepo,
		profileRepo, counterRepo, txManager, nil,
		env.quotes, env.invoices, expenses, travel, notes, contactS,
	)

	return &backupEnv{
		testEnv:  env,
		backup:   backup,
		expenses: expenses,
		travel:   travel,
		notes:    notes,
		contactS: contactS,
		profiles: profiles,
	}
}

func TestBackupRoundTrip(t *testing.T) {
	env := newBackupEnv(t)
	ctx := context.Background()

	if _, err := env.quotes.Save(ctx, env.userID, quoteFixture()); err != nil {
		t.Fatalf("save quote: %v", err)
	}
	if _, err := env.invoices.Save(ctx, env.userID, invoiceFixture()); err != nil {
		t.Fatalf("save invoice: %v", err)
	}
	if _, err := env.expenses.Save(ctx, env.userID, SaveExpenseRequest{Description: "Fuel", Amount: 80}); err != nil {
		t.Fatalf("save expense: %v", err)
	}
	if _, err := env.travel.Save(ctx, env.userID, SaveTravelLogRequest{From: "Depot", To: "Site", Distance: 42}); err != nil {
		t.Fatalf("save travel: %v", err)
	}
	if _, err := env.profiles.Set(ctx, env.userID, BusinessProfileRequest{BusinessName: "Sparks Electrical"}); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	payload, err := env.backup.Export(ctx, env.userID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if payload.Version != BackupVersion {
		t.Fatalf("version = %s, want %s", payload.Version, BackupVersion)
	}
	if payload.Counters.QuoteCounter != 1 || payload.Counters.InvoiceCounter != 1 {
		t.Fatalf("counters = %+v", payload.Counters)
	}

	// Re-import into a fresh account through the wire format.
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var req ImportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	otherUser := uuid.New()
	result, err := env.backup.Import(ctx, otherUser, req)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Quotes != 1 || result.Invoices != 1 || result.Expenses != 1 || result.TravelLogs != 1 {
		t.Fatalf("import result = %+v", result)
	}

	workspace, err := env.backup.Workspace(ctx, otherUser)
	if err != nil {
		t.Fatalf("workspace: %v", err)
	}
	if len(workspace.Quotes) != 1 || len(workspace.Invoices) != 1 {
		t.Fatalf("workspace lists = %d quotes, %d invoices", len(workspace.Quotes), len(workspace.Invoices))
	}
	if workspace.BusinessProfile.BusinessName != "Sparks Electrical" {
		t.Fatalf("profile not imported: %q", workspace.BusinessProfile.BusinessName)
	}

	// Counters overwritten verbatim: the next number continues the sequence.
	counter, err := env.counters.Get(ctx, otherUser)
	if err != nil {
		t.Fatalf("get counters: %v", err)
	}
	if counter.QuoteCounter != 1 || counter.InvoiceCounter != 1 {
		t.Fatalf("imported counters = %+v", counter)
	}
	next, err := env.quotes.Save(ctx, otherUser, quoteFixture())
	if err != nil {
		t.Fatalf("save after import: %v", err)
	}
	if next.QuoteNumber != 2 {
		t.Fatalf("number after import = %d, want 2", next.QuoteNumber)
	}

	// The exporting account keeps its own records.
	original, err := env.quotes.List(ctx, env.userID)
	if err != nil {
		t.Fatalf("list source quotes: %v", err)
	}
	if len(original) != 1 {
		t.Fatalf("source quote count after import = %d, want 1", len(original))
	}
}

func TestImportCopiesRecordsWithoutMovingThem(t *testing.T) {
	env := newBackupEnv(t)
	ctx := context.Background()

	saved, err := env.quotes.Save(ctx, env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save quote: %v", err)
	}

	payload, err := env.backup.Export(ctx, env.userID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var req ImportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Importing into another account must insert a copy there, not re-parent
	// the source rows.
	otherUser := uuid.New()
	if _, err := env.backup.Import(ctx, otherUser, req); err != nil {
		t.Fatalf("import: %v", err)
	}

	source, err := env.quotes.List(ctx, env.userID)
	if err != nil {
		t.Fatalf("list source quotes: %v", err)
	}
	if len(source) != 1 || source[0].ID != saved.ID {
		t.Fatalf("source account lost its quote: %+v", source)
	}
	imported, err := env.quotes.List(ctx, otherUser)
	if err != nil {
		t.Fatalf("list imported quotes: %v", err)
	}
	if len(imported) != 1 {
		t.Fatalf("imported quote count = %d, want 1", len(imported))
	}
}

func TestImportCoercesStringCounters(t *testing.T) {
	env := newBackupEnv(t)
	ctx := context.Background()

	raw := []byte(`{
		"version": "1.0",
		"data": {},
		"counters": {"quoteCounter": "5", "invoiceCounter": 3}
	}`)
	var req ImportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Counters == nil || req.Counters.QuoteCounter != 5 || req.Counters.InvoiceCounter != 3 {
		t.Fatalf("counters = %+v", req.Counters)
	}

	if _, err := env.backup.Import(ctx, env.userID, req); err != nil {
		t.Fatalf("import: %v", err)
	}
	next, err := env.quotes.Save(ctx, env.userID, quoteFixture())
	if err != nil {
		t.Fatalf("save after import: %v", err)
	}
	if next.QuoteNumber != 6 {
		t.Fatalf("number after import = %d, want 6", next.QuoteNumber)
	}
}

func TestImportCanonicalizesLegacyTravelFields(t *testing.T) {
	env := newBackupEnv(t)
	ctx := context.Background()

	raw := []byte(`{
		"version": "1.0",
		"data": {
			"travelLogs": [
				{"date": "2025-11-02", "origin": "Depot", "destination": "Jobsite", "kms": "17.5"},
				{"date": "2025-11-03", "from": "A", "to": "B", "km": 8}
			]
		}
	}`)
	var req ImportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, err := env.backup.Import(ctx, env.userID, req); err != nil {
		t.Fatalf("import: %v", err)
	}

	logs, err := env.travel.List(ctx, env.userID)
	if err != nil {
		t.Fatalf("list travel: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("travel log count = %d, want 2", len(logs))
	}

	byDate := map[string]TravelLogResponse{}
	for _, l := range logs {
		byDate[l.Date] = l
	}
	legacy := byDate["2025-11-02"]
	if legacy.From != "Depot" || legacy.To != "Jobsite" || legacy.Distance != "17.50" {
		t.Fatalf("legacy aliases not canonicalized: %+v", legacy)
	}
	modern := byDate["2025-11-03"]
	if modern.Distance != "8.00" {
		t.Fatalf("km alias not canonicalized: %+v", modern)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	env := newBackupEnv(t)
	ctx := context.Background()

	// Importing the same payload twice upserts by id, never duplicates.
	quote := model.Quote{
		ID:           uuid.New(),
		QuoteNumber:  3,
		QuoteDate:    "2026-01-05",
		ValidUntil:   "2026-02-04",
		CustomerName: "Repeat Customer",
		LineItems:    model.LineItems{{Description: "x", Qty: 1, Price: 10, ItemTotal: 10}},
		Status:       model.QuoteDraft,
	}
	var req ImportRequest
	req.Data.Quotes = []model.Quote{quote}

	for i := 0; i < 2; i++ {
		if _, err := env.backup.Import(ctx, env.userID, req); err != nil {
			t.Fatalf("import %d: %v", i, err)
		}
	}

	quotes, err := env.quotes.List(ctx, env.userID)
	if err != nil {
		t.Fatalf("list quotes: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("quote count after re-import = %d, want 1", len(quotes))
	}
}

func TestExportCSVUnknownEntity(t *testing.T) {
	env := newBackupEnv(t)

	if _, _, err := env.backup.ExportCSV(context.Background(), env.userID, "ledger"); err == nil {
		t.Fatal("expected error for unknown entity")
	}
}
