package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradebooks/internal/config"
	"tradebooks/internal/database"
	"tradebooks/internal/middleware"
	"tradebooks/internal/pdf"
	"tradebooks/internal/repository"
	"tradebooks/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Config{
		AllowedEmails:       []string{"owner@example.com"},
		DefaultTaxRate:      decimal.NewFromInt(10),
		QuoteValidityDays:   30,
		InvoicePaymentTerms: 14,
		TravelCentsPerKm:    85,
	}

	txManager := repository.NewTransactionManager(db)
	quoteRepo := repository.NewQuoteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	contactRepo := repository.NewContactRepository(db)
	profileRepo := repository.NewBusinessProfileRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	seq := service.NewSequenceService(counterRepo)

	quoteService := service.NewQuoteService(quoteRepo, invoiceRepo, contactRepo, seq, txManager, nil, cfg)
	pdfService := service.NewDocumentPDFService(quoteRepo, invoiceRepo, profileRepo, pdf.New())

	router := gin.New()
	protected := router.Group("", middleware.RequireAuth(cfg.EmailAllowed))
	NewQuoteHandler(quoteService, pdfService).RegisterRoutes(protected)

	return router, uuid.New()
}

func bearerToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.GetJWTSecret())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestQuotesRequireAuth(t *testing.T) {
	router, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestQuotesRejectDelistedEmail(t *testing.T) {
	router, userID := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, userID, "stranger@example.com"))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestSaveAndListQuotes(t *testing.T) {
	router, userID := setupRouter(t)
	token := bearerToken(t, userID, "owner@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"customerName": "Acme Pty Ltd",
		"lineItems": []map[string]interface{}{
			{"description": "Labour", "qty": 2, "price": 55},
		},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", w.Code, w.Body.String())
	}

	var saved struct {
		Data service.QuoteResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	if saved.Data.QuoteNumber != 1 || saved.Data.TotalAmount != "110.00" {
		t.Fatalf("saved quote = %+v", saved.Data)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed struct {
		Data []service.QuoteResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Data) != 1 {
		t.Fatalf("quote count = %d, want 1", len(listed.Data))
	}
}

func TestSaveQuoteBadPayload(t *testing.T) {
	router, userID := setupRouter(t)
	token := bearerToken(t, userID, "owner@example.com")

	body := []byte(`{"customerName": "Acme"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
