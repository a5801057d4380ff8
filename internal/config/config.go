package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config carries everything read from the environment, with the business
// defaults the client historically shipped with (Australian GST, ATO per-km
// rate, 30-day quote validity, 14-day payment terms).
type Config struct {
	Port string
	DSN  string

	// AllowedEmails is the entire authorization model: identities outside the
	// list are rejected even with valid credentials.
	AllowedEmails []string

	DefaultTaxRate      decimal.Decimal // percentage
	QuoteValidityDays   int
	InvoicePaymentTerms int
	TravelCentsPerKm    int64
}

// Load reads the environment into a Config, applying defaults.
func Load() Config {
	dsn := "postgres://" + env("DB_USER", "postgres") + ":" + env("DB_PASSWORD", "postgres") +
		"@" + env("DB_HOST", "localhost") + ":" + env("DB_PORT", "5432") +
		"/" + env("DB_NAME", "postgres") + "?sslmode=" + env("DB_SSLMODE", "disable")

	return Config{
		Port:                env("PORT", "8080"),
		DSN:                 dsn,
		AllowedEmails:       splitEmails(env("ALLOWED_EMAILS", "")),
		DefaultTaxRate:      decimal.NewFromInt(envInt("DEFAULT_TAX_RATE", 10)),
		QuoteValidityDays:   int(envInt("QUOTE_VALIDITY_DAYS", 30)),
		InvoicePaymentTerms: int(envInt("INVOICE_PAYMENT_TERMS", 14)),
		TravelCentsPerKm:    envInt("TRAVEL_CENTS_PER_KM", 85),
	}
}

// EmailAllowed checks the allow-list, case-insensitively. An empty list allows
// nobody; this service is useless without at least one permitted account.
func (c Config) EmailAllowed(email string) bool {
	for _, allowed := range c.AllowedEmails {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}

func splitEmails(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, strings.ToLower(trimmed))
		}
	}
	return out
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
