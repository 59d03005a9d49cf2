package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	HTTP    ServerConfig
	MySQL   MySQLConfig
	Log     LogConfig
	Stripe  StripeConfig
	Pricing PricingConfig
	Invoice InvoiceConfig
	SMTP    SMTPConfig
	Storage StorageConfig
}

type AppConfig struct {
	ServiceName string
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type StripeConfig struct {
	SecretKey                 string
	WebhookSecret             string
	APIBaseURL                string
	SignatureToleranceSeconds int64
	HTTPTimeout               time.Duration
}

// PricingConfig carries the registration fee policy. The cutoff is the
// instant at which early-bird pricing ends; checkout links are the
// Stripe-hosted payment pages, one pair per registration type.
type PricingConfig struct {
	Cutoff time.Time

	FullPriceEarly    int64
	FullPriceLate     int64
	StudentPriceEarly int64
	StudentPriceLate  int64

	PaperLinkEarly   string
	PaperLinkLate    string
	PosterLinkEarly  string
	PosterLinkLate   string
	StudentLinkEarly string
	StudentLinkLate  string
	RegularLinkEarly string
	RegularLinkLate  string
}

type InvoiceConfig struct {
	TaxRate         float64
	EmailServiceURL string
	HTTPTimeout     time.Duration
	DueDays         int

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	ABN            string
	PaymentTerms   string

	BankAccountName   string
	BankBSB           string
	BankAccountNumber string
}

type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const defaultPricingCutoff = "2025-08-15T00:00:00+10:00"

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	cutoffRaw := getEnv("PRICING_CUTOFF", defaultPricingCutoff)
	cutoff, err := time.Parse(time.RFC3339, cutoffRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICING_CUTOFF %q: %w", cutoffRaw, err)
	}

	return &Config{
		App: AppConfig{
			ServiceName: getEnv("APP_SERVICE_NAME", "conference-registration"),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getMinutesEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stripe: StripeConfig{
			SecretKey:                 getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:             getEnv("STRIPE_WEBHOOK_SECRET", ""),
			APIBaseURL:                getEnv("STRIPE_API_BASE_URL", "https://api.stripe.com"),
			SignatureToleranceSeconds: int64(getIntEnv("STRIPE_SIGNATURE_TOLERANCE_SECONDS", 300)),
			HTTPTimeout:               getSecondsEnv("STRIPE_HTTP_TIMEOUT_SECONDS", 10*time.Second),
		},
		Pricing: PricingConfig{
			Cutoff:            cutoff,
			FullPriceEarly:    getInt64Env("PRICING_FULL_EARLY", 1450),
			FullPriceLate:     getInt64Env("PRICING_FULL_LATE", 1600),
			StudentPriceEarly: getInt64Env("PRICING_STUDENT_EARLY", 800),
			StudentPriceLate:  getInt64Env("PRICING_STUDENT_LATE", 950),
			PaperLinkEarly:    getEnv("STRIPE_PAPER_PAYMENT_LINK_EARLY", ""),
			PaperLinkLate:     getEnv("STRIPE_PAPER_PAYMENT_LINK_LATE", ""),
			PosterLinkEarly:   getEnv("STRIPE_POSTER_PAYMENT_LINK_EARLY", ""),
			PosterLinkLate:    getEnv("STRIPE_POSTER_PAYMENT_LINK_LATE", ""),
			StudentLinkEarly:  getEnv("STRIPE_STUDENT_PAYMENT_LINK_EARLY", ""),
			StudentLinkLate:   getEnv("STRIPE_STUDENT_PAYMENT_LINK_LATE", ""),
			RegularLinkEarly:  getEnv("STRIPE_REGULAR_PAYMENT_LINK_EARLY", ""),
			RegularLinkLate:   getEnv("STRIPE_REGULAR_PAYMENT_LINK_LATE", ""),
		},
		Invoice: InvoiceConfig{
			TaxRate:           getFloatEnv("INVOICE_TAX_RATE", 0.10),
			EmailServiceURL:   getEnv("INVOICE_EMAIL_SERVICE_URL", ""),
			HTTPTimeout:       getSecondsEnv("INVOICE_HTTP_TIMEOUT_SECONDS", 10*time.Second),
			DueDays:           getIntEnv("INVOICE_DUE_DAYS", 14),
			CompanyName:       getEnv("INVOICE_COMPANY_NAME", ""),
			CompanyAddress:    getEnv("INVOICE_COMPANY_ADDRESS", ""),
			CompanyPhone:      getEnv("INVOICE_COMPANY_PHONE", ""),
			CompanyEmail:      getEnv("INVOICE_COMPANY_EMAIL", ""),
			ABN:               getEnv("INVOICE_ABN", ""),
			PaymentTerms:      getEnv("INVOICE_PAYMENT_TERMS", "Paid in full via Stripe checkout"),
			BankAccountName:   getEnv("INVOICE_BANK_ACCOUNT_NAME", ""),
			BankBSB:           getEnv("INVOICE_BANK_BSB", ""),
			BankAccountNumber: getEnv("INVOICE_BANK_ACCOUNT_NUMBER", ""),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getEnv("SMTP_PORT", "587"),
			Username:  getEnv("SMTP_USER", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("SMTP_FROM_EMAIL", ""),
			FromName:  getEnv("SMTP_FROM_NAME", ""),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("R2_ENDPOINT", ""),
			AccessKey: getEnv("R2_ACCESS_KEY_ID", ""),
			SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			Bucket:    getEnv("R2_BUCKET", ""),
			UseSSL:    getBoolEnv("R2_USE_SSL", true),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getMinutesEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}

func getSecondsEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
