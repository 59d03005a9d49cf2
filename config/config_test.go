package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	unsetEnv(t, "MYSQL_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MYSQL_DSN")
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/registration?parseTime=true")
	setEnv(t, "APP_SERVICE_NAME", "registration-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "MYSQL_MAX_OPEN_CONNS", "20")
	setEnv(t, "MYSQL_MAX_IDLE_CONNS", "8")
	setEnv(t, "MYSQL_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "PRICING_FULL_EARLY", "1500")
	setEnv(t, "PRICING_STUDENT_LATE", "999")
	setEnv(t, "INVOICE_TAX_RATE", "0.15")
	setEnv(t, "R2_USE_SSL", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "registration-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Port != "8181" {
		t.Fatalf("unexpected http port: %s", cfg.HTTP.Port)
	}
	if cfg.MySQL.MaxOpenConns != 20 || cfg.MySQL.MaxIdleConns != 8 {
		t.Fatalf("unexpected mysql pool config: %+v", cfg.MySQL)
	}
	if cfg.MySQL.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected mysql lifetime: %v", cfg.MySQL.ConnMaxLifetime)
	}
	if cfg.Pricing.FullPriceEarly != 1500 {
		t.Fatalf("unexpected early full price: %d", cfg.Pricing.FullPriceEarly)
	}
	if cfg.Pricing.StudentPriceLate != 999 {
		t.Fatalf("unexpected late student price: %d", cfg.Pricing.StudentPriceLate)
	}
	if cfg.Invoice.TaxRate != 0.15 {
		t.Fatalf("unexpected tax rate: %v", cfg.Invoice.TaxRate)
	}
	if cfg.Storage.UseSSL {
		t.Fatal("expected storage ssl disabled")
	}
}

func TestLoadParsesPricingCutoff(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/registration?parseTime=true")
	setEnv(t, "PRICING_CUTOFF", "2026-09-01T00:00:00+10:00")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)
	if !cfg.Pricing.Cutoff.Equal(want) {
		t.Fatalf("unexpected cutoff instant: %v", cfg.Pricing.Cutoff)
	}
}

func TestLoadRejectsBadPricingCutoff(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/registration?parseTime=true")
	setEnv(t, "PRICING_CUTOFF", "15 August 2025")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed cutoff")
	}
}
