package pricing

import (
	"testing"
	"time"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/config"
)

func testConfig() config.PricingConfig {
	cutoff, _ := time.Parse(time.RFC3339, "2025-08-15T00:00:00+10:00")
	return config.PricingConfig{
		Cutoff:            cutoff,
		FullPriceEarly:    1450,
		FullPriceLate:     1600,
		StudentPriceEarly: 800,
		StudentPriceLate:  950,
		RegularLinkEarly:  "https://buy.stripe.com/regular-early",
		RegularLinkLate:   "https://buy.stripe.com/regular-late",
		StudentLinkEarly:  "https://buy.stripe.com/student-early",
		StudentLinkLate:   "https://buy.stripe.com/student-late",
	}
}

func TestQuoteBeforeCutoffUsesEarlyTier(t *testing.T) {
	s := NewSchedule(testConfig())
	at := time.Date(2025, 8, 14, 13, 59, 59, 0, time.UTC)

	price, ok := s.QuoteAt(entity.RegistrationTypeRegular, at)
	if !ok {
		t.Fatal("expected quote for regular registration")
	}
	if price != 1450 {
		t.Fatalf("expected early price 1450, got %d", price)
	}
}

func TestQuoteAtCutoffUsesLateTier(t *testing.T) {
	s := NewSchedule(testConfig())
	at := time.Date(2025, 8, 14, 14, 0, 0, 0, time.UTC)

	price, ok := s.QuoteAt(entity.RegistrationTypeRegular, at)
	if !ok {
		t.Fatal("expected quote for regular registration")
	}
	if price != 1600 {
		t.Fatalf("expected late price 1600, got %d", price)
	}
}

func TestStudentTier(t *testing.T) {
	s := NewSchedule(testConfig())
	early := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	if price, _ := s.QuoteAt(entity.RegistrationTypeStudent, early); price != 800 {
		t.Fatalf("expected early student price 800, got %d", price)
	}
	if price, _ := s.QuoteAt(entity.RegistrationTypeStudent, late); price != 950 {
		t.Fatalf("expected late student price 950, got %d", price)
	}
}

func TestQuoteUnknownType(t *testing.T) {
	s := NewSchedule(testConfig())
	if _, ok := s.QuoteAt(9, time.Now()); ok {
		t.Fatal("expected no quote for unknown registration type")
	}
}

func TestLinkSelectionTracksCutoff(t *testing.T) {
	s := NewSchedule(testConfig())
	early := time.Date(2025, 8, 14, 13, 0, 0, 0, time.UTC)
	late := time.Date(2025, 8, 14, 15, 0, 0, 0, time.UTC)

	link, ok := s.LinkAt(entity.RegistrationTypeRegular, early)
	if !ok || link != "https://buy.stripe.com/regular-early" {
		t.Fatalf("unexpected early link: %q", link)
	}
	link, ok = s.LinkAt(entity.RegistrationTypeRegular, late)
	if !ok || link != "https://buy.stripe.com/regular-late" {
		t.Fatalf("unexpected late link: %q", link)
	}
}
