// Package pricing selects registration fees and checkout links from the
// early/late tier policy. The tier is decided by comparing the clock at
// call time, viewed as AEST (UTC+10) civil time, against the configured
// cutoff; nothing here is cached between requests.
package pricing

import (
	"time"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/config"
)

// AEST is the fixed conference timezone. The venue does not observe
// daylight saving for the cutoff.
var AEST = time.FixedZone("AEST", 10*60*60)

type Tier struct {
	Early int64
	Late  int64
}

type Links struct {
	Early string
	Late  string
}

type Schedule struct {
	cutoff time.Time
	prices map[int32]Tier
	links  map[int32]Links
}

func NewSchedule(cfg config.PricingConfig) *Schedule {
	full := Tier{Early: cfg.FullPriceEarly, Late: cfg.FullPriceLate}
	student := Tier{Early: cfg.StudentPriceEarly, Late: cfg.StudentPriceLate}

	return &Schedule{
		cutoff: cfg.Cutoff,
		prices: map[int32]Tier{
			entity.RegistrationTypePaperAuthor:  full,
			entity.RegistrationTypePosterAuthor: full,
			entity.RegistrationTypeStudent:      student,
			entity.RegistrationTypeRegular:      full,
		},
		links: map[int32]Links{
			entity.RegistrationTypePaperAuthor:  {Early: cfg.PaperLinkEarly, Late: cfg.PaperLinkLate},
			entity.RegistrationTypePosterAuthor: {Early: cfg.PosterLinkEarly, Late: cfg.PosterLinkLate},
			entity.RegistrationTypeStudent:      {Early: cfg.StudentLinkEarly, Late: cfg.StudentLinkLate},
			entity.RegistrationTypeRegular:      {Early: cfg.RegularLinkEarly, Late: cfg.RegularLinkLate},
		},
	}
}

// Early reports whether at falls strictly before the cutoff in AEST
// civil time.
func (s *Schedule) Early(at time.Time) bool {
	return at.In(AEST).Before(s.cutoff.In(AEST))
}

// QuoteAt returns the fee in whole AUD for a registration type at the
// given instant. ok is false for unknown types.
func (s *Schedule) QuoteAt(registrationType int32, at time.Time) (int64, bool) {
	tier, ok := s.prices[registrationType]
	if !ok {
		return 0, false
	}
	if s.Early(at) {
		return tier.Early, true
	}
	return tier.Late, true
}

// LinkAt returns the processor-hosted checkout link for a registration
// type at the given instant.
func (s *Schedule) LinkAt(registrationType int32, at time.Time) (string, bool) {
	links, ok := s.links[registrationType]
	if !ok {
		return "", false
	}
	if s.Early(at) {
		return links.Early, true
	}
	return links.Late, true
}
