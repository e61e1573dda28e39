package service

import (
	"strings"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/model"
)

// DefaultExpiryWindowDays is the forward-looking horizon used to flag
// contracts needing attention.
const DefaultExpiryWindowDays = 30

// ExpiryState is the time-window classification of a contract's end date.
// It is independent of the contract's status and priority fields; callers
// combine them.
type ExpiryState int

const (
	// ExpiryNotTracked means the contract has no usable end date
	// ("TBD", empty, or unparsable).
	ExpiryNotTracked ExpiryState = iota
	// ExpiryExpired means the end date is before today.
	ExpiryExpired
	// ExpiryExpiringSoon means the end date falls inside the window,
	// boundaries included.
	ExpiryExpiringSoon
	// ExpiryActive means the end date is beyond the window.
	ExpiryActive
)

func (s ExpiryState) String() string {
	switch s {
	case ExpiryExpired:
		return "expired"
	case ExpiryExpiringSoon:
		return "expiring_soon"
	case ExpiryActive:
		return "active"
	default:
		return "not_tracked"
	}
}

// Classification carries the expiry state and, when expiring soon, the
// number of days remaining (0 means the contract ends today).
type Classification struct {
	State         ExpiryState
	DaysRemaining int
}

// endsLayouts are the date formats accepted for the ends field.
var endsLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006",
	"2006/01/02",
}

// ParseEnds parses a contract's ends field. It returns ok=false for the
// tracking sentinel and for anything that fails to parse; date parsing
// never surfaces an error.
func ParseEnds(ends string) (time.Time, bool) {
	ends = strings.TrimSpace(ends)
	if ends == "" || strings.EqualFold(ends, model.EndsNotTracked) {
		return time.Time{}, false
	}
	for _, layout := range endsLayouts {
		if t, err := time.Parse(layout, ends); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// midnight reduces t to date granularity in UTC, so window comparisons are
// date-based rather than instant-based and insensitive to the caller's
// time zone.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify maps a contract's ends field to an expiry classification
// relative to the caller-supplied now. The window is inclusive of both
// today and today+windowDays; windowDays <= 0 falls back to the default.
func Classify(now time.Time, ends string, windowDays int) Classification {
	end, ok := ParseEnds(ends)
	if !ok {
		return Classification{State: ExpiryNotTracked}
	}
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}

	today := midnight(now)
	end = midnight(end)

	if end.Before(today) {
		return Classification{State: ExpiryExpired}
	}

	horizon := today.AddDate(0, 0, windowDays)
	if !end.After(horizon) {
		days := int(end.Sub(today).Hours() / 24)
		return Classification{State: ExpiryExpiringSoon, DaysRemaining: days}
	}

	return Classification{State: ExpiryActive}
}
