// Package expiry computes calendar-day distances to inventory expiry dates.
//
// Every function is parse-or-default: a malformed date yields 0 for day counts
// and false for predicates, never an error. Form validation relies on that.
package expiry

import (
	"strings"
	"time"
)

// DefaultNearExpiryDays is the threshold used by IsNearExpiry.
const DefaultNearExpiryDays = 30

// DateLayout is the ISO calendar date format used for expiry dates.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Calendar decides what "today" is. The zero value uses time.Now in time.Local.
type Calendar struct {
	Now      func() time.Time
	Location *time.Location
}

var local = Calendar{}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Calendar) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// civilDay drops the clock and zone, keeping only the calendar day.
func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day at midnight UTC.
func (c Calendar) Today() time.Time {
	return civilDay(c.now().In(c.location()))
}

// Parse accepts YYYY-MM-DD or an RFC 3339 timestamp, whose day is taken in the
// calendar's zone.
func (c Calendar) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(DateLayout, s, c.location()); err == nil {
		return civilDay(t), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return civilDay(t.In(c.location())), true
	}
	return time.Time{}, false
}

func (c Calendar) delta(s string) (int, bool) {
	date, ok := c.Parse(s)
	if !ok {
		return 0, false
	}
	return int((date.Unix() - c.Today().Unix()) / secondsPerDay), true
}

// DaysUntilExpiry returns expiry minus today in days; negative once expired.
func (c Calendar) DaysUntilExpiry(expiry string) int {
	days, _ := c.delta(expiry)
	return days
}

// IsNearExpiry reports whether expiry is within DefaultNearExpiryDays.
func (c Calendar) IsNearExpiry(expiry string) bool {
	return c.IsNearExpiryWithin(expiry, DefaultNearExpiryDays)
}

// IsNearExpiryWithin reports 0 <= days until expiry <= thresholdDays.
// Already expired stock is not near expiry.
func (c Calendar) IsNearExpiryWithin(expiry string, thresholdDays int) bool {
	days, ok := c.delta(expiry)
	return ok && days >= 0 && days <= thresholdDays
}

// IsValidFutureDate reports whether s is a date that is today or later.
func (c Calendar) IsValidFutureDate(s string) bool {
	days, ok := c.delta(s)
	return ok && days >= 0
}

// IsPastDate reports whether s is a date strictly before today.
func (c Calendar) IsPastDate(s string) bool {
	days, ok := c.delta(s)
	return ok && days < 0
}

// DaysUntilExpiry uses the local calendar.
func DaysUntilExpiry(expiry string) int { return local.DaysUntilExpiry(expiry) }

// IsNearExpiry uses the local calendar.
func IsNearExpiry(expiry string) bool { return local.IsNearExpiry(expiry) }

// IsNearExpiryWithin uses the local calendar.
func IsNearExpiryWithin(expiry string, thresholdDays int) bool {
	return local.IsNearExpiryWithin(expiry, thresholdDays)
}

// IsValidFutureDate uses the local calendar.
func IsValidFutureDate(s string) bool { return local.IsValidFutureDate(s) }

// IsPastDate uses the local calendar.
func IsPastDate(s string) bool { return local.IsPastDate(s) }
