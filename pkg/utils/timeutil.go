package utils

import (
	"errors"
	"strings"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// ErrUnknownTimestamp is returned by ParseTimestamp for empty or unrecognised input.
var ErrUnknownTimestamp = errors.New("unrecognised timestamp")

// timestampLayouts are tried in order. Zone-less layouts are read as UTC,
// which is what the backend emits for naive ISO timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02",
}

// ParseTimestamp parses the date formats seen in news payloads and RSS feeds.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnknownTimestamp
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnknownTimestamp
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}

// FormatNewsDate formats a time as "Jan 2, 2006" in IST.
func FormatNewsDate(t time.Time) string {
	return t.In(IST).Format("Jan 2, 2006")
}

// FormatNewsTime formats a time as "03:04 PM" in IST.
func FormatNewsTime(t time.Time) string {
	return t.In(IST).Format("03:04 PM")
}

// FormatDateTimeIST formats a time.Time to "2006-01-02 15:04:05 IST".
func FormatDateTimeIST(t time.Time) string {
	return t.In(IST).Format("2006-01-02 15:04:05 IST")
}

// MarketStatus reports whether the NSE cash session (09:15–15:30 IST,
// Monday to Friday) is open at t. Exchange holidays are not tracked.
func MarketStatus(t time.Time) string {
	t = t.In(IST)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return "CLOSED (Weekend)"
	}

	open := time.Date(t.Year(), t.Month(), t.Day(), 9, 15, 0, 0, IST)
	closing := time.Date(t.Year(), t.Month(), t.Day(), 15, 30, 0, 0, IST)
	switch {
	case t.Before(open):
		return "PRE-MARKET"
	case !t.After(closing):
		return "OPEN"
	default:
		return "CLOSED"
	}
}
