package services

import (
	"strings"
	"time"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

const (
	DateLayout         = "2006-01-02"
	InvalidDateDisplay = "Invalid Date"
)

type SessionBuckets struct {
	Past   []models.BookingSummary
	Future []models.BookingSummary
}

// BucketSessions splits bookings into those dated strictly before today and the rest.
// Only calendar dates are compared and input order is kept inside each bucket.
func BucketSessions(bookings []models.BookingSummary, today time.Time) SessionBuckets {
	past, future := PartitionByDate(bookings, func(b models.BookingSummary) string { return b.Date }, today)
	return SessionBuckets{Past: past, Future: future}
}

// PartitionByDate is the generic form of BucketSessions. Items whose date does not
// parse are never "before today" and end up in future.
func PartitionByDate[T any](items []T, dateOf func(T) string, today time.Time) (past, future []T) {
	past = make([]T, 0, len(items))
	future = make([]T, 0, len(items))
	midnight := StartOfDay(today)

	for _, item := range items {
		day, ok := parseDay(dateOf(item), today.Location())
		if ok && day.Before(midnight) {
			past = append(past, item)
			continue
		}
		future = append(future, item)
	}
	return past, future
}

// parseDay accepts a bare date or a date with a time part ("2023-01-01T10:00:00",
// RFC 3339) and returns the start of that calendar day in loc.
func parseDay(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if day, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return day, true
	}
	if instant, err := time.Parse(time.RFC3339, value); err == nil {
		return StartOfDay(instant.In(loc)), true
	}
	if len(value) > len(DateLayout) && (value[len(DateLayout)] == 'T' || value[len(DateLayout)] == ' ') {
		if day, err := time.ParseInLocation(DateLayout, value[:len(DateLayout)], loc); err == nil {
			return day, true
		}
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// FormatTime renders a "HH:MM[:SS]" time on the given "YYYY-MM-DD" date as a 12-hour
// clock without a leading zero on the hour, e.g. "9:05 AM". Malformed input yields
// InvalidDateDisplay.
func FormatTime(timeString, dateString string) string {
	parts := strings.Split(strings.TrimSpace(timeString), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return InvalidDateDisplay
	}

	hour := padTwo(parts[0])
	minute := padTwo(parts[1])
	second := "00"
	if len(parts) == 3 && parts[2] != "" {
		second, _, _ = strings.Cut(parts[2], ".")
	}

	instant, err := time.Parse(DateLayout+"T15:04:05", strings.TrimSpace(dateString)+"T"+hour+":"+minute+":"+second)
	if err != nil {
		return InvalidDateDisplay
	}

	return strings.TrimPrefix(instant.Format("03:04 PM"), "0")
}

func padTwo(value string) string {
	if len(value) == 1 {
		return "0" + value
	}
	return value
}

// Today returns the current calendar date in loc formatted for the booking routes.
func Today(now time.Time, loc *time.Location) string {
	if loc != nil {
		now = now.In(loc)
	}
	return now.Format(DateLayout)
}
