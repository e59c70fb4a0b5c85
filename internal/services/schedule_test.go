package services

import (
	"testing"
	"time"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

func TestBucketSessionsSplitsPastAndFuture(t *testing.T) {
	today := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	buckets := BucketSessions([]models.BookingSummary{
		{ID: 1, Date: "2023-01-01"},
		{ID: 2, Date: "2099-01-01"},
	}, today)

	if len(buckets.Past) != 1 || buckets.Past[0].Date != "2023-01-01" {
		t.Fatalf("unexpected past bucket: %+v", buckets.Past)
	}
	if len(buckets.Future) != 1 || buckets.Future[0].Date != "2099-01-01" {
		t.Fatalf("unexpected future bucket: %+v", buckets.Future)
	}
}

func TestBucketSessionsTodayIsFuture(t *testing.T) {
	today := time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)
	buckets := BucketSessions([]models.BookingSummary{{ID: 1, Date: "2024-06-01"}}, today)
	if len(buckets.Future) != 1 || len(buckets.Past) != 0 {
		t.Fatalf("expected today's session in future, got %+v", buckets)
	}
}

func TestBucketSessionsPreservesOrderAndCount(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.BookingSummary{
		{ID: 1, Date: "2024-07-01"},
		{ID: 2, Date: "2024-05-01"},
		{ID: 3, Date: "2024-06-02"},
		{ID: 4, Date: "2024-01-15"},
		{ID: 5, Date: "2024-06-01"},
	}
	buckets := BucketSessions(input, today)

	if len(buckets.Past)+len(buckets.Future) != len(input) {
		t.Fatalf("bucket sizes do not add up: %d + %d", len(buckets.Past), len(buckets.Future))
	}
	assertIDs(t, buckets.Past, 2, 4)
	assertIDs(t, buckets.Future, 1, 3, 5)
}

func TestBucketSessionsUnparsableDateIsFuture(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	buckets := BucketSessions([]models.BookingSummary{{ID: 1, Date: "soon"}}, today)
	assertIDs(t, buckets.Future, 1)
}

func TestBucketSessionsAcceptsDatesWithTimePart(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.BookingSummary{
		{ID: 1, Date: "2023-01-01T10:00:00"},
		{ID: 2, Date: "2023-01-01T10:00:00Z"},
		{ID: 3, Date: "2024-06-01 08:30:00"},
		{ID: 4, Date: "2099-01-01T00:00:00+02:00"},
	}
	buckets := BucketSessions(input, today)
	assertIDs(t, buckets.Past, 1, 2)
	assertIDs(t, buckets.Future, 3, 4)
}

func TestBucketSessionsUsesTodaysLocation(t *testing.T) {
	chicago := time.FixedZone("CST", -6*3600)
	// 02:00 UTC on June 2nd is still June 1st in Chicago.
	today := time.Date(2024, 6, 2, 2, 0, 0, 0, time.UTC).In(chicago)
	buckets := BucketSessions([]models.BookingSummary{{ID: 1, Date: "2024-06-01"}}, today)
	assertIDs(t, buckets.Future, 1)
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		time, date, want string
	}{
		{"09:05", "2024-01-01", "9:05 AM"},
		{"13:00", "2024-01-01", "1:00 PM"},
		{"00:00", "2024-01-01", "12:00 AM"},
		{"12:00:00", "2024-01-01", "12:00 PM"},
		{"9:5", "2024-01-01", "9:05 AM"},
		{"17:45:30", "2024-03-10", "5:45 PM"},
		{"10:15:00.000", "2024-03-10", "10:15 AM"},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.time, tc.date); got != tc.want {
			t.Fatalf("FormatTime(%q, %q) = %q, want %q", tc.time, tc.date, got, tc.want)
		}
	}
}

func TestFormatTimeMalformedInput(t *testing.T) {
	for _, tc := range [][2]string{
		{"", "2024-01-01"},
		{"nine", "2024-01-01"},
		{"25:00", "2024-01-01"},
		{"09:05", "01/01/2024"},
		{"09:05:00:00", "2024-01-01"},
	} {
		if got := FormatTime(tc[0], tc[1]); got != InvalidDateDisplay {
			t.Fatalf("FormatTime(%q, %q) = %q, want %q", tc[0], tc[1], got, InvalidDateDisplay)
		}
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 6, 2, 2, 0, 0, 0, time.UTC)
	if got := Today(now, time.FixedZone("CST", -6*3600)); got != "2024-06-01" {
		t.Fatalf("Today = %q", got)
	}
	if got := Today(now, nil); got != "2024-06-02" {
		t.Fatalf("Today = %q", got)
	}
}

func assertIDs(t *testing.T, bookings []models.BookingSummary, ids ...int64) {
	t.Helper()
	if len(bookings) != len(ids) {
		t.Fatalf("expected ids %v, got %+v", ids, bookings)
	}
	for i, id := range ids {
		if bookings[i].ID != id {
			t.Fatalf("expected ids %v, got %+v", ids, bookings)
		}
	}
}
