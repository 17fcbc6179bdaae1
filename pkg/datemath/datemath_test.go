package datemath

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !got.Equal(date(2025, time.March, 15)) {
		t.Fatalf("ParseDate=%v", got)
	}
	for _, bad := range []string{"", "15/03/2025", "2025-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): err=%v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		in   time.Time
		n    int
		want time.Time
	}{
		{date(2025, time.January, 15), 1, date(2025, time.February, 15)},
		{date(2025, time.January, 31), 1, date(2025, time.February, 28)}, // clamp
		{date(2024, time.January, 31), 1, date(2024, time.February, 29)}, // leap
		{date(2025, time.October, 31), 2, date(2025, time.December, 31)},
		{date(2025, time.November, 30), 3, date(2026, time.February, 28)},
		{date(2025, time.June, 1), 12, date(2026, time.June, 1)},
		{date(2025, time.June, 1), 0, date(2025, time.June, 1)},
	}
	for _, tc := range tests {
		if got := AddMonths(tc.in, tc.n); !got.Equal(tc.want) {
			t.Errorf("AddMonths(%v, %d)=%v, want %v", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	due := date(2025, time.May, 10)
	if IsOverdue(due, date(2025, time.May, 10)) {
		t.Fatal("due date itself must not be overdue")
	}
	if IsOverdue(due, due.Add(23*time.Hour)) {
		t.Fatal("same calendar day must not be overdue")
	}
	if !IsOverdue(due, date(2025, time.May, 11)) {
		t.Fatal("next day must be overdue")
	}
	if IsOverdue(due, date(2025, time.May, 9)) {
		t.Fatal("earlier day must not be overdue")
	}
}
