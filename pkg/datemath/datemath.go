package datemath

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a boundary date string does not parse.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the canonical wire format for dates (aligns with schema DATE).
const DateLayout = "2006-01-02"

// ParseDate parses a canonical YYYY-MM-DD date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.UTC(), nil
}

// AddMonths advances t by n calendar months, clamping to the last day of the
// target month instead of letting time.AddDate roll over (Jan 31 + 1 month is
// Feb 28/29, not Mar 2/3).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	target := first.AddDate(0, n, 0)
	last := daysIn(target.Year(), target.Month())
	if d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsOverdue reports whether due has passed at date granularity: the due date
// itself is not overdue, the following day onward is.
func IsOverdue(due, now time.Time) bool {
	return truncateDay(now.UTC()).After(truncateDay(due.UTC()))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
