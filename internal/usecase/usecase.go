package usecase

import (
	"time"

	"github.com/pawbook/pawbook/pkg/apperror"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Validation errors shared across usecases
var (
	ErrInvalidDateFormat = apperror.Validation("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = apperror.Validation("invalid time format, use HH:MM")
	ErrInvalidInterval   = apperror.Validation("end time must be after start time")
)

// parseDate parses a YYYY-MM-DD string into a UTC midnight timestamp.
func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date.UTC(), nil
}

// dayBounds returns the half-open day window [date, date+24h). Date columns
// are stored as midnight timestamps, so range queries on these bounds match
// exactly one calendar day.
func dayBounds(date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return dayStart, dayStart.Add(24 * time.Hour)
}

// combineDateClock anchors an HH:MM wall clock onto a calendar date.
func combineDateClock(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, ErrInvalidTimeFormat
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// today returns the current UTC day at midnight.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
