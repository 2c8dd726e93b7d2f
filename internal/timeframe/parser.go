package timeframe

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedDate is returned when a date filter cannot be parsed.
var ErrMalformedDate = errors.New("malformed date")

// DateRange is an optional, inclusive range of calendar days. A nil bound is
// open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether t falls inside the range. Bounds compare on
// calendar days.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	if r.From != nil && d.Before(Day(*r.From)) {
		return false
	}
	if r.To != nil && d.After(Day(*r.To)) {
		return false
	}
	return true
}

// Format returns both bounds in LabelFormat, empty for an open bound.
func (r DateRange) Format() (string, string) {
	var from, to string
	if r.From != nil {
		from = r.From.Format(LabelFormat)
	}
	if r.To != nil {
		to = r.To.Format(LabelFormat)
	}
	return from, to
}

// ParseDate parses a YYYY-MM-DD value into UTC midnight.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.ParseInLocation(LabelFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
	}
	return t, nil
}

// ParseDateRange builds a DateRange from two optional query values. Each
// bound is parsed independently: an empty value leaves the bound open, and a
// malformed one is dropped and reported through the returned error so the
// caller can log it while still using the other bound.
func ParseDateRange(fromValue, toValue string) (DateRange, error) {
	var r DateRange
	var errs []error

	if strings.TrimSpace(fromValue) != "" {
		from, err := ParseDate(fromValue)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid 'from' date: %w", err))
		} else {
			r.From = &from
		}
	}

	if strings.TrimSpace(toValue) != "" {
		to, err := ParseDate(toValue)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid 'to' date: %w", err))
		} else {
			r.To = &to
		}
	}

	return r, errors.Join(errs...)
}
