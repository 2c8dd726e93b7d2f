package timeframe

import (
	"fmt"
	"strings"
	"time"
)

// LabelFormat is the layout used for bucket labels and date query parameters.
const LabelFormat = "2006-01-02"

// Granularity is the trend bucket size.
type Granularity string

const (
	GranularityDaily   Granularity = "Daily"
	GranularityWeekly  Granularity = "Weekly"
	GranularityMonthly Granularity = "Monthly"
)

// Granularities lists the supported bucket sizes in display order.
var Granularities = []Granularity{GranularityDaily, GranularityWeekly, GranularityMonthly}

// ParseGranularity maps a group_by value onto a Granularity. Matching is
// case-insensitive; anything unknown falls back to Daily.
func ParseGranularity(value string) Granularity {
	for _, g := range Granularities {
		if strings.EqualFold(strings.TrimSpace(value), string(g)) {
			return g
		}
	}
	return GranularityDaily
}

// Day truncates t to UTC midnight of its calendar date.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	year, month, day := t.Date()
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	daysToSubtract := weekday - 1
	return time.Date(year, month, day-daysToSubtract, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// BucketStart truncates t to the start of its bucket for the granularity.
func BucketStart(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeekly:
		return WeekStart(t)
	case GranularityMonthly:
		return MonthStart(t)
	default:
		return Day(t)
	}
}

// BucketEnd returns the last calendar day (inclusive) of the bucket that
// starts at start: the day itself, start+6 days, or the last day of the month.
func BucketEnd(start time.Time, g Granularity) time.Time {
	start = Day(start)
	switch g {
	case GranularityWeekly:
		return start.AddDate(0, 0, 6)
	case GranularityMonthly:
		return MonthStart(start).AddDate(0, 1, -1)
	default:
		return start
	}
}

// Span is an inclusive range of calendar days.
type Span struct {
	From time.Time
	To   time.Time
}

// BucketSpan returns the calendar span covered by the bucket starting at start.
func BucketSpan(start time.Time, g Granularity) Span {
	return Span{From: Day(start), To: BucketEnd(start, g)}
}

// Label renders the span start with LabelFormat.
func (s Span) Label() string {
	return s.From.Format(LabelFormat)
}

// Contains reports whether t falls on a day inside the span.
func (s Span) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(s.From) && !d.After(s.To)
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.From.Format(LabelFormat), s.To.Format(LabelFormat))
}
