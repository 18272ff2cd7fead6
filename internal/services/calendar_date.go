package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const calendarDateLayout = "2006-01-02"

var ErrDateParse = errors.New("date parse failed")

// DateParseError reports an input date that could not be parsed. Callers skip
// the offending record instead of aborting the whole computation.
type DateParseError struct {
	Input string
	Err   error
}

func (err *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q: %v", err.Input, err.Err)
}

func (err *DateParseError) Unwrap() []error {
	return []error{ErrDateParse, err.Err}
}

// NormalizeDate truncates value to midnight in location.
func NormalizeDate(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DaysBetween counts calendar days from -> to. Both operands are normalized
// first, and the difference is taken on UTC calendar dates so DST shifts never
// produce 23 or 25 hour days.
func DaysBetween(from time.Time, to time.Time, location *time.Location) int {
	fromDay := NormalizeDate(from, location)
	toDay := NormalizeDate(to, location)
	fromUTC := time.Date(fromDay.Year(), fromDay.Month(), fromDay.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(toDay.Year(), toDay.Month(), toDay.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}

func ParseCalendarDate(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, &DateParseError{Input: raw, Err: errors.New("empty value")}
	}

	if parsed, err := time.ParseInLocation(calendarDateLayout, trimmed, location); err == nil {
		return NormalizeDate(parsed, location), nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, &DateParseError{Input: raw, Err: err}
	}
	return NormalizeDate(parsed, location), nil
}

// ParseCalendarDates parses every entry it can and reports the rest.
func ParseCalendarDates(raws []string, location *time.Location) ([]time.Time, []error) {
	dates := make([]time.Time, 0, len(raws))
	var failures []error
	for _, raw := range raws {
		parsed, err := ParseCalendarDate(raw, location)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		dates = append(dates, parsed)
	}
	return dates, failures
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	return a.Format(calendarDateLayout) == b.Format(calendarDateLayout)
}

func betweenCalendarDaysInclusive(day time.Time, start time.Time, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return (day.Equal(start) || day.After(start)) && (day.Equal(end) || day.Before(end))
}

// ParseReadingTime keeps the time of day for RFC3339 input, since hormone
// tests are often taken twice a day. Plain dates map to local midnight.
func ParseReadingTime(raw string, location *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		if location == nil {
			location = time.UTC
		}
		return parsed.In(location), nil
	}
	return ParseCalendarDate(raw, location)
}
