package services

import (
	"strings"
	"time"
)

// GestationDays is the canine gestation length. It is a domain constant and
// intentionally not configurable.
const GestationDays = 63

const dueDateToleranceDays = 2

type PregnancyProgress struct {
	MatingDate      time.Time `json:"mating_date"`
	DaysElapsed     int       `json:"days_elapsed"`
	DaysRemaining   int       `json:"days_remaining"`
	PercentComplete float64   `json:"percent_complete"`
	GestationWeek   int       `json:"gestation_week"`
	DueDate         time.Time `json:"due_date"`
	AsOf            time.Time `json:"as_of"`
	InDueBand       bool      `json:"in_due_band"`
}

func PregnancyDueDate(matingDate time.Time, location *time.Location) time.Time {
	return NormalizeDate(matingDate, location).AddDate(0, 0, GestationDays)
}

func PregnancyProgressAt(matingDate time.Time, asOf time.Time, location *time.Location) PregnancyProgress {
	mating := NormalizeDate(matingDate, location)
	daysElapsed := clampInt(DaysBetween(mating, asOf, location), 0, GestationDays)

	percent := float64(daysElapsed) / float64(GestationDays) * 100
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	week := daysElapsed/7 + 1
	if week > GestationDays/7 {
		week = GestationDays / 7
	}

	dueDate := PregnancyDueDate(mating, location)
	return PregnancyProgress{
		MatingDate:      mating,
		DaysElapsed:     daysElapsed,
		DaysRemaining:   GestationDays - daysElapsed,
		PercentComplete: percent,
		GestationWeek:   week,
		DueDate:         dueDate,
		AsOf:            NormalizeDate(asOf, location),
		InDueBand:       IsWithinDueBand(asOf, dueDate, location),
	}
}

// ParsePregnancyProgress is the string entry point. An empty asOf means today.
func ParsePregnancyProgress(rawMatingDate string, rawAsOf string, now time.Time, location *time.Location) (PregnancyProgress, error) {
	matingDate, err := ParseCalendarDate(rawMatingDate, location)
	if err != nil {
		return PregnancyProgress{}, err
	}
	asOf := NormalizeDate(now, location)
	if strings.TrimSpace(rawAsOf) != "" {
		asOf, err = ParseCalendarDate(rawAsOf, location)
		if err != nil {
			return PregnancyProgress{}, err
		}
	}
	return PregnancyProgressAt(matingDate, asOf, location), nil
}

// IsWithinDueBand reports whether day falls in the +/-2 day uncertainty band
// around the due date.
func IsWithinDueBand(day time.Time, dueDate time.Time, location *time.Location) bool {
	offset := DaysBetween(dueDate, day, location)
	return offset >= -dueDateToleranceDays && offset <= dueDateToleranceDays
}

// IsInDueWeek is the calendar highlight range: the due date +/- 2 days.
func IsInDueWeek(day time.Time, dueDate time.Time, location *time.Location) bool {
	due := NormalizeDate(dueDate, location)
	return betweenCalendarDaysInclusive(
		NormalizeDate(day, location),
		due.AddDate(0, 0, -dueDateToleranceDays),
		due.AddDate(0, 0, dueDateToleranceDays),
	)
}

func clampInt(value int, low int, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
