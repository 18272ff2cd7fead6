package services

import (
	"time"

	"github.com/terraincognita07/kennelbook/internal/models"
)

// ResolveHeatInterval picks the interval used to project a dog's next heat:
// an explicit override, then the measured interval, then the prediction
// fallback.
func ResolveHeatInterval(dog models.Dog) HeatInterval {
	if dog.HeatIntervalOverride != nil && *dog.HeatIntervalOverride > 0 {
		return HeatInterval{IntervalDays: *dog.HeatIntervalOverride, Source: HeatIntervalOverride}
	}
	if len(dog.HeatHistory) >= 2 {
		return EstimateHeatInterval(models.HeatDates(dog.HeatHistory))
	}
	return HeatInterval{IntervalDays: PredictionFallbackHeatIntervalDays, Source: HeatIntervalStandard}
}

// ProjectNextHeat steps forward from latest by intervalDays until the result
// is strictly after today, so stale histories still yield the next upcoming
// heat rather than one in the past.
func ProjectNextHeat(latest time.Time, intervalDays int, now time.Time, location *time.Location) (time.Time, bool) {
	if latest.IsZero() {
		return time.Time{}, false
	}
	if intervalDays <= 0 {
		intervalDays = PredictionFallbackHeatIntervalDays
	}

	today := NormalizeDate(now, location)
	next := NormalizeDate(latest, location).AddDate(0, 0, intervalDays)
	if !next.After(today) {
		lagDays := DaysBetween(next, today, location)
		next = next.AddDate(0, 0, (lagDays/intervalDays)*intervalDays)
		for !next.After(today) {
			next = next.AddDate(0, 0, intervalDays)
		}
	}
	return next, true
}

func LatestHeatDate(records []models.HeatRecord) time.Time {
	latest := time.Time{}
	for _, record := range records {
		if record.Date.After(latest) {
			latest = record.Date
		}
	}
	return latest
}

// PredictNextHeat returns false for males and for dogs without heat history.
func PredictNextHeat(dog models.Dog, now time.Time, location *time.Location) (time.Time, bool) {
	if !dog.IsFemale() || len(dog.HeatHistory) == 0 {
		return time.Time{}, false
	}
	interval := ResolveHeatInterval(dog)
	return ProjectNextHeat(LatestHeatDate(dog.HeatHistory), interval.IntervalDays, now, location)
}

type HeatOutlook struct {
	DogID          uint         `json:"dog_id"`
	Interval       HeatInterval `json:"interval"`
	LastHeat       *time.Time   `json:"last_heat,omitempty"`
	NextHeat       *time.Time   `json:"next_heat,omitempty"`
	DaysUntilHeat  *int         `json:"days_until_heat,omitempty"`
	RecordedCycles int          `json:"recorded_cycles"`
}

func BuildHeatOutlook(dog models.Dog, now time.Time, location *time.Location) HeatOutlook {
	outlook := HeatOutlook{
		DogID:          dog.ID,
		Interval:       ResolveHeatInterval(dog),
		RecordedCycles: len(dog.HeatHistory),
	}
	if len(dog.HeatHistory) > 0 {
		last := NormalizeDate(LatestHeatDate(dog.HeatHistory), location)
		outlook.LastHeat = &last
	}
	if next, ok := PredictNextHeat(dog, now, location); ok {
		days := DaysBetween(now, next, location)
		outlook.NextHeat = &next
		outlook.DaysUntilHeat = &days
	}
	return outlook
}
