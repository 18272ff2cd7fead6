package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/kennelbook/internal/models"
)

type Confidence string

const (
	ConfidenceHigh             Confidence = "high"
	ConfidenceMedium           Confidence = "medium"
	ConfidenceLow              Confidence = "low"
	ConfidenceInsufficientData Confidence = "insufficient_data"
)

// Progesterone thresholds in ng/ml.
const (
	surgeBaselineCeiling   = 2.0
	surgeRiseFloor         = 5.0
	surgeDoublingFactor    = 2.0
	highConfidencePeak     = 10.0
	mediumConfidencePeak   = 5.0
	veryHighProgesterone   = 15.0
	veryLowProgesterone    = 1.0
	matingWindowStartDelay = 24 * time.Hour
	matingWindowEndDelay   = 48 * time.Hour
)

const (
	CodeInsufficientTests    = "insufficientTests"
	CodeLHSurgeIdentified    = "lhSurgeIdentified"
	CodeMonitorBehavior      = "monitorBehavior"
	CodeMultipleMatings      = "multipleMatings"
	CodeVeryHighProgesterone = "veryHighProgesterone"
	CodeVeryLowLevels        = "veryLowLevels"
	CodeContinueTestingDaily = "continueTestingDaily"
	CodeNoLHSurge            = "noLhSurge"
	CodeRisingButLow         = "risingButLow"
	CodeTestDailySoon        = "testDailySoon"
	CodeWatchBehavior        = "watchBehavior"
	CodeApproachingSurge     = "approachingSurge"
	CodeTestEvery12Hours     = "testEvery12Hours"
	CodeSurgeImminent        = "surgeImminent"
	CodeMayHaveMissedSurge   = "mayHaveMissedSurge"
	CodeConsiderMatingNow    = "considerMatingNow"
	CodeWindowClosing        = "windowClosing"
)

// MatingWindowEstimate is derived on every call and never stored.
type MatingWindowEstimate struct {
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	SurgeDate           *time.Time `json:"surge_date,omitempty"`
	Confidence          Confidence `json:"confidence"`
	SurgeDetected       bool       `json:"surge_detected"`
	PeakValue           *float64   `json:"peak_value"`
	LatestValue         *float64   `json:"latest_value,omitempty"`
	LastTestDate        *time.Time `json:"last_test_date,omitempty"`
	RecommendationCodes []string   `json:"recommendation_codes"`
	ReadingsUsed        int        `json:"readings_used"`
	RejectedReadings    int        `json:"rejected_readings"`
}

type progesteronePoint struct {
	date  time.Time
	value float64
}

// EstimateMatingWindow looks for an LH surge in a progesterone series. Only
// progesterone readings with a valid value take part; malformed values are
// dropped and counted in RejectedReadings.
func EstimateMatingWindow(readings []models.HormoneReading) MatingWindowEstimate {
	points, rejected := qualifyingProgesteronePoints(readings)
	if len(points) < 2 {
		return MatingWindowEstimate{
			Confidence:          ConfidenceInsufficientData,
			RecommendationCodes: []string{CodeInsufficientTests},
			ReadingsUsed:        len(points),
			RejectedReadings:    rejected,
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].date.Before(points[j].date)
	})

	peak := points[0].value
	var surgeDate time.Time
	surgeFound := false
	for index := 1; index < len(points); index++ {
		previous := points[index-1]
		current := points[index]
		if current.value > peak {
			peak = current.value
		}
		if isLHSurge(previous.value, current.value) {
			surgeDate = current.date
			surgeFound = true
			break
		}
	}

	latest := points[len(points)-1]
	estimate := MatingWindowEstimate{
		PeakValue:        floatPointer(peak),
		LatestValue:      floatPointer(latest.value),
		LastTestDate:     timePointer(latest.date),
		ReadingsUsed:     len(points),
		RejectedReadings: rejected,
	}

	if !surgeFound {
		estimate.Confidence = ConfidenceInsufficientData
		estimate.RecommendationCodes = guidanceForLatestValue(latest.value)
		return estimate
	}

	estimate.SurgeDetected = true
	estimate.SurgeDate = timePointer(surgeDate)
	estimate.StartDate = timePointer(surgeDate.Add(matingWindowStartDelay))
	estimate.EndDate = timePointer(surgeDate.Add(matingWindowEndDelay))
	estimate.Confidence = confidenceForPeak(peak)
	estimate.RecommendationCodes = []string{CodeLHSurgeIdentified, CodeMonitorBehavior, CodeMultipleMatings}
	if peak > veryHighProgesterone {
		estimate.RecommendationCodes = append(estimate.RecommendationCodes, CodeVeryHighProgesterone)
	}
	return estimate
}

// progesteroneCycleGap separates test series that belong to different heats.
const progesteroneCycleGap = staleProgesteroneSeriesDays * 24 * time.Hour

// CurrentCycleReadings narrows a dog's reading history to the heat in
// progress: readings on or after the latest recorded heat start, and of those
// only the run after the last gap longer than progesteroneCycleGap.
func CurrentCycleReadings(readings []models.HormoneReading, heatHistory []models.HeatRecord, location *time.Location) []models.HormoneReading {
	latestHeat := LatestHeatDate(heatHistory)
	if latestHeat.IsZero() {
		return latestReadingSeries(readings)
	}
	heatStart := NormalizeDate(latestHeat, location)
	sinceHeat := make([]models.HormoneReading, 0, len(readings))
	for _, reading := range readings {
		if !NormalizeDate(reading.Date, location).Before(heatStart) {
			sinceHeat = append(sinceHeat, reading)
		}
	}
	return latestReadingSeries(sinceHeat)
}

// latestReadingSeries returns the readings after the last testing gap, oldest
// first.
func latestReadingSeries(readings []models.HormoneReading) []models.HormoneReading {
	sorted := append([]models.HormoneReading(nil), readings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	start := 0
	for index := 1; index < len(sorted); index++ {
		if sorted[index].Date.Sub(sorted[index-1].Date) > progesteroneCycleGap {
			start = index
		}
	}
	return sorted[start:]
}

func qualifyingProgesteronePoints(readings []models.HormoneReading) ([]progesteronePoint, int) {
	points := make([]progesteronePoint, 0, len(readings))
	rejected := 0
	for _, reading := range readings {
		if reading.TestType != models.TestTypeProgesterone || reading.Value == nil {
			continue
		}
		value, err := ValidateHormoneReading(reading)
		if err != nil {
			rejected++
			continue
		}
		points = append(points, progesteronePoint{date: reading.Date, value: value})
	}
	return points, rejected
}

// isLHSurge checks the sharp jump from baseline first, then the doubling
// rise into surge range.
func isLHSurge(previous float64, current float64) bool {
	if previous < surgeBaselineCeiling && current > surgeRiseFloor {
		return true
	}
	return previous < surgeRiseFloor && current >= surgeRiseFloor && current >= surgeDoublingFactor*previous
}

func confidenceForPeak(peak float64) Confidence {
	switch {
	case peak > highConfidencePeak:
		return ConfidenceHigh
	case peak > mediumConfidencePeak:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func guidanceForLatestValue(value float64) []string {
	switch {
	case value < veryLowProgesterone:
		return []string{CodeVeryLowLevels, CodeContinueTestingDaily, CodeNoLHSurge}
	case value < surgeBaselineCeiling:
		return []string{CodeRisingButLow, CodeTestDailySoon, CodeWatchBehavior}
	case value < surgeRiseFloor:
		return []string{CodeApproachingSurge, CodeTestEvery12Hours, CodeSurgeImminent}
	default:
		return []string{CodeMayHaveMissedSurge, CodeConsiderMatingNow, CodeWindowClosing}
	}
}

// ShouldContinueTesting is false once a known window has passed or the
// estimate has reached medium or high confidence.
func ShouldContinueTesting(window MatingWindowEstimate, lastTestDate time.Time, now time.Time) bool {
	if window.SurgeDetected && window.EndDate != nil && now.After(*window.EndDate) {
		return false
	}
	switch window.Confidence {
	case ConfidenceInsufficientData:
		return now.Sub(lastTestDate) >= 24*time.Hour
	case ConfidenceLow:
		return true
	default:
		return false
	}
}

func NextTestRecommendation(window MatingWindowEstimate, lastTestDate time.Time, now time.Time) (time.Time, bool) {
	if !ShouldContinueTesting(window, lastTestDate, now) {
		return time.Time{}, false
	}
	switch window.Confidence {
	case ConfidenceInsufficientData:
		return lastTestDate.Add(24 * time.Hour), true
	case ConfidenceLow:
		return lastTestDate.Add(12 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

func floatPointer(value float64) *float64 {
	return &value
}

func timePointer(value time.Time) *time.Time {
	return &value
}
