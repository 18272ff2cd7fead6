package services

import (
	"math"
	"sort"
	"time"
)

type HeatIntervalSource string

const (
	HeatIntervalStandard   HeatIntervalSource = "standard"
	HeatIntervalCalculated HeatIntervalSource = "calculated"
	HeatIntervalOverride   HeatIntervalSource = "override"
)

const (
	// StandardHeatIntervalDays is what EstimateHeatInterval reports when the
	// history is too short to measure anything.
	StandardHeatIntervalDays = 360
	// PredictionFallbackHeatIntervalDays is the interval the next-heat
	// predictor projects with when neither an override nor a measured interval
	// is available. Both values are user visible, keep them distinct.
	PredictionFallbackHeatIntervalDays = 180
)

type HeatInterval struct {
	IntervalDays int                `json:"interval_days"`
	Source       HeatIntervalSource `json:"source"`
}

// EstimateHeatInterval averages the gaps between chronologically adjacent heat
// dates. Same-day duplicates are kept and contribute zero-length gaps, which
// pulls the average down.
func EstimateHeatInterval(dates []time.Time) HeatInterval {
	if len(dates) < 2 {
		return HeatInterval{IntervalDays: StandardHeatIntervalDays, Source: HeatIntervalStandard}
	}

	sorted := make([]time.Time, 0, len(dates))
	sorted = append(sorted, dates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].After(sorted[j])
	})

	total := 0
	for index := 1; index < len(sorted); index++ {
		total += DaysBetween(sorted[index], sorted[index-1], sorted[index].Location())
	}
	average := float64(total) / float64(len(sorted)-1)

	return HeatInterval{
		IntervalDays: int(math.Round(average)),
		Source:       HeatIntervalCalculated,
	}
}
