package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/kennelbook/internal/models"
)

func TestResolveHeatIntervalPrecedence(t *testing.T) {
	history := heatHistory(t, "2025-01-01", "2025-07-01")

	withOverride := models.Dog{Gender: models.GenderFemale, HeatIntervalOverride: intPointer(200), HeatHistory: history}
	if got := ResolveHeatInterval(withOverride); got.IntervalDays != 200 || got.Source != HeatIntervalOverride {
		t.Fatalf("expected override 200, got %d (%s)", got.IntervalDays, got.Source)
	}

	measured := models.Dog{Gender: models.GenderFemale, HeatHistory: history}
	if got := ResolveHeatInterval(measured); got.IntervalDays != 181 || got.Source != HeatIntervalCalculated {
		t.Fatalf("expected measured 181, got %d (%s)", got.IntervalDays, got.Source)
	}

	single := models.Dog{Gender: models.GenderFemale, HeatHistory: heatHistory(t, "2025-01-01")}
	if got := ResolveHeatInterval(single); got.IntervalDays != PredictionFallbackHeatIntervalDays {
		t.Fatalf("expected fallback %d, got %d", PredictionFallbackHeatIntervalDays, got.IntervalDays)
	}

	ignoredOverride := models.Dog{Gender: models.GenderFemale, HeatIntervalOverride: intPointer(0), HeatHistory: history}
	if got := ResolveHeatInterval(ignoredOverride); got.Source != HeatIntervalCalculated {
		t.Fatalf("expected non-positive override to be ignored, got %s", got.Source)
	}
}

func TestProjectNextHeatAddsIntervalOnce(t *testing.T) {
	latest := mustParseDay(t, "2026-01-10")
	now := mustParseDay(t, "2026-03-01")

	next, ok := ProjectNextHeat(latest, 180, now, time.UTC)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if !next.Equal(latest.AddDate(0, 0, 180)) {
		t.Fatalf("expected %s, got %s", latest.AddDate(0, 0, 180).Format("2006-01-02"), next.Format("2006-01-02"))
	}
}

func TestProjectNextHeatSkipsPastOccurrences(t *testing.T) {
	latest := mustParseDay(t, "2023-01-01")
	now := mustParseDay(t, "2026-03-01")

	next, ok := ProjectNextHeat(latest, 180, now, time.UTC)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if !next.After(now) {
		t.Fatalf("expected prediction after today, got %s", next.Format("2006-01-02"))
	}
	if gap := DaysBetween(now, next, time.UTC); gap > 180 {
		t.Fatalf("expected next heat within one interval, got %d days", gap)
	}
	if offset := DaysBetween(latest, next, time.UTC); offset%180 != 0 {
		t.Fatalf("expected a whole number of intervals, got %d days", offset)
	}
}

func TestProjectNextHeatIsStrictlyAfterToday(t *testing.T) {
	latest := mustParseDay(t, "2025-09-02")
	now := latest.AddDate(0, 0, 180).Add(15 * time.Hour)

	next, ok := ProjectNextHeat(latest, 180, now, time.UTC)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if !next.Equal(latest.AddDate(0, 0, 360)) {
		t.Fatalf("expected the heat falling today to be skipped, got %s", next.Format("2006-01-02"))
	}
}

func TestProjectNextHeatFallsBackForNonPositiveInterval(t *testing.T) {
	latest := mustParseDay(t, "2026-01-01")
	now := mustParseDay(t, "2026-01-05")

	next, ok := ProjectNextHeat(latest, 0, now, time.UTC)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if !next.Equal(latest.AddDate(0, 0, PredictionFallbackHeatIntervalDays)) {
		t.Fatalf("expected fallback projection, got %s", next.Format("2006-01-02"))
	}

	if _, ok := ProjectNextHeat(time.Time{}, 180, now, time.UTC); ok {
		t.Fatal("expected no prediction without a latest heat")
	}
}

func TestPredictNextHeat(t *testing.T) {
	now := mustParseDay(t, "2026-03-01")

	male := models.Dog{Gender: models.GenderMale, HeatHistory: heatHistory(t, "2026-01-01")}
	if _, ok := PredictNextHeat(male, now, time.UTC); ok {
		t.Fatal("expected no prediction for a male")
	}

	noHistory := models.Dog{Gender: models.GenderFemale}
	if _, ok := PredictNextHeat(noHistory, now, time.UTC); ok {
		t.Fatal("expected no prediction without heat history")
	}

	female := models.Dog{Gender: models.GenderFemale, HeatHistory: heatHistory(t, "2025-02-01", "2025-08-01")}
	next, ok := PredictNextHeat(female, now, time.UTC)
	if !ok {
		t.Fatal("expected a prediction")
	}
	if next.Format("2006-01-02") != "2026-07-29" {
		t.Fatalf("expected next heat 2026-07-29, got %s", next.Format("2006-01-02"))
	}
}

func TestBuildHeatOutlook(t *testing.T) {
	now := mustParseDay(t, "2026-03-01")
	dog := models.Dog{
		ID:          4,
		Gender:      models.GenderFemale,
		HeatHistory: heatHistory(t, "2025-06-01", "2025-12-01"),
	}

	outlook := BuildHeatOutlook(dog, now, time.UTC)
	if outlook.RecordedCycles != 2 {
		t.Fatalf("expected 2 recorded cycles, got %d", outlook.RecordedCycles)
	}
	if outlook.LastHeat == nil || outlook.LastHeat.Format("2006-01-02") != "2025-12-01" {
		t.Fatalf("expected last heat 2025-12-01, got %v", outlook.LastHeat)
	}
	if outlook.Interval.IntervalDays != 183 {
		t.Fatalf("expected interval 183, got %d", outlook.Interval.IntervalDays)
	}
	if outlook.NextHeat == nil || outlook.NextHeat.Format("2006-01-02") != "2026-06-02" {
		t.Fatalf("expected next heat 2026-06-02, got %v", outlook.NextHeat)
	}
	if outlook.DaysUntilHeat == nil || *outlook.DaysUntilHeat != 93 {
		t.Fatalf("expected 93 days until heat, got %v", outlook.DaysUntilHeat)
	}
}
