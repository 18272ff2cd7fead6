package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/kennelbook/internal/models"
)

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func mustParseInstant(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("parse instant %q: %v", raw, err)
	}
	return parsed
}

func mustLoadTestLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	location, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("time zone %s unavailable: %v", name, err)
	}
	return location
}

func progesteroneReading(t *testing.T, raw string, value float64) models.HormoneReading {
	t.Helper()
	return models.HormoneReading{
		Date:     mustParseInstant(t, raw),
		TestType: models.TestTypeProgesterone,
		Value:    &value,
	}
}

func heatHistory(t *testing.T, days ...string) []models.HeatRecord {
	t.Helper()
	records := make([]models.HeatRecord, 0, len(days))
	for _, day := range days {
		records = append(records, models.HeatRecord{Date: mustParseDay(t, day)})
	}
	return records
}

func intPointer(value int) *int {
	return &value
}
