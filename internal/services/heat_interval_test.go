package services

import (
	"testing"
	"time"
)

func TestEstimateHeatInterval(t *testing.T) {
	base := mustParseDay(t, "2024-01-01")

	cases := []struct {
		name   string
		dates  []time.Time
		want   int
		source HeatIntervalSource
	}{
		{name: "no history", dates: nil, want: StandardHeatIntervalDays, source: HeatIntervalStandard},
		{name: "single heat", dates: []time.Time{base}, want: StandardHeatIntervalDays, source: HeatIntervalStandard},
		{name: "one gap", dates: []time.Time{base, base.AddDate(0, 0, 181)}, want: 181, source: HeatIntervalCalculated},
		{
			name:   "unsorted input",
			dates:  []time.Time{base.AddDate(0, 0, 366), base, base.AddDate(0, 0, 182)},
			want:   183,
			source: HeatIntervalCalculated,
		},
		{
			name:   "half day average rounds away from zero",
			dates:  []time.Time{base, base.AddDate(0, 0, 180), base.AddDate(0, 0, 361)},
			want:   181,
			source: HeatIntervalCalculated,
		},
		{
			name:   "same day duplicates pull the average down",
			dates:  []time.Time{base, base, base.AddDate(0, 0, 180)},
			want:   90,
			source: HeatIntervalCalculated,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			got := EstimateHeatInterval(testCase.dates)
			if got.IntervalDays != testCase.want {
				t.Fatalf("expected %d days, got %d", testCase.want, got.IntervalDays)
			}
			if got.Source != testCase.source {
				t.Fatalf("expected source %s, got %s", testCase.source, got.Source)
			}
		})
	}
}

func TestEstimateHeatIntervalDoesNotReorderInput(t *testing.T) {
	dates := []time.Time{mustParseDay(t, "2024-01-01"), mustParseDay(t, "2024-07-01")}
	EstimateHeatInterval(dates)
	if !dates[0].Equal(mustParseDay(t, "2024-01-01")) {
		t.Fatalf("expected caller slice untouched, got %s first", dates[0])
	}
}
