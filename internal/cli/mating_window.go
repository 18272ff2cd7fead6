package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/terraincognita07/kennelbook/internal/models"
	"github.com/terraincognita07/kennelbook/internal/services"
)

type MatingWindowCmd struct {
	Readings string `arg:"" type:"existingfile" help:"JSON file with an array of {date, test_type, value} readings."`
	Unit     string `help:"Unit of the values in the file (ng/ml or nmol/l)." default:"ng/ml"`
}

type readingRecord struct {
	Date     string   `json:"date"`
	TestType string   `json:"test_type"`
	Value    *float64 `json:"value"`
}

func (c *MatingWindowCmd) Run(ctx *Context) error {
	unit, err := services.ParseProgesteroneUnit(c.Unit)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(c.Readings)
	if err != nil {
		return fmt.Errorf("read readings: %w", err)
	}
	records := make([]readingRecord, 0)
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("decode readings: %w", err)
	}

	readings, skipped := readingsFromRecords(records, unit, ctx)
	if skipped > 0 {
		fmt.Fprintf(ctx.Out, "skipped %d readings with invalid dates\n", skipped)
	}

	report := services.BuildMatingWindowReport(0, readings, ctx.today())
	printMatingWindow(ctx, report, unit)
	return nil
}

func readingsFromRecords(records []readingRecord, unit services.ProgesteroneUnit, ctx *Context) ([]models.HormoneReading, int) {
	readings := make([]models.HormoneReading, 0, len(records))
	skipped := 0
	for _, record := range records {
		date, err := services.ParseReadingTime(record.Date, ctx.location())
		if err != nil {
			skipped++
			continue
		}
		testType := strings.TrimSpace(record.TestType)
		if testType == "" {
			testType = models.TestTypeProgesterone
		}
		reading := models.HormoneReading{Date: date, TestType: testType}
		if record.Value != nil {
			converted := services.ConvertProgesterone(*record.Value, unit, services.UnitNgPerML)
			reading.Value = &converted
		}
		readings = append(readings, reading)
	}
	return readings, skipped
}

func printMatingWindow(ctx *Context, report services.MatingWindowReport, unit services.ProgesteroneUnit) {
	estimate := report.Estimate
	fmt.Fprintf(ctx.Out, "Confidence: %s\n", estimate.Confidence)
	if estimate.StartDate != nil && estimate.EndDate != nil {
		fmt.Fprintf(ctx.Out, "Mating window: %s to %s\n",
			estimate.StartDate.Format("2006-01-02 15:04"),
			estimate.EndDate.Format("2006-01-02 15:04"))
	}
	if estimate.PeakValue != nil {
		peak := services.ConvertProgesterone(*estimate.PeakValue, services.UnitNgPerML, unit)
		fmt.Fprintf(ctx.Out, "Peak progesterone: %.2f %s\n", peak, unit)
	}
	if estimate.RejectedReadings > 0 {
		fmt.Fprintf(ctx.Out, "Ignored %d invalid readings\n", estimate.RejectedReadings)
	}
	fmt.Fprintf(ctx.Out, "Guidance: %s\n", strings.Join(estimate.RecommendationCodes, ", "))
	if report.ContinueTesting && report.NextTestAt != nil {
		fmt.Fprintf(ctx.Out, "Next test: %s\n", report.NextTestAt.Format("2006-01-02 15:04"))
	}
}
