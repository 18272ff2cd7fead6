package cli

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/kennelbook/internal/models"
	"github.com/terraincognita07/kennelbook/internal/services"
)

type NextHeatCmd struct {
	Dates            []string `arg:"" help:"Recorded heat start dates (YYYY-MM-DD)."`
	IntervalOverride int      `help:"Fixed heat interval in days, overrides the history average." default:"0"`
}

func (c *NextHeatCmd) Run(ctx *Context) error {
	if c.IntervalOverride < 0 {
		return fmt.Errorf("interval override must be positive, got %d", c.IntervalOverride)
	}
	location := ctx.location()
	dates, failures := services.ParseCalendarDates(c.Dates, location)
	for _, failure := range failures {
		fmt.Fprintf(ctx.Out, "skipped: %v\n", failure)
	}
	if len(dates) == 0 {
		return errors.New("no valid heat dates given")
	}

	dog := models.Dog{Gender: models.GenderFemale}
	if c.IntervalOverride > 0 {
		override := c.IntervalOverride
		dog.HeatIntervalOverride = &override
	}
	for _, date := range dates {
		dog.HeatHistory = append(dog.HeatHistory, models.HeatRecord{Date: date})
	}

	outlook := services.BuildHeatOutlook(dog, ctx.today(), location)
	fmt.Fprintf(ctx.Out, "Interval: %d days (%s)\n", outlook.Interval.IntervalDays, outlook.Interval.Source)
	if outlook.LastHeat != nil {
		fmt.Fprintf(ctx.Out, "Last heat: %s\n", formatDay(*outlook.LastHeat))
	}
	if outlook.NextHeat != nil && outlook.DaysUntilHeat != nil {
		fmt.Fprintf(ctx.Out, "Next heat: %s (in %d days)\n", formatDay(*outlook.NextHeat), *outlook.DaysUntilHeat)
	}
	return nil
}
