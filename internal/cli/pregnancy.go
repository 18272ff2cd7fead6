package cli

import (
	"fmt"

	"github.com/terraincognita07/kennelbook/internal/services"
)

type PregnancyCmd struct {
	MatingDate string `arg:"" help:"Mating date (YYYY-MM-DD)."`
	AsOf       string `help:"Evaluate progress on this date instead of today (YYYY-MM-DD)."`
}

func (c *PregnancyCmd) Run(ctx *Context) error {
	location := ctx.location()
	progress, err := services.ParsePregnancyProgress(c.MatingDate, c.AsOf, ctx.today(), location)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Mating date: %s\n", formatDay(progress.MatingDate))
	fmt.Fprintf(ctx.Out, "Day %d of %d (week %d, %.1f%%)\n", progress.DaysElapsed, services.GestationDays, progress.GestationWeek, progress.PercentComplete)
	fmt.Fprintf(ctx.Out, "Due date: %s (%d days remaining)\n", formatDay(progress.DueDate), progress.DaysRemaining)
	if progress.InDueBand {
		fmt.Fprintln(ctx.Out, "Whelping may start any day now.")
	}
	return nil
}
