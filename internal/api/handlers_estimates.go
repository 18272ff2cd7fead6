package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kennelbook/internal/models"
	"github.com/terraincognita07/kennelbook/internal/services"
)

type matingWindowResponse struct {
	services.MatingWindowReport
	Unit services.ProgesteroneUnit `json:"unit"`
}

type heatIntervalResponse struct {
	Interval     services.HeatInterval `json:"interval"`
	NextHeat     *time.Time            `json:"next_heat,omitempty"`
	SkippedDates []string              `json:"skipped_dates"`
}

func (handler *Handler) GetHeatOutlook(c *fiber.Ctx) error {
	dogID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dog id")
	}
	outlook, err := handler.reproduction.HeatOutlook(dogID, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(outlook)
}

func (handler *Handler) GetMatingWindow(c *fiber.Ctx) error {
	dogID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dog id")
	}
	unit, err := parseUnitQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid unit")
	}
	report, err := handler.reproduction.MatingWindow(dogID, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(matingWindowInUnit(report, unit))
}

func (handler *Handler) GetPregnancyStatus(c *fiber.Ctx) error {
	breedingID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid breeding id")
	}
	status, err := handler.reproduction.PregnancyStatus(breedingID, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(status)
}

func (handler *Handler) GetDogReminders(c *fiber.Ctx) error {
	dogID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dog id")
	}
	drafts, err := handler.reproduction.DogReminders(dogID, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(drafts)
}

func (handler *Handler) GetKennelReminders(c *fiber.Ctx) error {
	drafts, err := handler.reproduction.KennelReminders(handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build reminders")
	}
	return c.JSON(drafts)
}

// EstimateHeatInterval works on caller-supplied dates. Unparseable dates are
// skipped and echoed back rather than failing the request.
func (handler *Handler) EstimateHeatInterval(c *fiber.Ctx) error {
	payload := heatIntervalPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.HeatIntervalOverride != nil && *payload.HeatIntervalOverride <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid heat_interval_override")
	}

	dates, failures := services.ParseCalendarDates(payload.Dates, handler.location)
	response := heatIntervalResponse{
		Interval:     services.EstimateHeatInterval(dates),
		SkippedDates: skippedInputs(failures),
	}

	dog := models.Dog{Gender: models.GenderFemale, HeatIntervalOverride: payload.HeatIntervalOverride}
	for _, date := range dates {
		dog.HeatHistory = append(dog.HeatHistory, models.HeatRecord{Date: date})
	}
	if nextHeat, ok := services.PredictNextHeat(dog, handler.now(), handler.location); ok {
		response.NextHeat = &nextHeat
	}
	return c.JSON(response)
}

func (handler *Handler) EstimateMatingWindow(c *fiber.Ctx) error {
	unit, err := parseUnitQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid unit")
	}
	payload := matingWindowPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	readings := make([]models.HormoneReading, 0, len(payload.Readings))
	for _, item := range payload.Readings {
		reading, err := handler.readingFromPayload(item, unit)
		if err != nil {
			continue
		}
		readings = append(readings, reading)
	}

	report := services.BuildMatingWindowReport(0, readings, handler.now())
	return c.JSON(matingWindowInUnit(report, unit))
}

func (handler *Handler) EstimatePregnancy(c *fiber.Ctx) error {
	progress, err := services.ParsePregnancyProgress(c.Query("mating_date"), c.Query("as_of"), handler.now(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	return c.JSON(fiber.Map{
		"progress":    progress,
		"in_due_band": progress.InDueBand,
	})
}

func matingWindowInUnit(report services.MatingWindowReport, unit services.ProgesteroneUnit) matingWindowResponse {
	if report.Estimate.PeakValue != nil {
		peak := services.ConvertProgesterone(*report.Estimate.PeakValue, services.UnitNgPerML, unit)
		report.Estimate.PeakValue = &peak
	}
	if report.Estimate.LatestValue != nil {
		latest := services.ConvertProgesterone(*report.Estimate.LatestValue, services.UnitNgPerML, unit)
		report.Estimate.LatestValue = &latest
	}
	return matingWindowResponse{MatingWindowReport: report, Unit: unit}
}

func skippedInputs(failures []error) []string {
	skipped := make([]string, 0, len(failures))
	for _, failure := range failures {
		var parseErr *services.DateParseError
		if errors.As(failure, &parseErr) {
			skipped = append(skipped, parseErr.Input)
		}
	}
	return skipped
}
