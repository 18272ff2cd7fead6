package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kennelbook/internal/models"
	"github.com/terraincognita07/kennelbook/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListDogs(c *fiber.Ctx) error {
	dogs, err := handler.reproduction.ListDogs()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch dogs")
	}
	return c.JSON(dogs)
}

func (handler *Handler) CreateDog(c *fiber.Ctx) error {
	payload := dogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	dateOfBirth, err := services.ParseCalendarDate(payload.DateOfBirth, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date_of_birth")
	}

	dog, err := handler.reproduction.CreateDog(services.DogInput{
		Name:                 payload.Name,
		Breed:                payload.Breed,
		Gender:               payload.Gender,
		DateOfBirth:          dateOfBirth,
		HeatIntervalOverride: payload.HeatIntervalOverride,
	}, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dog)
}

func (handler *Handler) GetDog(c *fiber.Ctx) error {
	dogID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dog id")
	}
	dog, err := handler.reproduction.LoadDog(dogID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(dog)
}

func (handler *Handler) RecordHeat(c *fiber.Ctx) error {
	dogID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dog id")
	}
	payload := heatPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	day, err := services.ParseCalendarDate(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, err := handler.reproduction.RecordHeat(dogID, day, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) RecordHormoneReading(c *fiber.Ctx) error {
	dogID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dog id")
	}
	unit, err := parseUnitQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid unit")
	}
	payload := hormoneReadingPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	reading, err := handler.readingFromPayload(payload, unit)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	stored, err := handler.reproduction.RecordHormoneReading(dogID, services.HormoneReadingInput{
		Date:     reading.Date,
		TestType: reading.TestType,
		Value:    reading.Value,
	}, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (handler *Handler) RecordVaccination(c *fiber.Ctx) error {
	dogID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid dog id")
	}
	payload := vaccinationPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	givenOn, err := services.ParseCalendarDate(payload.GivenOn, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid given_on")
	}

	vaccination, err := handler.reproduction.RecordVaccination(dogID, services.VaccinationInput{
		Name:           payload.Name,
		GivenOn:        givenOn,
		IntervalMonths: payload.IntervalMonths,
	}, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vaccination)
}

func (handler *Handler) RecordBreeding(c *fiber.Ctx) error {
	payload := breedingPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	matingDate, err := services.ParseCalendarDate(payload.MatingDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid mating_date")
	}

	breeding, err := handler.reproduction.RecordBreeding(services.BreedingInput{
		DamID:      payload.DamID,
		SireID:     payload.SireID,
		MatingDate: matingDate,
		Notes:      payload.Notes,
	}, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(breeding)
}

// readingFromPayload converts the value to ng/ml, the only unit the
// estimators work in.
func (handler *Handler) readingFromPayload(payload hormoneReadingPayload, unit services.ProgesteroneUnit) (models.HormoneReading, error) {
	date, err := services.ParseReadingTime(payload.Date, handler.location)
	if err != nil {
		return models.HormoneReading{}, err
	}
	testType := payload.TestType
	if testType == "" {
		testType = models.TestTypeProgesterone
	}
	reading := models.HormoneReading{Date: date, TestType: testType}
	if payload.Value != nil {
		converted := services.ConvertProgesterone(*payload.Value, unit, services.UnitNgPerML)
		reading.Value = &converted
	}
	return reading, nil
}
