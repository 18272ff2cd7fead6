package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kennelbook/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps service sentinels onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDogNotFound), errors.Is(err, services.ErrBreedingNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDogNotFemale),
		errors.Is(err, services.ErrInvalidDogInput),
		errors.Is(err, services.ErrInvalidVaccination),
		errors.Is(err, services.ErrInvalidBreedingSire),
		errors.Is(err, services.ErrDateInFuture),
		errors.Is(err, services.ErrInvalidHormoneValue):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrRecordCreateFailed):
		return apiError(c, fiber.StatusConflict, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

func parseUnitQuery(c *fiber.Ctx) (services.ProgesteroneUnit, error) {
	return services.ParseProgesteroneUnit(c.Query("unit"))
}
