package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/kennelbook/internal/db"
	"github.com/terraincognita07/kennelbook/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	reproduction *services.ReproductionService
	location     *time.Location
	now          func() time.Time
}

type dogPayload struct {
	Name                 string `json:"name" form:"name"`
	Breed                string `json:"breed" form:"breed"`
	Gender               string `json:"gender" form:"gender"`
	DateOfBirth          string `json:"date_of_birth" form:"date_of_birth"`
	HeatIntervalOverride *int   `json:"heat_interval_override" form:"heat_interval_override"`
}

type heatPayload struct {
	Date string `json:"date" form:"date"`
}

type hormoneReadingPayload struct {
	Date     string   `json:"date"`
	TestType string   `json:"test_type"`
	Value    *float64 `json:"value"`
}

type breedingPayload struct {
	DamID      uint   `json:"dam_id"`
	SireID     *uint  `json:"sire_id"`
	MatingDate string `json:"mating_date"`
	Notes      string `json:"notes"`
}

type vaccinationPayload struct {
	Name           string `json:"name"`
	GivenOn        string `json:"given_on"`
	IntervalMonths int    `json:"interval_months"`
}

type heatIntervalPayload struct {
	Dates                []string `json:"dates"`
	HeatIntervalOverride *int     `json:"heat_interval_override"`
}

type matingWindowPayload struct {
	Readings []hormoneReadingPayload `json:"readings"`
}

func NewHandler(database *gorm.DB, location *time.Location) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if location == nil {
		location = time.Local
	}

	repositories := db.NewRepositories(database)
	reproduction := services.NewReproductionService(services.ReproductionStores{
		Dogs:         repositories.Dogs,
		Heats:        repositories.Heats,
		Readings:     repositories.Readings,
		Breedings:    repositories.Breedings,
		Vaccinations: repositories.Vaccinations,
	}, location)

	return &Handler{
		reproduction: reproduction,
		location:     location,
		now:          time.Now,
	}, nil
}

// ReminderSource exposes the kennel-wide reminder builder for the notifier.
func (handler *Handler) ReminderSource() services.ReminderSource {
	return handler.reproduction
}
