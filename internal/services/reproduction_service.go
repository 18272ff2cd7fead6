package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/kennelbook/internal/models"
)

var (
	ErrDogNotFound         = errors.New("dog not found")
	ErrBreedingNotFound    = errors.New("breeding not found")
	ErrDogNotFemale        = errors.New("dog is not female")
	ErrInvalidDogInput     = errors.New("invalid dog input")
	ErrDateInFuture        = errors.New("date is in the future")
	ErrInvalidVaccination  = errors.New("invalid vaccination input")
	ErrDogLoadFailed       = errors.New("load dog failed")
	ErrRecordCreateFailed  = errors.New("create record failed")
	ErrInvalidBreedingSire = errors.New("invalid breeding sire")
)

type DogRepository interface {
	List() ([]models.Dog, error)
	FindByID(dogID uint) (models.Dog, bool, error)
	Create(dog *models.Dog) error
}

type HeatRecordRepository interface {
	ListByDog(dogID uint) ([]models.HeatRecord, error)
	Create(record *models.HeatRecord) error
}

type HormoneReadingRepository interface {
	ListByDog(dogID uint) ([]models.HormoneReading, error)
	Create(reading *models.HormoneReading) error
}

type BreedingRepository interface {
	FindByID(breedingID uint) (models.Breeding, bool, error)
	ListByDam(damID uint) ([]models.Breeding, error)
	Create(breeding *models.Breeding) error
}

type VaccinationRepository interface {
	ListByDog(dogID uint) ([]models.Vaccination, error)
	Create(vaccination *models.Vaccination) error
}

type ReproductionStores struct {
	Dogs         DogRepository
	Heats        HeatRecordRepository
	Readings     HormoneReadingRepository
	Breedings    BreedingRepository
	Vaccinations VaccinationRepository
}

// ReproductionService loads kennel records and feeds them to the estimators.
// It owns no estimation logic of its own.
type ReproductionService struct {
	stores   ReproductionStores
	location *time.Location
}

func NewReproductionService(stores ReproductionStores, location *time.Location) *ReproductionService {
	if location == nil {
		location = time.UTC
	}
	return &ReproductionService{stores: stores, location: location}
}

func (service *ReproductionService) Location() *time.Location {
	return service.location
}

type DogInput struct {
	Name                 string
	Breed                string
	Gender               string
	DateOfBirth          time.Time
	HeatIntervalOverride *int
}

type HormoneReadingInput struct {
	Date     time.Time
	TestType string
	Value    *float64
}

type BreedingInput struct {
	DamID      uint
	SireID     *uint
	MatingDate time.Time
	Notes      string
}

type VaccinationInput struct {
	Name           string
	GivenOn        time.Time
	IntervalMonths int
}

type MatingWindowReport struct {
	DogID           uint                 `json:"dog_id"`
	Estimate        MatingWindowEstimate `json:"estimate"`
	ContinueTesting bool                 `json:"continue_testing"`
	NextTestAt      *time.Time           `json:"next_test_at,omitempty"`
}

type PregnancyStatus struct {
	Breeding  models.Breeding   `json:"breeding"`
	Progress  PregnancyProgress `json:"progress"`
	InDueBand bool              `json:"in_due_band"`
}

func (service *ReproductionService) ListDogs() ([]models.Dog, error) {
	return service.stores.Dogs.List()
}

func (service *ReproductionService) CreateDog(input DogInput, now time.Time) (models.Dog, error) {
	name := strings.TrimSpace(input.Name)
	gender := strings.ToLower(strings.TrimSpace(input.Gender))
	if name == "" || input.DateOfBirth.IsZero() {
		return models.Dog{}, ErrInvalidDogInput
	}
	if gender != models.GenderMale && gender != models.GenderFemale {
		return models.Dog{}, ErrInvalidDogInput
	}
	if input.HeatIntervalOverride != nil && *input.HeatIntervalOverride <= 0 {
		return models.Dog{}, ErrInvalidDogInput
	}
	dateOfBirth := NormalizeDate(input.DateOfBirth, service.location)
	if dateOfBirth.After(NormalizeDate(now, service.location)) {
		return models.Dog{}, ErrDateInFuture
	}

	dog := models.Dog{
		Name:                 name,
		Breed:                strings.TrimSpace(input.Breed),
		Gender:               gender,
		DateOfBirth:          dateOfBirth,
		HeatIntervalOverride: input.HeatIntervalOverride,
	}
	if err := service.stores.Dogs.Create(&dog); err != nil {
		return models.Dog{}, ErrRecordCreateFailed
	}
	return dog, nil
}

// LoadDog returns the dog with its heat history attached.
func (service *ReproductionService) LoadDog(dogID uint) (models.Dog, error) {
	dog, found, err := service.stores.Dogs.FindByID(dogID)
	if err != nil {
		return models.Dog{}, ErrDogLoadFailed
	}
	if !found {
		return models.Dog{}, ErrDogNotFound
	}
	heats, err := service.stores.Heats.ListByDog(dogID)
	if err != nil {
		return models.Dog{}, ErrDogLoadFailed
	}
	dog.HeatHistory = heats
	return dog, nil
}

func (service *ReproductionService) RecordHeat(dogID uint, day time.Time, now time.Time) (models.HeatRecord, error) {
	dog, err := service.LoadDog(dogID)
	if err != nil {
		return models.HeatRecord{}, err
	}
	if !dog.IsFemale() {
		return models.HeatRecord{}, ErrDogNotFemale
	}
	date := NormalizeDate(day, service.location)
	if date.After(NormalizeDate(now, service.location)) {
		return models.HeatRecord{}, ErrDateInFuture
	}

	record := models.HeatRecord{DogID: dogID, Date: date}
	if err := service.stores.Heats.Create(&record); err != nil {
		return models.HeatRecord{}, ErrRecordCreateFailed
	}
	return record, nil
}

// RecordHormoneReading stores values in ng/ml; callers convert first.
func (service *ReproductionService) RecordHormoneReading(dogID uint, input HormoneReadingInput, now time.Time) (models.HormoneReading, error) {
	dog, err := service.LoadDog(dogID)
	if err != nil {
		return models.HormoneReading{}, err
	}
	if !dog.IsFemale() {
		return models.HormoneReading{}, ErrDogNotFemale
	}
	if NormalizeDate(input.Date, service.location).After(NormalizeDate(now, service.location)) {
		return models.HormoneReading{}, ErrDateInFuture
	}

	testType := strings.ToLower(strings.TrimSpace(input.TestType))
	if testType == "" {
		testType = models.TestTypeProgesterone
	}
	if testType != models.TestTypeProgesterone {
		testType = models.TestTypeOther
	}

	reading := models.HormoneReading{
		DogID:    dogID,
		Date:     input.Date,
		TestType: testType,
		Value:    input.Value,
	}
	if reading.Value != nil {
		if _, err := ValidateHormoneReading(reading); err != nil {
			return models.HormoneReading{}, err
		}
	}
	if err := service.stores.Readings.Create(&reading); err != nil {
		return models.HormoneReading{}, ErrRecordCreateFailed
	}
	return reading, nil
}

func (service *ReproductionService) RecordBreeding(input BreedingInput, now time.Time) (models.Breeding, error) {
	dam, err := service.LoadDog(input.DamID)
	if err != nil {
		return models.Breeding{}, err
	}
	if !dam.IsFemale() {
		return models.Breeding{}, ErrDogNotFemale
	}
	if input.SireID != nil {
		sire, found, err := service.stores.Dogs.FindByID(*input.SireID)
		if err != nil {
			return models.Breeding{}, ErrDogLoadFailed
		}
		if !found || sire.Gender != models.GenderMale {
			return models.Breeding{}, ErrInvalidBreedingSire
		}
	}
	matingDate := NormalizeDate(input.MatingDate, service.location)
	if matingDate.After(NormalizeDate(now, service.location)) {
		return models.Breeding{}, ErrDateInFuture
	}

	breeding := models.Breeding{
		DamID:      input.DamID,
		SireID:     input.SireID,
		MatingDate: matingDate,
		Notes:      strings.TrimSpace(input.Notes),
	}
	if err := service.stores.Breedings.Create(&breeding); err != nil {
		return models.Breeding{}, ErrRecordCreateFailed
	}
	return breeding, nil
}

func (service *ReproductionService) RecordVaccination(dogID uint, input VaccinationInput, now time.Time) (models.Vaccination, error) {
	if _, err := service.LoadDog(dogID); err != nil {
		return models.Vaccination{}, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.GivenOn.IsZero() || input.IntervalMonths < 0 {
		return models.Vaccination{}, ErrInvalidVaccination
	}
	givenOn := NormalizeDate(input.GivenOn, service.location)
	if givenOn.After(NormalizeDate(now, service.location)) {
		return models.Vaccination{}, ErrDateInFuture
	}
	intervalMonths := input.IntervalMonths
	if intervalMonths == 0 {
		intervalMonths = models.DefaultVaccinationIntervalMonths
	}

	vaccination := models.Vaccination{
		DogID:          dogID,
		Name:           name,
		GivenOn:        givenOn,
		IntervalMonths: intervalMonths,
	}
	if err := service.stores.Vaccinations.Create(&vaccination); err != nil {
		return models.Vaccination{}, ErrRecordCreateFailed
	}
	return vaccination, nil
}

func (service *ReproductionService) HeatOutlook(dogID uint, now time.Time) (HeatOutlook, error) {
	dog, err := service.LoadDog(dogID)
	if err != nil {
		return HeatOutlook{}, err
	}
	return BuildHeatOutlook(dog, now, service.location), nil
}

func (service *ReproductionService) MatingWindow(dogID uint, now time.Time) (MatingWindowReport, error) {
	dog, err := service.LoadDog(dogID)
	if err != nil {
		return MatingWindowReport{}, err
	}
	if !dog.IsFemale() {
		return MatingWindowReport{}, ErrDogNotFemale
	}
	readings, err := service.stores.Readings.ListByDog(dogID)
	if err != nil {
		return MatingWindowReport{}, ErrDogLoadFailed
	}
	return BuildMatingWindowReport(dogID, CurrentCycleReadings(readings, dog.HeatHistory, service.location), now), nil
}

// BuildMatingWindowReport estimates from the latest testing series only.
func BuildMatingWindowReport(dogID uint, readings []models.HormoneReading, now time.Time) MatingWindowReport {
	estimate := EstimateMatingWindow(latestReadingSeries(readings))
	report := MatingWindowReport{DogID: dogID, Estimate: estimate}
	if estimate.LastTestDate == nil {
		report.ContinueTesting = true
		return report
	}
	report.ContinueTesting = ShouldContinueTesting(estimate, *estimate.LastTestDate, now)
	if nextTest, ok := NextTestRecommendation(estimate, *estimate.LastTestDate, now); ok {
		report.NextTestAt = &nextTest
	}
	return report
}

func (service *ReproductionService) PregnancyStatus(breedingID uint, now time.Time) (PregnancyStatus, error) {
	breeding, found, err := service.stores.Breedings.FindByID(breedingID)
	if err != nil {
		return PregnancyStatus{}, ErrDogLoadFailed
	}
	if !found {
		return PregnancyStatus{}, ErrBreedingNotFound
	}
	progress := PregnancyProgressAt(breeding.MatingDate, now, service.location)
	return PregnancyStatus{
		Breeding:  breeding,
		Progress:  progress,
		InDueBand: progress.InDueBand,
	}, nil
}

func (service *ReproductionService) DogReminders(dogID uint, now time.Time) ([]ReminderDraft, error) {
	dog, err := service.LoadDog(dogID)
	if err != nil {
		return nil, err
	}
	input, err := service.reminderInput(dog)
	if err != nil {
		return nil, err
	}
	return BuildDogReminders(input, now, service.location), nil
}

// KennelReminders builds drafts for every dog. A dog whose records fail to
// load is logged and skipped.
func (service *ReproductionService) KennelReminders(now time.Time) ([]ReminderDraft, error) {
	dogs, err := service.stores.Dogs.List()
	if err != nil {
		return nil, err
	}

	drafts := make([]ReminderDraft, 0)
	for _, listed := range dogs {
		dog, err := service.LoadDog(listed.ID)
		if err != nil {
			log.Printf("reminders: load dog %d failed: %v", listed.ID, err)
			continue
		}
		input, err := service.reminderInput(dog)
		if err != nil {
			log.Printf("reminders: load records for dog %d failed: %v", dog.ID, err)
			continue
		}
		drafts = append(drafts, BuildDogReminders(input, now, service.location)...)
	}
	SortReminderDrafts(drafts)
	return drafts, nil
}

func (service *ReproductionService) reminderInput(dog models.Dog) (DogReminderInput, error) {
	input := DogReminderInput{Dog: dog}

	vaccinations, err := service.stores.Vaccinations.ListByDog(dog.ID)
	if err != nil {
		return DogReminderInput{}, ErrDogLoadFailed
	}
	input.Vaccinations = vaccinations

	if !dog.IsFemale() {
		return input, nil
	}
	breedings, err := service.stores.Breedings.ListByDam(dog.ID)
	if err != nil {
		return DogReminderInput{}, ErrDogLoadFailed
	}
	readings, err := service.stores.Readings.ListByDog(dog.ID)
	if err != nil {
		return DogReminderInput{}, ErrDogLoadFailed
	}
	input.Breedings = breedings
	input.Readings = readings
	return input, nil
}
