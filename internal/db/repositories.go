package db

import "gorm.io/gorm"

type Repositories struct {
	Dogs         *DogRepository
	Heats        *HeatRecordRepository
	Readings     *HormoneReadingRepository
	Breedings    *BreedingRepository
	Vaccinations *VaccinationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Dogs:         NewDogRepository(database),
		Heats:        NewHeatRecordRepository(database),
		Readings:     NewHormoneReadingRepository(database),
		Breedings:    NewBreedingRepository(database),
		Vaccinations: NewVaccinationRepository(database),
	}
}
