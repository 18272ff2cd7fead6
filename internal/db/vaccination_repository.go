package db

import (
	"github.com/terraincognita07/kennelbook/internal/models"
	"gorm.io/gorm"
)

type VaccinationRepository struct {
	database *gorm.DB
}

func NewVaccinationRepository(database *gorm.DB) *VaccinationRepository {
	return &VaccinationRepository{database: database}
}

func (repo *VaccinationRepository) ListByDog(dogID uint) ([]models.Vaccination, error) {
	vaccinations := make([]models.Vaccination, 0)
	if err := repo.database.Where("dog_id = ?", dogID).Order("given_on ASC, id ASC").Find(&vaccinations).Error; err != nil {
		return nil, err
	}
	return vaccinations, nil
}

func (repo *VaccinationRepository) Create(vaccination *models.Vaccination) error {
	return repo.database.Create(vaccination).Error
}
