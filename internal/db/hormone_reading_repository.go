package db

import (
	"github.com/terraincognita07/kennelbook/internal/models"
	"gorm.io/gorm"
)

type HormoneReadingRepository struct {
	database *gorm.DB
}

func NewHormoneReadingRepository(database *gorm.DB) *HormoneReadingRepository {
	return &HormoneReadingRepository{database: database}
}

func (repo *HormoneReadingRepository) ListByDog(dogID uint) ([]models.HormoneReading, error) {
	readings := make([]models.HormoneReading, 0)
	if err := repo.database.Where("dog_id = ?", dogID).Order("date ASC, id ASC").Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (repo *HormoneReadingRepository) Create(reading *models.HormoneReading) error {
	return repo.database.Create(reading).Error
}
