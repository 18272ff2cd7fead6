package db

import (
	"github.com/terraincognita07/kennelbook/internal/models"
	"gorm.io/gorm"
)

type HeatRecordRepository struct {
	database *gorm.DB
}

func NewHeatRecordRepository(database *gorm.DB) *HeatRecordRepository {
	return &HeatRecordRepository{database: database}
}

func (repo *HeatRecordRepository) ListByDog(dogID uint) ([]models.HeatRecord, error) {
	records := make([]models.HeatRecord, 0)
	if err := repo.database.Where("dog_id = ?", dogID).Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *HeatRecordRepository) Create(record *models.HeatRecord) error {
	return repo.database.Create(record).Error
}
