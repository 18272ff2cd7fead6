package db

import (
	"github.com/terraincognita07/kennelbook/internal/models"
	"gorm.io/gorm"
)

type BreedingRepository struct {
	database *gorm.DB
}

func NewBreedingRepository(database *gorm.DB) *BreedingRepository {
	return &BreedingRepository{database: database}
}

func (repo *BreedingRepository) FindByID(breedingID uint) (models.Breeding, bool, error) {
	breeding := models.Breeding{}
	result := repo.database.Where("id = ?", breedingID).Limit(1).Find(&breeding)
	if result.Error != nil {
		return models.Breeding{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Breeding{}, false, nil
	}
	return breeding, true, nil
}

func (repo *BreedingRepository) ListByDam(damID uint) ([]models.Breeding, error) {
	breedings := make([]models.Breeding, 0)
	if err := repo.database.Where("dam_id = ?", damID).Order("mating_date ASC, id ASC").Find(&breedings).Error; err != nil {
		return nil, err
	}
	return breedings, nil
}

func (repo *BreedingRepository) Create(breeding *models.Breeding) error {
	return repo.database.Create(breeding).Error
}
