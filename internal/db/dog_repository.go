package db

import (
	"github.com/terraincognita07/kennelbook/internal/models"
	"gorm.io/gorm"
)

type DogRepository struct {
	database *gorm.DB
}

func NewDogRepository(database *gorm.DB) *DogRepository {
	return &DogRepository{database: database}
}

func (repo *DogRepository) List() ([]models.Dog, error) {
	dogs := make([]models.Dog, 0)
	if err := repo.database.Order("name ASC, id ASC").Find(&dogs).Error; err != nil {
		return nil, err
	}
	return dogs, nil
}

func (repo *DogRepository) FindByID(dogID uint) (models.Dog, bool, error) {
	dog := models.Dog{}
	result := repo.database.Where("id = ?", dogID).Limit(1).Find(&dog)
	if result.Error != nil {
		return models.Dog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Dog{}, false, nil
	}
	return dog, true, nil
}

func (repo *DogRepository) Create(dog *models.Dog) error {
	return repo.database.Create(dog).Error
}
