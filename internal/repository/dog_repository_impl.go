package repository

import (
	"errors"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dogRepository struct{}

func NewDogRepository() domainRepo.DogRepository {
	return &dogRepository{}
}

func (r *dogRepository) Create(db *gorm.DB, dog *entity.Dog) error {
	return db.Create(dog).Error
}

func (r *dogRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Dog, error) {
	var dog entity.Dog
	err := db.Where("id = ?", id).First(&dog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dog, nil
}

func (r *dogRepository) FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Dog, error) {
	var dogs []entity.Dog
	err := db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&dogs).Error
	if err != nil {
		return nil, err
	}
	return dogs, nil
}

func (r *dogRepository) Update(db *gorm.DB, dog *entity.Dog) error {
	return db.Omit("Owner").Save(dog).Error
}

func (r *dogRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Dog{})
	return result.RowsAffected, result.Error
}
