package repository

import (
	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DogRepository interface {
	Create(db *gorm.DB, dog *entity.Dog) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Dog, error)
	FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Dog, error)
	Update(db *gorm.DB, dog *entity.Dog) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
