package repository

import (
	"errors"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type trainerProfileRepository struct{}

func NewTrainerProfileRepository() domainRepo.TrainerProfileRepository {
	return &trainerProfileRepository{}
}

func (r *trainerProfileRepository) Create(db *gorm.DB, profile *entity.TrainerProfile) error {
	return db.Create(profile).Error
}

func (r *trainerProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.TrainerProfile, error) {
	var profile entity.TrainerProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *trainerProfileRepository) FindAllActive(db *gorm.DB) ([]entity.TrainerProfile, error) {
	var profiles []entity.TrainerProfile
	err := db.
		Joins("JOIN users ON users.id = trainer_profiles.user_id").
		Where("users.is_active = ?", true).
		Preload("User").
		Order("trainer_profiles.business_name ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *trainerProfileRepository) Update(db *gorm.DB, profile *entity.TrainerProfile) error {
	return db.Omit("User").Save(profile).Error
}
