package repository

import (
	"errors"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recurringScheduleRepository struct{}

func NewRecurringScheduleRepository() domainRepo.RecurringScheduleRepository {
	return &recurringScheduleRepository{}
}

func (r *recurringScheduleRepository) Create(db *gorm.DB, schedule *entity.RecurringSchedule) error {
	return db.Create(schedule).Error
}

func (r *recurringScheduleRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.RecurringSchedule, error) {
	var schedule entity.RecurringSchedule
	err := db.Where("id = ?", id).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *recurringScheduleRepository) FindByTrainerID(db *gorm.DB, trainerID uuid.UUID) ([]entity.RecurringSchedule, error) {
	var schedules []entity.RecurringSchedule
	err := db.Where("trainer_id = ?", trainerID).Order("created_at ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *recurringScheduleRepository) FindAllActive(db *gorm.DB) ([]entity.RecurringSchedule, error) {
	var schedules []entity.RecurringSchedule
	err := db.Where("active = ?", true).Order("created_at ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *recurringScheduleRepository) Update(db *gorm.DB, schedule *entity.RecurringSchedule) error {
	return db.Omit("Trainer", "Sessions").Save(schedule).Error
}

func (r *recurringScheduleRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.RecurringSchedule{})
	return result.RowsAffected, result.Error
}
