package repository

import (
	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecurringScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.RecurringSchedule) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.RecurringSchedule, error)
	FindByTrainerID(db *gorm.DB, trainerID uuid.UUID) ([]entity.RecurringSchedule, error)
	FindAllActive(db *gorm.DB) ([]entity.RecurringSchedule, error)
	Update(db *gorm.DB, schedule *entity.RecurringSchedule) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
