package repository

import (
	"time"

	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(db *gorm.DB, session *entity.Session) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Session, error)
	FindByTrainerID(db *gorm.DB, trainerID uuid.UUID) ([]entity.Session, error)
	FindUpcoming(db *gorm.DB, from time.Time) ([]entity.Session, error)
	// FindByScheduleAndDate locates the generated instance for a schedule on
	// the day [dayStart, dayEnd); nil when none exists.
	FindByScheduleAndDate(db *gorm.DB, scheduleID uuid.UUID, dayStart, dayEnd time.Time) (*entity.Session, error)
	FindByScheduleID(db *gorm.DB, scheduleID uuid.UUID) ([]entity.Session, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.SessionStatus) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteByIDs(db *gorm.DB, ids []uuid.UUID) error
	// DetachFromSchedule clears the schedule back-reference on sessions that
	// started before the cutoff, preserving them as historical records when
	// their schedule is hard-deleted.
	DetachFromSchedule(db *gorm.DB, scheduleID uuid.UUID, before time.Time) error
	// CountFutureApproved counts approved signups on sessions of this
	// schedule that start after now; used to guard hard deletes.
	CountFutureApproved(db *gorm.DB, scheduleID uuid.UUID, now time.Time) (int64, error)
}
