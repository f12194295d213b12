package repository

import (
	"errors"
	"time"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := db.Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByTrainerID(db *gorm.DB, trainerID uuid.UUID) ([]entity.Session, error) {
	var sessions []entity.Session
	err := db.Where("trainer_id = ?", trainerID).Order("start_at ASC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindUpcoming(db *gorm.DB, from time.Time) ([]entity.Session, error) {
	var sessions []entity.Session
	err := db.
		Where("status = ? AND start_at >= ?", entity.SessionStatusScheduled, from).
		Order("start_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindByScheduleAndDate(db *gorm.DB, scheduleID uuid.UUID, dayStart, dayEnd time.Time) (*entity.Session, error) {
	var session entity.Session
	err := db.
		Where("schedule_id = ? AND date >= ? AND date < ?", scheduleID, dayStart, dayEnd).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByScheduleID(db *gorm.DB, scheduleID uuid.UUID) ([]entity.Session, error) {
	var sessions []entity.Session
	err := db.Where("schedule_id = ?", scheduleID).Order("start_at ASC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpdateStatus only applies the transition while the session is still in the
// expected state.
func (r *sessionRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.SessionStatus) (int64, error) {
	result := db.Model(&entity.Session{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Session{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteByIDs(db *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id IN ?", ids).Delete(&entity.Session{}).Error
}

func (r *sessionRepository) DetachFromSchedule(db *gorm.DB, scheduleID uuid.UUID, before time.Time) error {
	return db.Model(&entity.Session{}).
		Where("schedule_id = ? AND start_at < ?", scheduleID, before).
		Update("schedule_id", nil).Error
}

func (r *sessionRepository) CountFutureApproved(db *gorm.DB, scheduleID uuid.UUID, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.SessionSignup{}).
		Joins("JOIN sessions ON sessions.id = session_signups.session_id").
		Where("sessions.schedule_id = ? AND sessions.start_at > ?", scheduleID, now).
		Where("session_signups.status = ?", entity.SignupStatusApproved).
		Count(&count).Error
	return count, err
}
