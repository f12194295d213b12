package repository

import (
	"errors"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionSignupRepository struct{}

func NewSessionSignupRepository() domainRepo.SessionSignupRepository {
	return &sessionSignupRepository{}
}

func (r *sessionSignupRepository) Create(db *gorm.DB, signup *entity.SessionSignup) error {
	return db.Create(signup).Error
}

func (r *sessionSignupRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.SessionSignup, error) {
	var signup entity.SessionSignup
	err := db.Where("id = ?", id).First(&signup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &signup, nil
}

func (r *sessionSignupRepository) FindBlockingBySessionAndDog(db *gorm.DB, sessionID, dogID uuid.UUID) (*entity.SessionSignup, error) {
	var signup entity.SessionSignup
	err := db.
		Where("session_id = ? AND dog_id = ? AND status != ?", sessionID, dogID, entity.SignupStatusCancelled).
		First(&signup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &signup, nil
}

func (r *sessionSignupRepository) FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.SessionSignup, error) {
	var signups []entity.SessionSignup
	err := db.Preload("Dog").
		Where("session_id = ?", sessionID).
		Order("signed_up_at ASC").
		Find(&signups).Error
	if err != nil {
		return nil, err
	}
	return signups, nil
}

// CountBySessionAndStatuses is the capacity counter: admission checks run it
// inside the same transaction as the insert they guard.
func (r *sessionSignupRepository) CountBySessionAndStatuses(db *gorm.DB, sessionID uuid.UUID, statuses ...entity.SignupStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.SessionSignup{}).
		Where("session_id = ? AND status IN ?", sessionID, statuses).
		Count(&count).Error
	return count, err
}

func (r *sessionSignupRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.SignupStatus) (int64, error) {
	result := db.Model(&entity.SessionSignup{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *sessionSignupRepository) CancelActiveBySessionIDs(db *gorm.DB, sessionIDs []uuid.UUID) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return db.Model(&entity.SessionSignup{}).
		Where("session_id IN ? AND status IN ?", sessionIDs,
			[]entity.SignupStatus{entity.SignupStatusPending, entity.SignupStatusApproved}).
		Update("status", entity.SignupStatusCancelled).Error
}

func (r *sessionSignupRepository) DeleteBySessionIDs(db *gorm.DB, sessionIDs []uuid.UUID) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return db.Where("session_id IN ?", sessionIDs).Delete(&entity.SessionSignup{}).Error
}
