package repository

import (
	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionSignupRepository interface {
	Create(db *gorm.DB, signup *entity.SessionSignup) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.SessionSignup, error)
	// FindBlockingBySessionAndDog returns the dog's non-cancelled signup for
	// the session, nil when the dog holds none.
	FindBlockingBySessionAndDog(db *gorm.DB, sessionID, dogID uuid.UUID) (*entity.SessionSignup, error)
	FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.SessionSignup, error)
	CountBySessionAndStatuses(db *gorm.DB, sessionID uuid.UUID, statuses ...entity.SignupStatus) (int64, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.SignupStatus) (int64, error)
	// CancelActiveBySessionIDs cascade-cancels every pending or approved
	// signup on the given sessions.
	CancelActiveBySessionIDs(db *gorm.DB, sessionIDs []uuid.UUID) error
	// DeleteBySessionIDs removes signup rows outright; only used when the
	// sessions themselves are being hard-deleted.
	DeleteBySessionIDs(db *gorm.DB, sessionIDs []uuid.UUID) error
}
