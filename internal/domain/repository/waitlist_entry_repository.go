package repository

import (
	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistEntryRepository interface {
	Create(db *gorm.DB, entry *entity.WaitlistEntry) error
	FindBySessionAndDog(db *gorm.DB, sessionID, dogID uuid.UUID) (*entity.WaitlistEntry, error)
	// FindEarliestBySession returns the FIFO head of the session waitlist,
	// nil when the waitlist is empty.
	FindEarliestBySession(db *gorm.DB, sessionID uuid.UUID) (*entity.WaitlistEntry, error)
	FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.WaitlistEntry, error)
	// Rank returns the 1-based FIFO position of the entry within its
	// session's waitlist.
	Rank(db *gorm.DB, entry *entity.WaitlistEntry) (int64, error)
	Delete(db *gorm.DB, id int64) (int64, error)
	DeleteBySessionIDs(db *gorm.DB, sessionIDs []uuid.UUID) error
}
