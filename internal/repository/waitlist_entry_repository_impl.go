package repository

import (
	"errors"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type waitlistEntryRepository struct{}

func NewWaitlistEntryRepository() domainRepo.WaitlistEntryRepository {
	return &waitlistEntryRepository{}
}

func (r *waitlistEntryRepository) Create(db *gorm.DB, entry *entity.WaitlistEntry) error {
	return db.Create(entry).Error
}

func (r *waitlistEntryRepository) FindBySessionAndDog(db *gorm.DB, sessionID, dogID uuid.UUID) (*entity.WaitlistEntry, error) {
	var entry entity.WaitlistEntry
	err := db.Where("session_id = ? AND dog_id = ?", sessionID, dogID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistEntryRepository) FindEarliestBySession(db *gorm.DB, sessionID uuid.UUID) (*entity.WaitlistEntry, error) {
	var entry entity.WaitlistEntry
	err := db.Where("session_id = ?", sessionID).
		Order("joined_at ASC, id ASC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *waitlistEntryRepository) FindBySessionID(db *gorm.DB, sessionID uuid.UUID) ([]entity.WaitlistEntry, error) {
	var entries []entity.WaitlistEntry
	err := db.Preload("Dog").
		Where("session_id = ?", sessionID).
		Order("joined_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Rank derives the 1-based FIFO position from the persisted entries rather
// than a stored counter, so it can never drift from the actual rows.
func (r *waitlistEntryRepository) Rank(db *gorm.DB, entry *entity.WaitlistEntry) (int64, error) {
	var ahead int64
	err := db.Model(&entity.WaitlistEntry{}).
		Where("session_id = ?", entry.SessionID).
		Where("joined_at < ? OR (joined_at = ? AND id < ?)", entry.JoinedAt, entry.JoinedAt, entry.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

func (r *waitlistEntryRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.WaitlistEntry{})
	return result.RowsAffected, result.Error
}

func (r *waitlistEntryRepository) DeleteBySessionIDs(db *gorm.DB, sessionIDs []uuid.UUID) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return db.Where("session_id IN ?", sessionIDs).Delete(&entity.WaitlistEntry{}).Error
}
