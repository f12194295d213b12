package entity

import (
	"time"

	"github.com/google/uuid"
)

// WaitlistEntry queues a dog for a full session. Entries are FIFO by
// JoinedAt with the auto-increment ID as tie-break; position is derived at
// read time, never stored.
type WaitlistEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	DogID     uuid.UUID `gorm:"type:uuid;not null;index" json:"dog_id"`
	JoinedAt  time.Time `gorm:"autoCreateTime;index" json:"joined_at"`

	// Relationships
	Session Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	Dog     Dog     `gorm:"foreignKey:DogID" json:"dog,omitempty"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
