package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dog belongs to an owner; bookings and session signups always act on behalf
// of a dog.
type Dog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Breed     string     `gorm:"type:varchar(255)" json:"breed,omitempty"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Dog) TableName() string {
	return "dogs"
}

func (d *Dog) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether userID owns this dog.
func (d *Dog) IsOwnedBy(userID uuid.UUID) bool {
	return d.OwnerID == userID
}
