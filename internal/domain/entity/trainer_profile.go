package entity

import (
	"time"

	"github.com/google/uuid"
)

// TrainerProfile holds trainer-specific data linked to a user account.
type TrainerProfile struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	BusinessName string    `gorm:"type:varchar(255)" json:"business_name"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	Specialties  string    `gorm:"type:varchar(255)" json:"specialties,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TrainerProfile) TableName() string {
	return "trainer_profiles"
}
