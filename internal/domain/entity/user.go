package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the centralized authentication table for owners, trainers
// and admins.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role           Role            `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	TrainerProfile *TrainerProfile `gorm:"foreignKey:UserID" json:"trainer_profile,omitempty"`
	Dogs           []Dog           `gorm:"foreignKey:OwnerID" json:"dogs,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsTrainer reports whether the user holds the trainer role.
func (u *User) IsTrainer() bool {
	return u.RoleID == RoleIDTrainer
}

// IsOwner reports whether the user holds the dog-owner role.
func (u *User) IsOwner() bool {
	return u.RoleID == RoleIDOwner
}
