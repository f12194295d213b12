package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SignupStatus represents the lifecycle state of a session signup
type SignupStatus string

const (
	SignupStatusPending   SignupStatus = "pending"
	SignupStatusApproved  SignupStatus = "approved"
	SignupStatusRejected  SignupStatus = "rejected"
	SignupStatusCancelled SignupStatus = "cancelled"
)

// SessionSignup is one dog's membership in a session. A dog may hold at most
// one non-cancelled signup per session.
type SessionSignup struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"session_id"`
	DogID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"dog_id"`
	Status     SignupStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes      string       `gorm:"type:text" json:"notes,omitempty"`
	SignedUpAt time.Time    `gorm:"autoCreateTime" json:"signed_up_at"`
	UpdatedAt  time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Session Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	Dog     Dog     `gorm:"foreignKey:DogID" json:"dog,omitempty"`
}

func (SessionSignup) TableName() string {
	return "session_signups"
}

func (s *SessionSignup) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the signup still awaits a trainer decision
func (s *SessionSignup) IsPending() bool {
	return s.Status == SignupStatusPending
}

// IsApproved checks if the signup holds a confirmed seat
func (s *SessionSignup) IsApproved() bool {
	return s.Status == SignupStatusApproved
}

// CountsTowardCapacity reports whether the signup occupies admission room:
// pending signups hold a provisional seat, approved signups a confirmed one.
func (s *SessionSignup) CountsTowardCapacity() bool {
	return s.Status == SignupStatusPending || s.Status == SignupStatusApproved
}

// BlocksResignup reports whether the signup prevents the same dog from
// signing up again. Only cancelled signups free the membership.
func (s *SessionSignup) BlocksResignup() bool {
	return s.Status != SignupStatusCancelled
}
