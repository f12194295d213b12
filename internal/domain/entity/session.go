package entity

import (
	"time"

	"github.com/pawbook/pawbook/internal/domain/timeslot"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStatus represents the lifecycle state of a group session
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session is a capacity-bound group event run by a trainer. ScheduleID is
// set only on instances produced by the recurring-schedule generator; the
// (schedule_id, date) pair is the generator's idempotency key.
type Session struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	TrainerID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"trainer_id"`
	ScheduleID      *uuid.UUID    `gorm:"type:uuid;index;uniqueIndex:idx_sessions_schedule_instance" json:"schedule_id,omitempty"`
	Title           string        `gorm:"type:varchar(255);not null" json:"title"`
	Location        string        `gorm:"type:varchar(255)" json:"location,omitempty"`
	Date            time.Time     `gorm:"not null;uniqueIndex:idx_sessions_schedule_instance" json:"date"`
	StartAt         time.Time     `gorm:"not null;index" json:"start_at"`
	EndAt           time.Time     `gorm:"not null" json:"end_at"`
	Capacity        int           `gorm:"not null" json:"capacity"`
	WaitlistEnabled bool          `gorm:"not null;default:false" json:"waitlist_enabled"`
	Price           float64       `gorm:"not null;default:0" json:"price"`
	Status          SessionStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Trainer  User            `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Signups  []SessionSignup `gorm:"foreignKey:SessionID" json:"signups,omitempty"`
	Waitlist []WaitlistEntry `gorm:"foreignKey:SessionID" json:"waitlist,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Interval returns the session time range as a half-open interval.
func (s *Session) Interval() timeslot.Interval {
	return timeslot.New(s.StartAt, s.EndAt)
}

// CanAcceptSignups reports whether new signups or waitlist entries are
// admissible: the session must still be scheduled and must not have started.
func (s *Session) CanAcceptSignups(now time.Time) bool {
	return s.Status == SessionStatusScheduled && now.Before(s.StartAt)
}

// IsTerminal reports whether the session reached a final state.
func (s *Session) IsTerminal() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusCancelled
}

// IsGenerated reports whether this instance came from a recurring schedule.
func (s *Session) IsGenerated() bool {
	return s.ScheduleID != nil
}
