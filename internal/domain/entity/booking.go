package entity

import (
	"time"

	"github.com/pawbook/pawbook/internal/domain/timeslot"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ServiceType identifies the kind of one-on-one service a booking reserves
type ServiceType string

const (
	ServiceTypeIndividual ServiceType = "individual"
	ServiceTypeEvaluation ServiceType = "evaluation"
	ServiceTypeDaycare    ServiceType = "daycare"
)

// Booking reserves a single trainer time slot for one dog. For a given
// trainer and date, no two bookings in {pending, approved} may overlap.
type Booking struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	TrainerID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_trainer_date" json:"trainer_id"`
	DogID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"dog_id"`
	ServiceType  ServiceType   `gorm:"type:varchar(50);not null" json:"service_type"`
	Date         time.Time     `gorm:"not null;index:idx_bookings_trainer_date" json:"date"`
	StartAt      time.Time     `gorm:"not null" json:"start_at"`
	EndAt        time.Time     `gorm:"not null" json:"end_at"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CancelReason string        `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Trainer User `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Dog     Dog  `gorm:"foreignKey:DogID" json:"dog,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Interval returns the booked time range as a half-open interval.
func (b *Booking) Interval() timeslot.Interval {
	return timeslot.New(b.StartAt, b.EndAt)
}

// IsPending checks if the booking still awaits a trainer decision
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsTerminal reports whether no further status transitions are allowed.
// Approved bookings are not terminal: they may still be cancelled.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusRejected || b.Status == BookingStatusCancelled
}

// BlocksSlot reports whether the booking occupies trainer time for conflict
// checks, i.e. it is pending or approved.
func (b *Booking) BlocksSlot() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}
