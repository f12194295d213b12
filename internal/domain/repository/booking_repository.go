package repository

import (
	"time"

	"github.com/pawbook/pawbook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	// FindBlockingByTrainerAndDate returns the bookings that occupy trainer
	// time (status pending or approved) on the day [dayStart, dayEnd).
	FindBlockingByTrainerAndDate(db *gorm.DB, trainerID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Booking, error)
	FindByTrainerID(db *gorm.DB, trainerID uuid.UUID) ([]entity.Booking, error)
	FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Booking, error)
	// UpdateStatus transitions the booking from one status to another and
	// reports affected rows; 0 means the booking left the expected state.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
	// Cancel moves a non-terminal booking to cancelled with a reason.
	Cancel(db *gorm.DB, id uuid.UUID, reason string) (int64, error)
}
