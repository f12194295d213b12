package repository

import (
	"errors"
	"time"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Dog").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindBlockingByTrainerAndDate(db *gorm.DB, trainerID uuid.UUID, dayStart, dayEnd time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.
		Where("trainer_id = ? AND date >= ? AND date < ?", trainerID, dayStart, dayEnd).
		Where("status IN ?", []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusApproved}).
		Order("start_at ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByTrainerID(db *gorm.DB, trainerID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Dog").
		Where("trainer_id = ?", trainerID).
		Order("start_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Dog").
		Joins("JOIN dogs ON dogs.id = bookings.dog_id").
		Where("dogs.owner_id = ?", ownerID).
		Order("bookings.start_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus is a compare-and-swap: the transition only applies while the
// booking is still in the expected state, which closes the race between two
// concurrent deciders.
func (r *bookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Cancel(db *gorm.DB, id uuid.UUID, reason string) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status IN ?", id, []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusApproved}).
		Updates(map[string]interface{}{
			"status":        entity.BookingStatusCancelled,
			"cancel_reason": reason,
		})
	return result.RowsAffected, result.Error
}
