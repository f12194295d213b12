package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pawbook/pawbook/config"
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/repository"
	"github.com/pawbook/pawbook/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingUsecaseForTest(t *testing.T, db *gorm.DB) BookingUsecase {
	t.Helper()
	cfg := config.BookingConfig{
		DayStart:     "09:00",
		DayEnd:       "12:00",
		SlotDuration: time.Hour,
	}
	return NewBookingUsecase(
		db,
		testLogger(),
		cfg,
		repository.NewBookingRepository(),
		repository.NewDogRepository(),
		repository.NewUserRepository(),
		newTestLockService(t),
		service.NewAuditService(testLogger(), repository.NewAuditLogRepository()),
	)
}

func TestCreateBookingConflict(t *testing.T) {
	db := setupTestDB(t)
	uc := newBookingUsecaseForTest(t, db)
	ctx := context.Background()

	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	dog := createTestDog(t, db, owner.ID, "Rex")
	date := today().AddDate(0, 0, 2).Format(dateLayout)

	first, err := uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Status)

	// Overlapping request for the same trainer and date is refused.
	_, err = uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:30",
		EndTime:     "11:30",
	})
	assert.ErrorIs(t, err, ErrBookingConflict)

	// Touching endpoints do not overlap: [10,11) then [11,12) is fine.
	_, err = uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "evaluation",
		Date:        date,
		StartTime:   "11:00",
		EndTime:     "12:00",
	})
	assert.NoError(t, err)
}

func TestCreateBookingValidation(t *testing.T) {
	db := setupTestDB(t)
	uc := newBookingUsecaseForTest(t, db)
	ctx := context.Background()

	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	other := createTestUser(t, db, entity.RoleIDOwner, "other@test.local")
	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	dog := createTestDog(t, db, owner.ID, "Rex")
	date := today().AddDate(0, 0, 2).Format(dateLayout)

	_, err := uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        "2020-01-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	assert.ErrorIs(t, err, ErrBookingInPast)

	_, err = uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "11:00",
		EndTime:     "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)

	// Booking on behalf of somebody else's dog is refused.
	_, err = uc.CreateBooking(ctx, other.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	assert.ErrorIs(t, err, ErrDogNotOwned)

	// The target user must actually be a trainer.
	_, err = uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   other.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}

func TestUpdateBookingStatus(t *testing.T) {
	db := setupTestDB(t)
	uc := newBookingUsecaseForTest(t, db)
	ctx := context.Background()

	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	stranger := createTestUser(t, db, entity.RoleIDTrainer, "stranger@test.local")
	dog := createTestDog(t, db, owner.ID, "Rex")
	date := today().AddDate(0, 0, 2).Format(dateLayout)

	booking, err := uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.NoError(t, err)

	_, err = uc.UpdateBookingStatus(ctx, stranger.ID, booking.ID, &dto.UpdateBookingStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrNotBookingTrainer)

	approved, err := uc.UpdateBookingStatus(ctx, trainer.ID, booking.ID, &dto.UpdateBookingStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)

	// The decision is one-shot: the booking already left pending.
	_, err = uc.UpdateBookingStatus(ctx, trainer.ID, booking.ID, &dto.UpdateBookingStatusRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrBookingNotPending)
}

func TestCancelBooking(t *testing.T) {
	db := setupTestDB(t)
	uc := newBookingUsecaseForTest(t, db)
	ctx := context.Background()

	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	stranger := createTestUser(t, db, entity.RoleIDOwner, "stranger@test.local")
	dog := createTestDog(t, db, owner.ID, "Rex")
	date := today().AddDate(0, 0, 2).Format(dateLayout)

	booking, err := uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.NoError(t, err)

	err = uc.CancelBooking(ctx, stranger.ID, booking.ID, &dto.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrNotBookingParticipant)

	require.NoError(t, uc.CancelBooking(ctx, owner.ID, booking.ID, &dto.CancelBookingRequest{Reason: "vet visit"}))

	err = uc.CancelBooking(ctx, owner.ID, booking.ID, &dto.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingAlreadyClosed)

	// A cancelled slot frees the trainer's time again.
	_, err = uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	assert.NoError(t, err)
}

func TestGetAvailableSlots(t *testing.T) {
	db := setupTestDB(t)
	uc := newBookingUsecaseForTest(t, db)
	ctx := context.Background()

	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	dog := createTestDog(t, db, owner.ID, "Rex")
	date := today().AddDate(0, 0, 2).Format(dateLayout)

	_, err := uc.CreateBooking(ctx, owner.ID, &dto.CreateBookingRequest{
		TrainerID:   trainer.ID,
		DogID:       dog.ID,
		ServiceType: "individual",
		Date:        date,
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	require.NoError(t, err)

	// Default 09:00-12:00 window with hourly slots: the 10:00 slot is taken.
	slots, err := uc.GetAvailableSlots(ctx, trainer.ID, &dto.AvailableSlotsRequest{Date: date})
	require.NoError(t, err)
	require.Equal(t, 2, slots.Total)
	assert.Equal(t, 9, slots.Slots[0].StartAt.Hour())
	assert.Equal(t, 11, slots.Slots[1].StartAt.Hour())

	// Overriding the window and duration narrows the enumeration.
	slots, err = uc.GetAvailableSlots(ctx, trainer.ID, &dto.AvailableSlotsRequest{
		Date:        date,
		StartTime:   "09:00",
		EndTime:     "10:00",
		SlotMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, slots.Total)

	_, err = uc.GetAvailableSlots(ctx, trainer.ID, &dto.AvailableSlotsRequest{
		Date:      date,
		StartTime: "10:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidSlotWindow)
}
