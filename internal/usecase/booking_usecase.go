package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pawbook/pawbook/config"
	"github.com/pawbook/pawbook/internal/converter"
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/domain/repository"
	"github.com/pawbook/pawbook/internal/domain/timeslot"
	"github.com/pawbook/pawbook/internal/service"
	"github.com/pawbook/pawbook/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound       = apperror.NotFound("booking not found")
	ErrBookingConflict       = apperror.Conflict("requested time overlaps an existing booking for this trainer")
	ErrBookingInPast         = apperror.Validation("cannot book a past date")
	ErrBookingNotPending     = apperror.State("booking is no longer pending")
	ErrBookingAlreadyClosed  = apperror.State("booking is already rejected or cancelled")
	ErrNotBookingTrainer     = apperror.Authorization("booking does not belong to you")
	ErrNotBookingParticipant = apperror.Authorization("only the booking's owner or trainer may cancel it")
	ErrInvalidSlotWindow     = apperror.Validation("availability window must not be empty")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateBookingStatus(ctx context.Context, trainerID, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req *dto.CancelBookingRequest) error
	GetOwnerBookings(ctx context.Context, ownerID uuid.UUID) (*dto.BookingListResponse, error)
	GetTrainerBookings(ctx context.Context, trainerID uuid.UUID) (*dto.BookingListResponse, error)
	GetAvailableSlots(ctx context.Context, trainerID uuid.UUID, req *dto.AvailableSlotsRequest) (*dto.SlotListResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingCfg   config.BookingConfig
	bookingRepo  repository.BookingRepository
	dogRepo      repository.DogRepository
	userRepo     repository.UserRepository
	lockService  *service.LockService
	auditService service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingCfg config.BookingConfig,
	bookingRepo repository.BookingRepository,
	dogRepo repository.DogRepository,
	userRepo repository.UserRepository,
	lockService *service.LockService,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingCfg:   bookingCfg,
		bookingRepo:  bookingRepo,
		dogRepo:      dogRepo,
		userRepo:     userRepo,
		lockService:  lockService,
		auditService: auditService,
	}
}

// CreateBooking reserves a trainer time slot for one of the owner's dogs.
//
// The conflict check and the insert run inside one transaction guarded by the
// per-trainer-per-date lock key, so two concurrent requests for overlapping
// slots cannot both be admitted.
func (u *bookingUsecase) CreateBooking(ctx context.Context, ownerID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	dog, err := u.dogRepo.FindByID(u.db.WithContext(ctx), req.DogID)
	if err != nil {
		u.log.Warnf("Failed to find dog %s: %+v", req.DogID, err)
		return nil, err
	}
	if dog == nil {
		return nil, ErrDogNotFound
	}
	if !dog.IsOwnedBy(ownerID) {
		return nil, ErrDogNotOwned
	}

	trainer, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.TrainerID)
	if err != nil {
		u.log.Warnf("Failed to find trainer %s: %+v", req.TrainerID, err)
		return nil, err
	}
	if trainer == nil || !trainer.IsTrainer() {
		return nil, ErrTrainerNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date.Before(today()) {
		return nil, ErrBookingInPast
	}

	startAt, err := combineDateClock(date, req.StartTime)
	if err != nil {
		return nil, err
	}
	endAt, err := combineDateClock(date, req.EndTime)
	if err != nil {
		return nil, err
	}

	requested := timeslot.New(startAt, endAt)
	if !requested.IsValid() {
		return nil, ErrInvalidInterval
	}

	booking := &entity.Booking{
		TrainerID:   req.TrainerID,
		DogID:       req.DogID,
		ServiceType: entity.ServiceType(req.ServiceType),
		Date:        date,
		StartAt:     startAt,
		EndAt:       endAt,
		Status:      entity.BookingStatusPending,
	}

	lockKey := fmt.Sprintf("booking:%s:%s", req.TrainerID, req.Date)
	err = u.lockService.WithLock(lockKey, func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		dayStart, dayEnd := dayBounds(date)
		blocking, err := u.bookingRepo.FindBlockingByTrainerAndDate(tx, req.TrainerID, dayStart, dayEnd)
		if err != nil {
			u.log.Warnf("Failed to load blocking bookings for trainer %s: %+v", req.TrainerID, err)
			return err
		}

		for _, existing := range blocking {
			if requested.Overlaps(existing.Interval()) {
				return ErrBookingConflict
			}
		}

		if err := u.bookingRepo.Create(tx, booking); err != nil {
			u.log.Warnf("Failed to create booking: %+v", err)
			return err
		}

		if err := u.auditService.Record(tx, &ownerID, entity.AuditActionBookingCreate, entity.JSON{
			"booking_id": booking.ID.String(),
			"trainer_id": req.TrainerID.String(),
			"dog_id":     req.DogID.String(),
			"date":       req.Date,
		}); err != nil {
			return err
		}

		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Booking created: id=%s, trainer=%s, date=%s", booking.ID, req.TrainerID, req.Date)
	return converter.BookingToResponse(booking), nil
}

// UpdateBookingStatus lets the booking's trainer approve or reject a pending
// booking. The conditional update is the row-level guard: zero affected rows
// means the booking already left the pending state.
func (u *bookingUsecase) UpdateBookingStatus(ctx context.Context, trainerID, bookingID uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.TrainerID != trainerID {
		return nil, ErrNotBookingTrainer
	}

	newStatus := entity.BookingStatus(req.Status)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.bookingRepo.UpdateStatus(tx, bookingID, entity.BookingStatusPending, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update booking %s status: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingNotPending
	}

	action := entity.AuditActionBookingApprove
	if newStatus == entity.BookingStatusRejected {
		action = entity.AuditActionBookingReject
	}
	if err := u.auditService.Record(tx, &trainerID, action, entity.JSON{
		"booking_id": bookingID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	booking.Status = newStatus
	u.log.Infof("Booking %s: id=%s, trainer=%s", newStatus, bookingID, trainerID)
	return converter.BookingToResponse(booking), nil
}

// CancelBooking moves a pending or approved booking to cancelled. Both the
// dog's owner and the booked trainer may cancel.
func (u *bookingUsecase) CancelBooking(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, req *dto.CancelBookingRequest) error {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if booking.TrainerID != actorID && booking.Dog.OwnerID != actorID {
		return ErrNotBookingParticipant
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.bookingRepo.Cancel(tx, bookingID, req.Reason)
	if err != nil {
		u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		return err
	}
	if rows == 0 {
		return ErrBookingAlreadyClosed
	}

	if err := u.auditService.Record(tx, &actorID, entity.AuditActionBookingCancel, entity.JSON{
		"booking_id": bookingID.String(),
		"reason":     req.Reason,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Booking cancelled: id=%s, actor=%s", bookingID, actorID)
	return nil
}

func (u *bookingUsecase) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByOwnerID(u.db.WithContext(ctx), ownerID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for owner %s: %+v", ownerID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) GetTrainerBookings(ctx context.Context, trainerID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByTrainerID(u.db.WithContext(ctx), trainerID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for trainer %s: %+v", trainerID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// GetAvailableSlots enumerates the free fixed-duration slots of a trainer's
// day. Window and slot duration default from configuration and may be
// overridden per request.
func (u *bookingUsecase) GetAvailableSlots(ctx context.Context, trainerID uuid.UUID, req *dto.AvailableSlotsRequest) (*dto.SlotListResponse, error) {
	trainer, err := u.userRepo.FindByID(u.db.WithContext(ctx), trainerID)
	if err != nil {
		u.log.Warnf("Failed to find trainer %s: %+v", trainerID, err)
		return nil, err
	}
	if trainer == nil || !trainer.IsTrainer() {
		return nil, ErrTrainerNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	startClock := req.StartTime
	if startClock == "" {
		startClock = u.bookingCfg.DayStart
	}
	endClock := req.EndTime
	if endClock == "" {
		endClock = u.bookingCfg.DayEnd
	}
	slotDuration := u.bookingCfg.SlotDuration
	if req.SlotMinutes > 0 {
		slotDuration = time.Duration(req.SlotMinutes) * time.Minute
	}

	windowStart, err := combineDateClock(date, startClock)
	if err != nil {
		return nil, err
	}
	windowEnd, err := combineDateClock(date, endClock)
	if err != nil {
		return nil, err
	}

	window := timeslot.New(windowStart, windowEnd)
	if !window.IsValid() {
		return nil, ErrInvalidSlotWindow
	}

	dayStart, dayEnd := dayBounds(date)
	blocking, err := u.bookingRepo.FindBlockingByTrainerAndDate(u.db.WithContext(ctx), trainerID, dayStart, dayEnd)
	if err != nil {
		u.log.Warnf("Failed to load blocking bookings for trainer %s: %+v", trainerID, err)
		return nil, err
	}

	busy := make([]timeslot.Interval, len(blocking))
	for i, b := range blocking {
		busy[i] = b.Interval()
	}

	slots := timeslot.AvailableSlots(window, slotDuration, busy)

	return &dto.SlotListResponse{
		TrainerID: trainerID,
		Date:      req.Date,
		Slots:     converter.SlotsToResponses(slots),
		Total:     len(slots),
	}, nil
}
