package usecase

import (
	"context"
	"time"

	"github.com/pawbook/pawbook/internal/converter"
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/domain/repository"
	"github.com/pawbook/pawbook/internal/service"
	"github.com/pawbook/pawbook/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrScheduleNotFound    = apperror.NotFound("schedule not found")
	ErrNotScheduleTrainer  = apperror.Authorization("schedule does not belong to you")
	ErrInvalidWeekdays     = apperror.Validation("days_of_week must contain values 1 (Monday) through 7 (Sunday)")
	ErrInvalidValidity     = apperror.Validation("valid_until must not be before valid_from")
	ErrScheduleHasApproved = apperror.State("schedule still has future approved signups and cannot be deleted")
)

type ScheduleUsecase interface {
	CreateSchedule(ctx context.Context, trainerID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, trainerID, scheduleID uuid.UUID) (*dto.ScheduleResponse, error)
	GetTrainerSchedules(ctx context.Context, trainerID uuid.UUID) (*dto.ScheduleListResponse, error)
	UpdateSchedule(ctx context.Context, trainerID, scheduleID uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, trainerID, scheduleID uuid.UUID) error
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	scheduleRepo repository.RecurringScheduleRepository
	sessionRepo  repository.SessionRepository
	signupRepo   repository.SessionSignupRepository
	waitlistRepo repository.WaitlistEntryRepository
	lockService  *service.LockService
	auditService service.AuditService
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.RecurringScheduleRepository,
	sessionRepo repository.SessionRepository,
	signupRepo repository.SessionSignupRepository,
	waitlistRepo repository.WaitlistEntryRepository,
	lockService *service.LockService,
	auditService service.AuditService,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		scheduleRepo: scheduleRepo,
		sessionRepo:  sessionRepo,
		signupRepo:   signupRepo,
		waitlistRepo: waitlistRepo,
		lockService:  lockService,
		auditService: auditService,
	}
}

func (u *scheduleUsecase) CreateSchedule(ctx context.Context, trainerID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	days := entity.WeekdaySet(req.DaysOfWeek)
	startTime, endTime, validFrom, validUntil, err := parseScheduleFields(days, req.StartTime, req.EndTime, req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}

	schedule := &entity.RecurringSchedule{
		TrainerID:       trainerID,
		Title:           req.Title,
		Location:        req.Location,
		DaysOfWeek:      days,
		StartTime:       startTime,
		EndTime:         endTime,
		Capacity:        req.Capacity,
		WaitlistEnabled: req.WaitlistEnabled,
		Price:           req.Price,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		Active:          true,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &trainerID, entity.AuditActionScheduleCreate, entity.JSON{
		"schedule_id": schedule.ID.String(),
		"days":        []int(days),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Schedule created: id=%s, trainer=%s", schedule.ID, trainerID)
	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) GetSchedule(ctx context.Context, trainerID, scheduleID uuid.UUID) (*dto.ScheduleResponse, error) {
	schedule, err := u.findTrainerSchedule(ctx, trainerID, scheduleID)
	if err != nil {
		return nil, err
	}
	return converter.ScheduleToResponse(schedule), nil
}

func (u *scheduleUsecase) GetTrainerSchedules(ctx context.Context, trainerID uuid.UUID) (*dto.ScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindByTrainerID(u.db.WithContext(ctx), trainerID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for trainer %s: %+v", trainerID, err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

// UpdateSchedule edits the template only. Already generated sessions keep
// their old shape; a force regeneration picks up the new values.
func (u *scheduleUsecase) UpdateSchedule(ctx context.Context, trainerID, scheduleID uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := u.findTrainerSchedule(ctx, trainerID, scheduleID)
	if err != nil {
		return nil, err
	}

	days := entity.WeekdaySet(req.DaysOfWeek)
	startTime, endTime, validFrom, validUntil, err := parseScheduleFields(days, req.StartTime, req.EndTime, req.ValidFrom, req.ValidUntil)
	if err != nil {
		return nil, err
	}

	schedule.Title = req.Title
	schedule.Location = req.Location
	schedule.DaysOfWeek = days
	schedule.StartTime = startTime
	schedule.EndTime = endTime
	schedule.Capacity = req.Capacity
	schedule.WaitlistEnabled = req.WaitlistEnabled
	schedule.Price = req.Price
	schedule.ValidFrom = validFrom
	schedule.ValidUntil = validUntil
	schedule.Active = req.Active

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		u.log.Warnf("Failed to update schedule %s: %+v", scheduleID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &trainerID, entity.AuditActionScheduleUpdate, entity.JSON{
		"schedule_id": scheduleID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ScheduleToResponse(schedule), nil
}

// DeleteSchedule hard-deletes the template and its future sessions. Refused
// while any future session still holds approved signups. Past sessions are
// detached from the template and kept as history.
func (u *scheduleUsecase) DeleteSchedule(ctx context.Context, trainerID, scheduleID uuid.UUID) error {
	if _, err := u.findTrainerSchedule(ctx, trainerID, scheduleID); err != nil {
		return err
	}

	return u.lockService.WithLock(scheduleLockKey(scheduleID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		now := time.Now().UTC()

		approved, err := u.sessionRepo.CountFutureApproved(tx, scheduleID, now)
		if err != nil {
			return err
		}
		if approved > 0 {
			return ErrScheduleHasApproved
		}

		sessions, err := u.sessionRepo.FindByScheduleID(tx, scheduleID)
		if err != nil {
			return err
		}

		var futureIDs []uuid.UUID
		for _, s := range sessions {
			if s.StartAt.After(now) {
				futureIDs = append(futureIDs, s.ID)
			}
		}

		if err := u.waitlistRepo.DeleteBySessionIDs(tx, futureIDs); err != nil {
			return err
		}
		if err := u.signupRepo.DeleteBySessionIDs(tx, futureIDs); err != nil {
			return err
		}
		if err := u.sessionRepo.DeleteByIDs(tx, futureIDs); err != nil {
			return err
		}
		if err := u.sessionRepo.DetachFromSchedule(tx, scheduleID, now); err != nil {
			return err
		}

		if _, err := u.scheduleRepo.Delete(tx, scheduleID); err != nil {
			u.log.Warnf("Failed to delete schedule %s: %+v", scheduleID, err)
			return err
		}

		if err := u.auditService.Record(tx, &trainerID, entity.AuditActionScheduleDelete, entity.JSON{
			"schedule_id":      scheduleID.String(),
			"sessions_removed": len(futureIDs),
		}); err != nil {
			return err
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return err
		}

		u.log.Infof("Schedule deleted: id=%s, trainer=%s, future sessions removed=%d", scheduleID, trainerID, len(futureIDs))
		return nil
	})
}

func (u *scheduleUsecase) findTrainerSchedule(ctx context.Context, trainerID, scheduleID uuid.UUID) (*entity.RecurringSchedule, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %s: %+v", scheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if schedule.TrainerID != trainerID {
		return nil, ErrNotScheduleTrainer
	}
	return schedule, nil
}

func parseScheduleFields(days entity.WeekdaySet, startClock, endClock, validFromStr, validUntilStr string) (string, string, time.Time, *time.Time, error) {
	if !days.IsValid() {
		return "", "", time.Time{}, nil, ErrInvalidWeekdays
	}

	start, err := time.Parse(clockLayout, startClock)
	if err != nil {
		return "", "", time.Time{}, nil, ErrInvalidTimeFormat
	}
	end, err := time.Parse(clockLayout, endClock)
	if err != nil {
		return "", "", time.Time{}, nil, ErrInvalidTimeFormat
	}
	if !start.Before(end) {
		return "", "", time.Time{}, nil, ErrInvalidInterval
	}

	validFrom, err := parseDate(validFromStr)
	if err != nil {
		return "", "", time.Time{}, nil, err
	}

	var validUntil *time.Time
	if validUntilStr != "" {
		until, err := parseDate(validUntilStr)
		if err != nil {
			return "", "", time.Time{}, nil, err
		}
		if until.Before(validFrom) {
			return "", "", time.Time{}, nil, ErrInvalidValidity
		}
		validUntil = &until
	}

	return startClock, endClock, validFrom, validUntil, nil
}
