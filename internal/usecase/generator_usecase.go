package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	ErrScheduleInactive = apperror.Validation("schedule is not active")
	ErrInvalidRange     = apperror.Validation("range end must not be before range start")
)

type GeneratorUsecase interface {
	// Generate expands one schedule over [rangeStart, rangeEnd] (inclusive
	// calendar days). Actor is nil when invoked from the CLI.
	Generate(ctx context.Context, actorID *uuid.UUID, scheduleID uuid.UUID, rangeStart, rangeEnd time.Time, force bool) (*dto.GenerateResponse, error)
	// GenerateForTrainer is the HTTP entry point: it verifies schedule
	// ownership before expanding.
	GenerateForTrainer(ctx context.Context, trainerID, scheduleID uuid.UUID, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	// GenerateAll expands every active schedule; used by the batch CLI.
	// Schedules that fail are skipped and reported in the joined error
	// alongside the results of the ones that succeeded.
	GenerateAll(ctx context.Context, rangeStart, rangeEnd time.Time, force bool) ([]dto.GenerateResponse, error)
}

type generatorUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	lookaheadDays int
	scheduleRepo  repository.RecurringScheduleRepository
	sessionRepo   repository.SessionRepository
	signupRepo    repository.SessionSignupRepository
	waitlistRepo  repository.WaitlistEntryRepository
	lockService   *service.LockService
	auditService  service.AuditService
}

func NewGeneratorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	lookaheadDays int,
	scheduleRepo repository.RecurringScheduleRepository,
	sessionRepo repository.SessionRepository,
	signupRepo repository.SessionSignupRepository,
	waitlistRepo repository.WaitlistEntryRepository,
	lockService *service.LockService,
	auditService service.AuditService,
) GeneratorUsecase {
	return &generatorUsecase{
		db:            db,
		log:           log,
		lookaheadDays: lookaheadDays,
		scheduleRepo:  scheduleRepo,
		sessionRepo:   sessionRepo,
		signupRepo:    signupRepo,
		waitlistRepo:  waitlistRepo,
		lockService:   lockService,
		auditService:  auditService,
	}
}

// planOccurrences lists the calendar days in [rangeStart, rangeEnd] on which
// the schedule produces an instance. Pure date arithmetic, no storage.
func planOccurrences(schedule *entity.RecurringSchedule, rangeStart, rangeEnd time.Time) []time.Time {
	var dates []time.Time
	dayStart, _ := dayBounds(rangeStart)
	dayEnd, _ := dayBounds(rangeEnd)

	for date := dayStart; !date.After(dayEnd); date = date.AddDate(0, 0, 1) {
		if schedule.AppliesOn(date) {
			dates = append(dates, date)
		}
	}
	return dates
}

// Generate is idempotent: a rerun over the same range skips every date that
// already has an instance. With force, existing instances in the range are
// removed together with their memberships and rebuilt from the current
// template values.
func (u *generatorUsecase) Generate(ctx context.Context, actorID *uuid.UUID, scheduleID uuid.UUID, rangeStart, rangeEnd time.Time, force bool) (*dto.GenerateResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %s: %+v", scheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if !schedule.Active {
		return nil, ErrScheduleInactive
	}
	if rangeEnd.Before(rangeStart) {
		return nil, ErrInvalidRange
	}

	result := &dto.GenerateResponse{
		ScheduleID: scheduleID,
		RangeStart: rangeStart.Format(dateLayout),
		RangeEnd:   rangeEnd.Format(dateLayout),
	}

	err = u.lockService.WithLock(scheduleLockKey(scheduleID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		for _, date := range planOccurrences(schedule, rangeStart, rangeEnd) {
			created, err := u.generateInstance(tx, schedule, date, force)
			if err != nil {
				return err
			}
			if created {
				result.Created++
			} else {
				result.Skipped++
			}
		}

		if err := u.auditService.Record(tx, actorID, entity.AuditActionScheduleGenerate, entity.JSON{
			"schedule_id": scheduleID.String(),
			"range_start": result.RangeStart,
			"range_end":   result.RangeEnd,
			"force":       force,
			"created":     result.Created,
			"skipped":     result.Skipped,
		}); err != nil {
			return err
		}

		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Schedule %s generated: created=%d, skipped=%d, force=%t", scheduleID, result.Created, result.Skipped, force)
	return result, nil
}

// generateInstance handles a single occurrence date. Returns true when a new
// session was created, false when the date was skipped.
func (u *generatorUsecase) generateInstance(tx *gorm.DB, schedule *entity.RecurringSchedule, date time.Time, force bool) (bool, error) {
	dayStart, dayEnd := dayBounds(date)
	existing, err := u.sessionRepo.FindByScheduleAndDate(tx, schedule.ID, dayStart, dayEnd)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if !force {
			return false, nil
		}
		// Force: rebuild the instance from the current template. The old
		// instance and its memberships go away with it.
		ids := []uuid.UUID{existing.ID}
		if err := u.waitlistRepo.DeleteBySessionIDs(tx, ids); err != nil {
			return false, err
		}
		if err := u.signupRepo.DeleteBySessionIDs(tx, ids); err != nil {
			return false, err
		}
		if _, err := u.sessionRepo.Delete(tx, existing.ID); err != nil {
			return false, err
		}
	}

	startAt, err := combineDateClock(date, schedule.StartTime)
	if err != nil {
		return false, err
	}
	endAt, err := combineDateClock(date, schedule.EndTime)
	if err != nil {
		return false, err
	}

	scheduleID := schedule.ID
	session := &entity.Session{
		TrainerID:       schedule.TrainerID,
		ScheduleID:      &scheduleID,
		Title:           schedule.Title,
		Location:        schedule.Location,
		Date:            date,
		StartAt:         startAt,
		EndAt:           endAt,
		Capacity:        schedule.Capacity,
		WaitlistEnabled: schedule.WaitlistEnabled,
		Price:           schedule.Price,
		Status:          entity.SessionStatusScheduled,
	}

	if err := u.sessionRepo.Create(tx, session); err != nil {
		u.log.Warnf("Failed to create generated session for schedule %s on %s: %+v", schedule.ID, date.Format(dateLayout), err)
		return false, err
	}

	return true, nil
}

func (u *generatorUsecase) GenerateForTrainer(ctx context.Context, trainerID, scheduleID uuid.UUID, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if schedule.TrainerID != trainerID {
		return nil, ErrNotScheduleTrainer
	}

	days := req.Days
	if days <= 0 {
		days = u.lookaheadDays
	}

	rangeStart := today()
	rangeEnd := rangeStart.AddDate(0, 0, days-1)

	return u.Generate(ctx, &trainerID, scheduleID, rangeStart, rangeEnd, req.Force)
}

func (u *generatorUsecase) GenerateAll(ctx context.Context, rangeStart, rangeEnd time.Time, force bool) ([]dto.GenerateResponse, error) {
	schedules, err := u.scheduleRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list active schedules: %+v", err)
		return nil, err
	}

	// A broken schedule must not starve the rest of the sweep. Each schedule
	// commits on its own, so failures are collected and reported at the end.
	results := make([]dto.GenerateResponse, 0, len(schedules))
	var errs []error
	for _, schedule := range schedules {
		result, err := u.Generate(ctx, nil, schedule.ID, rangeStart, rangeEnd, force)
		if err != nil {
			u.log.Warnf("Failed to generate schedule %s: %+v", schedule.ID, err)
			errs = append(errs, fmt.Errorf("schedule %s: %w", schedule.ID, err))
			continue
		}
		results = append(results, *result)
	}

	return results, errors.Join(errs...)
}

func scheduleLockKey(scheduleID uuid.UUID) string {
	return fmt.Sprintf("schedule:%s", scheduleID)
}
