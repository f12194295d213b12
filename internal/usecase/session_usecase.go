package usecase

import (
	"context"
	"fmt"
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
	ErrSessionNotFound      = apperror.NotFound("session not found")
	ErrSessionInPast        = apperror.Validation("cannot schedule a session in the past")
	ErrSessionAlreadyClosed = apperror.State("session is already completed or cancelled")
	ErrNotSessionTrainer    = apperror.Authorization("session does not belong to you")
	ErrSessionHasSignups    = apperror.State("session still has approved signups and cannot be deleted")
)

type SessionUsecase interface {
	CreateSession(ctx context.Context, trainerID uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error)
	GetTrainerSessions(ctx context.Context, trainerID uuid.UUID) (*dto.SessionListResponse, error)
	GetUpcomingSessions(ctx context.Context) (*dto.SessionListResponse, error)
	CancelSession(ctx context.Context, trainerID, sessionID uuid.UUID) error
	CompleteSession(ctx context.Context, trainerID, sessionID uuid.UUID) error
	DeleteSession(ctx context.Context, trainerID, sessionID uuid.UUID) error
}

type sessionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	signupRepo   repository.SessionSignupRepository
	waitlistRepo repository.WaitlistEntryRepository
	lockService  *service.LockService
	auditService service.AuditService
}

func NewSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	signupRepo repository.SessionSignupRepository,
	waitlistRepo repository.WaitlistEntryRepository,
	lockService *service.LockService,
	auditService service.AuditService,
) SessionUsecase {
	return &sessionUsecase{
		db:           db,
		log:          log,
		sessionRepo:  sessionRepo,
		signupRepo:   signupRepo,
		waitlistRepo: waitlistRepo,
		lockService:  lockService,
		auditService: auditService,
	}
}

func (u *sessionUsecase) CreateSession(ctx context.Context, trainerID uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date.Before(today()) {
		return nil, ErrSessionInPast
	}

	startAt, err := combineDateClock(date, req.StartTime)
	if err != nil {
		return nil, err
	}
	endAt, err := combineDateClock(date, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !startAt.Before(endAt) {
		return nil, ErrInvalidInterval
	}

	session := &entity.Session{
		TrainerID:       trainerID,
		Title:           req.Title,
		Location:        req.Location,
		Date:            date,
		StartAt:         startAt,
		EndAt:           endAt,
		Capacity:        req.Capacity,
		WaitlistEnabled: req.WaitlistEnabled,
		Price:           req.Price,
		Status:          entity.SessionStatusScheduled,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.sessionRepo.Create(tx, session); err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &trainerID, entity.AuditActionSessionCreate, entity.JSON{
		"session_id": session.ID.String(),
		"date":       req.Date,
		"capacity":   req.Capacity,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Session created: id=%s, trainer=%s, date=%s", session.ID, trainerID, req.Date)
	return converter.SessionToResponse(session), nil
}

func (u *sessionUsecase) GetSession(ctx context.Context, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	resp := converter.SessionToResponse(session)

	approved, err := u.signupRepo.CountBySessionAndStatuses(u.db.WithContext(ctx), sessionID, entity.SignupStatusApproved)
	if err != nil {
		return nil, err
	}
	pending, err := u.signupRepo.CountBySessionAndStatuses(u.db.WithContext(ctx), sessionID, entity.SignupStatusPending)
	if err != nil {
		return nil, err
	}
	resp.ApprovedCount = approved
	resp.PendingCount = pending

	return resp, nil
}

func (u *sessionUsecase) GetTrainerSessions(ctx context.Context, trainerID uuid.UUID) (*dto.SessionListResponse, error) {
	sessions, err := u.sessionRepo.FindByTrainerID(u.db.WithContext(ctx), trainerID)
	if err != nil {
		u.log.Warnf("Failed to find sessions for trainer %s: %+v", trainerID, err)
		return nil, err
	}

	return &dto.SessionListResponse{
		Sessions: converter.SessionsToResponses(sessions),
		Total:    len(sessions),
	}, nil
}

func (u *sessionUsecase) GetUpcomingSessions(ctx context.Context) (*dto.SessionListResponse, error) {
	sessions, err := u.sessionRepo.FindUpcoming(u.db.WithContext(ctx), time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to find upcoming sessions: %+v", err)
		return nil, err
	}

	return &dto.SessionListResponse{
		Sessions: converter.SessionsToResponses(sessions),
		Total:    len(sessions),
	}, nil
}

// CancelSession cancels the session and cascade-cancels its pending and
// approved signups; waitlist entries are dropped. Everything commits in one
// transaction under the session lock.
func (u *sessionUsecase) CancelSession(ctx context.Context, trainerID, sessionID uuid.UUID) error {
	return u.lockService.WithLock(sessionLockKey(sessionID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		session, err := u.sessionRepo.FindByID(tx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}
		if session.TrainerID != trainerID {
			return ErrNotSessionTrainer
		}

		rows, err := u.sessionRepo.UpdateStatus(tx, sessionID, entity.SessionStatusScheduled, entity.SessionStatusCancelled)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrSessionAlreadyClosed
		}

		ids := []uuid.UUID{sessionID}
		if err := u.signupRepo.CancelActiveBySessionIDs(tx, ids); err != nil {
			u.log.Warnf("Failed to cascade-cancel signups for session %s: %+v", sessionID, err)
			return err
		}
		if err := u.waitlistRepo.DeleteBySessionIDs(tx, ids); err != nil {
			u.log.Warnf("Failed to clear waitlist for session %s: %+v", sessionID, err)
			return err
		}

		if err := u.auditService.Record(tx, &trainerID, entity.AuditActionSessionCancel, entity.JSON{
			"session_id": sessionID.String(),
		}); err != nil {
			return err
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return err
		}

		u.log.Infof("Session cancelled: id=%s, trainer=%s", sessionID, trainerID)
		return nil
	})
}

func (u *sessionUsecase) CompleteSession(ctx context.Context, trainerID, sessionID uuid.UUID) error {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session %s: %+v", sessionID, err)
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}
	if session.TrainerID != trainerID {
		return ErrNotSessionTrainer
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.sessionRepo.UpdateStatus(tx, sessionID, entity.SessionStatusScheduled, entity.SessionStatusCompleted)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSessionAlreadyClosed
	}

	if err := u.auditService.Record(tx, &trainerID, entity.AuditActionSessionComplete, entity.JSON{
		"session_id": sessionID.String(),
	}); err != nil {
		return err
	}

	return tx.Commit().Error
}

// DeleteSession hard-deletes a session and its membership rows. Refused while
// the session still has approved signups in the future; past sessions stay as
// historical records and are never deleted through this path.
func (u *sessionUsecase) DeleteSession(ctx context.Context, trainerID, sessionID uuid.UUID) error {
	return u.lockService.WithLock(sessionLockKey(sessionID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		session, err := u.sessionRepo.FindByID(tx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}
		if session.TrainerID != trainerID {
			return ErrNotSessionTrainer
		}

		now := time.Now().UTC()
		if session.StartAt.After(now) {
			approved, err := u.signupRepo.CountBySessionAndStatuses(tx, sessionID, entity.SignupStatusApproved)
			if err != nil {
				return err
			}
			if approved > 0 {
				return ErrSessionHasSignups
			}
		} else {
			// Started sessions are history, not clutter.
			return ErrSessionAlreadyClosed
		}

		ids := []uuid.UUID{sessionID}
		if err := u.waitlistRepo.DeleteBySessionIDs(tx, ids); err != nil {
			return err
		}
		if err := u.signupRepo.DeleteBySessionIDs(tx, ids); err != nil {
			return err
		}
		if _, err := u.sessionRepo.Delete(tx, sessionID); err != nil {
			return err
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return err
		}

		u.log.Infof("Session deleted: id=%s, trainer=%s", sessionID, trainerID)
		return nil
	})
}

func sessionLockKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID)
}
