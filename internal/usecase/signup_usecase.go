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
	ErrSessionFull        = apperror.Capacity("session is full")
	ErrSessionClosed      = apperror.State("session is no longer accepting signups")
	ErrAlreadySignedUp    = apperror.Duplicate("dog already has a signup for this session")
	ErrAlreadyWaitlisted  = apperror.Duplicate("dog is already on the waitlist for this session")
	ErrSignupNotFound     = apperror.NotFound("signup not found")
	ErrSignupNotPending   = apperror.State("signup is no longer pending")
	ErrSignupClosed       = apperror.State("signup is already rejected or cancelled")
	ErrWaitlistDisabled   = apperror.State("waitlist is not enabled for this session")
	ErrNotOnWaitlist      = apperror.NotFound("dog is not on the waitlist for this session")
	ErrSignupWrongSession = apperror.NotFound("signup does not belong to this session")
)

type SignupUsecase interface {
	Signup(ctx context.Context, ownerID, sessionID uuid.UUID, req *dto.CreateSignupRequest) (*dto.SignupResultResponse, error)
	ApproveSignup(ctx context.Context, trainerID, sessionID, signupID uuid.UUID) (*dto.SignupResponse, error)
	RejectSignup(ctx context.Context, trainerID, sessionID, signupID uuid.UUID, req *dto.RejectSignupRequest) error
	CancelSignup(ctx context.Context, actorID, sessionID, dogID uuid.UUID) error
	GetSignups(ctx context.Context, trainerID, sessionID uuid.UUID) (*dto.SignupListResponse, error)
	JoinWaitlist(ctx context.Context, ownerID, sessionID uuid.UUID, req *dto.JoinWaitlistRequest) (*dto.WaitlistEntryResponse, error)
	LeaveWaitlist(ctx context.Context, ownerID, sessionID, dogID uuid.UUID) error
	GetWaitlistPosition(ctx context.Context, ownerID, sessionID, dogID uuid.UUID) (*dto.WaitlistEntryResponse, error)
	GetWaitlist(ctx context.Context, trainerID, sessionID uuid.UUID) (*dto.WaitlistListResponse, error)
}

type signupUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	signupRepo   repository.SessionSignupRepository
	waitlistRepo repository.WaitlistEntryRepository
	dogRepo      repository.DogRepository
	lockService  *service.LockService
	auditService service.AuditService
}

func NewSignupUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	signupRepo repository.SessionSignupRepository,
	waitlistRepo repository.WaitlistEntryRepository,
	dogRepo repository.DogRepository,
	lockService *service.LockService,
	auditService service.AuditService,
) SignupUsecase {
	return &signupUsecase{
		db:           db,
		log:          log,
		sessionRepo:  sessionRepo,
		signupRepo:   signupRepo,
		waitlistRepo: waitlistRepo,
		dogRepo:      dogRepo,
		lockService:  lockService,
		auditService: auditService,
	}
}

// Signup admits a dog while pending+approved signups stay under capacity.
// When the session is full and its waitlist is enabled, the dog overflows to
// the waitlist instead; otherwise the attempt fails with a capacity error.
// The count and the insert share one transaction under the session lock, so
// capacity cannot be oversubscribed by concurrent requests.
func (u *signupUsecase) Signup(ctx context.Context, ownerID, sessionID uuid.UUID, req *dto.CreateSignupRequest) (*dto.SignupResultResponse, error) {
	if err := u.checkDogOwnership(ctx, ownerID, req.DogID); err != nil {
		return nil, err
	}

	var result *dto.SignupResultResponse
	err := u.lockService.WithLock(sessionLockKey(sessionID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		session, err := u.sessionRepo.FindByID(tx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}
		if !session.CanAcceptSignups(time.Now().UTC()) {
			return ErrSessionClosed
		}

		if err := u.checkNotAlreadyMember(tx, sessionID, req.DogID); err != nil {
			return err
		}

		occupied, err := u.signupRepo.CountBySessionAndStatuses(tx, sessionID,
			entity.SignupStatusPending, entity.SignupStatusApproved)
		if err != nil {
			return err
		}

		if occupied >= int64(session.Capacity) {
			if !session.WaitlistEnabled {
				return ErrSessionFull
			}

			entry := &entity.WaitlistEntry{
				SessionID: sessionID,
				DogID:     req.DogID,
			}
			if err := u.waitlistRepo.Create(tx, entry); err != nil {
				u.log.Warnf("Failed to create waitlist entry: %+v", err)
				return err
			}

			if err := u.auditService.Record(tx, &ownerID, entity.AuditActionWaitlistJoin, entity.JSON{
				"session_id": sessionID.String(),
				"dog_id":     req.DogID.String(),
			}); err != nil {
				return err
			}

			if err := tx.Commit().Error; err != nil {
				return err
			}

			result = &dto.SignupResultResponse{
				Waitlisted:    true,
				WaitlistEntry: converter.WaitlistEntryToResponse(entry),
			}
			return nil
		}

		signup := &entity.SessionSignup{
			SessionID: sessionID,
			DogID:     req.DogID,
			Status:    entity.SignupStatusPending,
			Notes:     req.Notes,
		}
		if err := u.signupRepo.Create(tx, signup); err != nil {
			u.log.Warnf("Failed to create signup: %+v", err)
			return err
		}

		if err := u.auditService.Record(tx, &ownerID, entity.AuditActionSignupCreate, entity.JSON{
			"session_id": sessionID.String(),
			"dog_id":     req.DogID.String(),
			"signup_id":  signup.ID.String(),
		}); err != nil {
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return err
		}

		result = &dto.SignupResultResponse{
			Signup: converter.SignupToResponse(signup),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Signup processed: session=%s, dog=%s, waitlisted=%t", sessionID, req.DogID, result.Waitlisted)
	return result, nil
}

// ApproveSignup confirms a pending seat. Approval re-checks the approved-only
// count so a trainer can never confirm more seats than the session holds even
// when pending signups exceed capacity.
func (u *signupUsecase) ApproveSignup(ctx context.Context, trainerID, sessionID, signupID uuid.UUID) (*dto.SignupResponse, error) {
	var approved *entity.SessionSignup
	err := u.lockService.WithLock(sessionLockKey(sessionID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		session, signup, err := u.findTrainerSignup(tx, trainerID, sessionID, signupID)
		if err != nil {
			return err
		}

		approvedCount, err := u.signupRepo.CountBySessionAndStatuses(tx, sessionID, entity.SignupStatusApproved)
		if err != nil {
			return err
		}
		if approvedCount >= int64(session.Capacity) {
			return ErrSessionFull
		}

		rows, err := u.signupRepo.UpdateStatus(tx, signupID, entity.SignupStatusPending, entity.SignupStatusApproved)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrSignupNotPending
		}

		if err := u.auditService.Record(tx, &trainerID, entity.AuditActionSignupApprove, entity.JSON{
			"session_id": sessionID.String(),
			"signup_id":  signupID.String(),
		}); err != nil {
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return err
		}

		signup.Status = entity.SignupStatusApproved
		approved = signup
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Signup approved: session=%s, signup=%s", sessionID, signupID)
	return converter.SignupToResponse(approved), nil
}

func (u *signupUsecase) RejectSignup(ctx context.Context, trainerID, sessionID, signupID uuid.UUID, req *dto.RejectSignupRequest) error {
	return u.lockService.WithLock(sessionLockKey(sessionID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		if _, _, err := u.findTrainerSignup(tx, trainerID, sessionID, signupID); err != nil {
			return err
		}

		rows, err := u.signupRepo.UpdateStatus(tx, signupID, entity.SignupStatusPending, entity.SignupStatusRejected)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrSignupNotPending
		}

		if err := u.auditService.Record(tx, &trainerID, entity.AuditActionSignupReject, entity.JSON{
			"session_id": sessionID.String(),
			"signup_id":  signupID.String(),
			"reason":     req.Reason,
		}); err != nil {
			return err
		}

		return tx.Commit().Error
	})
}

// CancelSignup releases the dog's seat. When an approved seat frees up and
// the waitlist has entries, the earliest entry is promoted to a pending
// signup inside the same transaction, so the freed seat and the promotion are
// atomic.
func (u *signupUsecase) CancelSignup(ctx context.Context, actorID, sessionID, dogID uuid.UUID) error {
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

		signup, err := u.signupRepo.FindBlockingBySessionAndDog(tx, sessionID, dogID)
		if err != nil {
			return err
		}
		if signup == nil {
			return ErrSignupNotFound
		}

		dog, err := u.dogRepo.FindByID(tx, dogID)
		if err != nil {
			return err
		}
		if dog == nil {
			return ErrDogNotFound
		}
		if !dog.IsOwnedBy(actorID) && session.TrainerID != actorID {
			return ErrDogNotOwned
		}

		if !signup.CountsTowardCapacity() {
			return ErrSignupClosed
		}
		wasApproved := signup.IsApproved()

		rows, err := u.signupRepo.UpdateStatus(tx, signup.ID, signup.Status, entity.SignupStatusCancelled)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrSignupClosed
		}

		if err := u.auditService.Record(tx, &actorID, entity.AuditActionSignupCancel, entity.JSON{
			"session_id": sessionID.String(),
			"signup_id":  signup.ID.String(),
			"dog_id":     dogID.String(),
		}); err != nil {
			return err
		}

		if wasApproved {
			if err := u.promoteFromWaitlist(tx, actorID, sessionID); err != nil {
				return err
			}
		}

		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return err
		}

		u.log.Infof("Signup cancelled: session=%s, dog=%s, promoted=%t", sessionID, dogID, wasApproved)
		return nil
	})
}

// promoteFromWaitlist moves the FIFO head of the waitlist into a pending
// signup. A no-op when the waitlist is empty.
func (u *signupUsecase) promoteFromWaitlist(tx *gorm.DB, actorID uuid.UUID, sessionID uuid.UUID) error {
	head, err := u.waitlistRepo.FindEarliestBySession(tx, sessionID)
	if err != nil {
		return err
	}
	if head == nil {
		return nil
	}

	promoted := &entity.SessionSignup{
		SessionID: sessionID,
		DogID:     head.DogID,
		Status:    entity.SignupStatusPending,
	}
	if err := u.signupRepo.Create(tx, promoted); err != nil {
		u.log.Warnf("Failed to create promoted signup: %+v", err)
		return err
	}

	if _, err := u.waitlistRepo.Delete(tx, head.ID); err != nil {
		return err
	}

	return u.auditService.Record(tx, &actorID, entity.AuditActionWaitlistPromote, entity.JSON{
		"session_id": sessionID.String(),
		"dog_id":     head.DogID.String(),
		"signup_id":  promoted.ID.String(),
	})
}

func (u *signupUsecase) GetSignups(ctx context.Context, trainerID, sessionID uuid.UUID) (*dto.SignupListResponse, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.TrainerID != trainerID {
		return nil, ErrNotSessionTrainer
	}

	signups, err := u.signupRepo.FindBySessionID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find signups for session %s: %+v", sessionID, err)
		return nil, err
	}

	return &dto.SignupListResponse{
		Signups: converter.SignupsToResponses(signups),
		Total:   len(signups),
	}, nil
}

// JoinWaitlist queues a dog explicitly. Allowed even while the session still
// has room, for owners who prefer the trainer to pull them in.
func (u *signupUsecase) JoinWaitlist(ctx context.Context, ownerID, sessionID uuid.UUID, req *dto.JoinWaitlistRequest) (*dto.WaitlistEntryResponse, error) {
	if err := u.checkDogOwnership(ctx, ownerID, req.DogID); err != nil {
		return nil, err
	}

	var entry *entity.WaitlistEntry
	err := u.lockService.WithLock(sessionLockKey(sessionID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		session, err := u.sessionRepo.FindByID(tx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}
		if !session.CanAcceptSignups(time.Now().UTC()) {
			return ErrSessionClosed
		}
		if !session.WaitlistEnabled {
			return ErrWaitlistDisabled
		}

		if err := u.checkNotAlreadyMember(tx, sessionID, req.DogID); err != nil {
			return err
		}

		entry = &entity.WaitlistEntry{
			SessionID: sessionID,
			DogID:     req.DogID,
		}
		if err := u.waitlistRepo.Create(tx, entry); err != nil {
			u.log.Warnf("Failed to create waitlist entry: %+v", err)
			return err
		}

		if err := u.auditService.Record(tx, &ownerID, entity.AuditActionWaitlistJoin, entity.JSON{
			"session_id": sessionID.String(),
			"dog_id":     req.DogID.String(),
		}); err != nil {
			return err
		}

		return tx.Commit().Error
	})
	if err != nil {
		return nil, err
	}

	return converter.WaitlistEntryToResponse(entry), nil
}

func (u *signupUsecase) LeaveWaitlist(ctx context.Context, ownerID, sessionID, dogID uuid.UUID) error {
	if err := u.checkDogOwnership(ctx, ownerID, dogID); err != nil {
		return err
	}

	return u.lockService.WithLock(sessionLockKey(sessionID), func() error {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		entry, err := u.waitlistRepo.FindBySessionAndDog(tx, sessionID, dogID)
		if err != nil {
			return err
		}
		if entry == nil {
			return ErrNotOnWaitlist
		}

		if _, err := u.waitlistRepo.Delete(tx, entry.ID); err != nil {
			return err
		}

		if err := u.auditService.Record(tx, &ownerID, entity.AuditActionWaitlistLeave, entity.JSON{
			"session_id": sessionID.String(),
			"dog_id":     dogID.String(),
		}); err != nil {
			return err
		}

		return tx.Commit().Error
	})
}

func (u *signupUsecase) GetWaitlistPosition(ctx context.Context, ownerID, sessionID, dogID uuid.UUID) (*dto.WaitlistEntryResponse, error) {
	if err := u.checkDogOwnership(ctx, ownerID, dogID); err != nil {
		return nil, err
	}

	entry, err := u.waitlistRepo.FindBySessionAndDog(u.db.WithContext(ctx), sessionID, dogID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotOnWaitlist
	}

	position, err := u.waitlistRepo.Rank(u.db.WithContext(ctx), entry)
	if err != nil {
		return nil, err
	}

	resp := converter.WaitlistEntryToResponse(entry)
	resp.Position = position
	return resp, nil
}

func (u *signupUsecase) GetWaitlist(ctx context.Context, trainerID, sessionID uuid.UUID) (*dto.WaitlistListResponse, error) {
	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.TrainerID != trainerID {
		return nil, ErrNotSessionTrainer
	}

	entries, err := u.waitlistRepo.FindBySessionID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find waitlist for session %s: %+v", sessionID, err)
		return nil, err
	}

	return &dto.WaitlistListResponse{
		Entries: converter.WaitlistEntriesToResponses(entries),
		Total:   len(entries),
	}, nil
}

func (u *signupUsecase) checkDogOwnership(ctx context.Context, ownerID, dogID uuid.UUID) error {
	dog, err := u.dogRepo.FindByID(u.db.WithContext(ctx), dogID)
	if err != nil {
		u.log.Warnf("Failed to find dog %s: %+v", dogID, err)
		return err
	}
	if dog == nil {
		return ErrDogNotFound
	}
	if !dog.IsOwnedBy(ownerID) {
		return ErrDogNotOwned
	}
	return nil
}

// checkNotAlreadyMember enforces the one-membership rule: a dog holds at most
// one non-cancelled signup or one waitlist entry per session.
func (u *signupUsecase) checkNotAlreadyMember(tx *gorm.DB, sessionID, dogID uuid.UUID) error {
	existing, err := u.signupRepo.FindBlockingBySessionAndDog(tx, sessionID, dogID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadySignedUp
	}

	waiting, err := u.waitlistRepo.FindBySessionAndDog(tx, sessionID, dogID)
	if err != nil {
		return err
	}
	if waiting != nil {
		return ErrAlreadyWaitlisted
	}

	return nil
}

// findTrainerSignup loads the session and signup and verifies the trainer
// owns the session and the signup belongs to it.
func (u *signupUsecase) findTrainerSignup(tx *gorm.DB, trainerID, sessionID, signupID uuid.UUID) (*entity.Session, *entity.SessionSignup, error) {
	session, err := u.sessionRepo.FindByID(tx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}
	if session.TrainerID != trainerID {
		return nil, nil, ErrNotSessionTrainer
	}

	signup, err := u.signupRepo.FindByID(tx, signupID)
	if err != nil {
		return nil, nil, err
	}
	if signup == nil {
		return nil, nil, ErrSignupNotFound
	}
	if signup.SessionID != sessionID {
		return nil, nil, ErrSignupWrongSession
	}

	return session, signup, nil
}
