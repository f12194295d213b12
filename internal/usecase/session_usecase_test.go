package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/repository"
	"github.com/pawbook/pawbook/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSessionUsecaseForTest(t *testing.T, db *gorm.DB) SessionUsecase {
	t.Helper()
	return NewSessionUsecase(
		db,
		testLogger(),
		repository.NewSessionRepository(),
		repository.NewSessionSignupRepository(),
		repository.NewWaitlistEntryRepository(),
		newTestLockService(t),
		service.NewAuditService(testLogger(), repository.NewAuditLogRepository()),
	)
}

func createTestSignup(t *testing.T, db *gorm.DB, sessionID, dogID uuid.UUID, status entity.SignupStatus) *entity.SessionSignup {
	t.Helper()
	signup := &entity.SessionSignup{
		SessionID: sessionID,
		DogID:     dogID,
		Status:    status,
	}
	require.NoError(t, db.Create(signup).Error)
	return signup
}

func createTestWaitlistEntry(t *testing.T, db *gorm.DB, sessionID, dogID uuid.UUID) *entity.WaitlistEntry {
	t.Helper()
	entry := &entity.WaitlistEntry{
		SessionID: sessionID,
		DogID:     dogID,
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

// createStartedSession inserts a session whose start time is already behind
// us, something the create path refuses to produce.
func createStartedSession(t *testing.T, db *gorm.DB, trainerID uuid.UUID) *entity.Session {
	t.Helper()
	date := today().AddDate(0, 0, -1)
	session := &entity.Session{
		TrainerID: trainerID,
		Title:     "Yesterday's class",
		Date:      date,
		StartAt:   date.Add(10 * time.Hour),
		EndAt:     date.Add(11 * time.Hour),
		Capacity:  5,
		Status:    entity.SessionStatusScheduled,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func TestCancelSessionCascades(t *testing.T) {
	db := setupTestDB(t)
	uc := newSessionUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	stranger := createTestUser(t, db, entity.RoleIDTrainer, "stranger@test.local")
	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	session := createTestSession(t, db, trainer.ID, 2, true)

	pending := createTestSignup(t, db, session.ID, createTestDog(t, db, owner.ID, "Rex").ID, entity.SignupStatusPending)
	approved := createTestSignup(t, db, session.ID, createTestDog(t, db, owner.ID, "Bella").ID, entity.SignupStatusApproved)
	rejected := createTestSignup(t, db, session.ID, createTestDog(t, db, owner.ID, "Milo").ID, entity.SignupStatusRejected)
	createTestWaitlistEntry(t, db, session.ID, createTestDog(t, db, owner.ID, "Luna").ID)

	err := uc.CancelSession(ctx, stranger.ID, session.ID)
	assert.ErrorIs(t, err, ErrNotSessionTrainer)

	require.NoError(t, uc.CancelSession(ctx, trainer.ID, session.ID))

	var got entity.Session
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, entity.SessionStatusCancelled, got.Status)

	// Pending and approved signups are cancelled with the session; terminal
	// ones keep their status.
	var signup entity.SessionSignup
	require.NoError(t, db.First(&signup, "id = ?", pending.ID).Error)
	assert.Equal(t, entity.SignupStatusCancelled, signup.Status)
	signup = entity.SessionSignup{}
	require.NoError(t, db.First(&signup, "id = ?", approved.ID).Error)
	assert.Equal(t, entity.SignupStatusCancelled, signup.Status)
	signup = entity.SessionSignup{}
	require.NoError(t, db.First(&signup, "id = ?", rejected.ID).Error)
	assert.Equal(t, entity.SignupStatusRejected, signup.Status)

	var waitlisted int64
	require.NoError(t, db.Model(&entity.WaitlistEntry{}).Where("session_id = ?", session.ID).Count(&waitlisted).Error)
	assert.Zero(t, waitlisted)

	err = uc.CancelSession(ctx, trainer.ID, session.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)
}

func TestCompleteSession(t *testing.T) {
	db := setupTestDB(t)
	uc := newSessionUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	session := createTestSession(t, db, trainer.ID, 5, false)

	require.NoError(t, uc.CompleteSession(ctx, trainer.ID, session.ID))

	var got entity.Session
	require.NoError(t, db.First(&got, "id = ?", session.ID).Error)
	assert.Equal(t, entity.SessionStatusCompleted, got.Status)

	err := uc.CompleteSession(ctx, trainer.ID, session.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)

	err = uc.CancelSession(ctx, trainer.ID, session.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)
}

func TestDeleteSessionRefusedWithApprovedSignup(t *testing.T) {
	db := setupTestDB(t)
	uc := newSessionUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	session := createTestSession(t, db, trainer.ID, 5, false)
	createTestSignup(t, db, session.ID, createTestDog(t, db, owner.ID, "Rex").ID, entity.SignupStatusApproved)

	err := uc.DeleteSession(ctx, trainer.ID, session.ID)
	assert.ErrorIs(t, err, ErrSessionHasSignups)

	var count int64
	require.NoError(t, db.Model(&entity.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteSessionRefusedWhenStarted(t *testing.T) {
	db := setupTestDB(t)
	uc := newSessionUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	session := createStartedSession(t, db, trainer.ID)

	err := uc.DeleteSession(ctx, trainer.ID, session.ID)
	assert.ErrorIs(t, err, ErrSessionAlreadyClosed)

	var count int64
	require.NoError(t, db.Model(&entity.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteSessionRemovesMemberships(t *testing.T) {
	db := setupTestDB(t)
	uc := newSessionUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	stranger := createTestUser(t, db, entity.RoleIDTrainer, "stranger@test.local")
	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	session := createTestSession(t, db, trainer.ID, 1, true)

	createTestSignup(t, db, session.ID, createTestDog(t, db, owner.ID, "Rex").ID, entity.SignupStatusPending)
	createTestWaitlistEntry(t, db, session.ID, createTestDog(t, db, owner.ID, "Bella").ID)

	err := uc.DeleteSession(ctx, stranger.ID, session.ID)
	assert.ErrorIs(t, err, ErrNotSessionTrainer)

	require.NoError(t, uc.DeleteSession(ctx, trainer.ID, session.ID))

	var count int64
	require.NoError(t, db.Model(&entity.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entity.SessionSignup{}).Where("session_id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entity.WaitlistEntry{}).Where("session_id = ?", session.ID).Count(&count).Error)
	assert.Zero(t, count)

	err = uc.DeleteSession(ctx, trainer.ID, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
