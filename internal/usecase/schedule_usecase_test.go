package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/repository"
	"github.com/pawbook/pawbook/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newScheduleUsecaseForTest(t *testing.T, db *gorm.DB) ScheduleUsecase {
	t.Helper()
	return NewScheduleUsecase(
		db,
		testLogger(),
		repository.NewRecurringScheduleRepository(),
		repository.NewSessionRepository(),
		repository.NewSessionSignupRepository(),
		repository.NewWaitlistEntryRepository(),
		newTestLockService(t),
		service.NewAuditService(testLogger(), repository.NewAuditLogRepository()),
	)
}

// createScheduleInstance inserts a generated-looking session attached to the
// schedule, offset in whole days from today (negative for past instances).
func createScheduleInstance(t *testing.T, db *gorm.DB, schedule *entity.RecurringSchedule, dayOffset int) *entity.Session {
	t.Helper()
	date := today().AddDate(0, 0, dayOffset)
	scheduleID := schedule.ID
	session := &entity.Session{
		TrainerID:       schedule.TrainerID,
		ScheduleID:      &scheduleID,
		Title:           schedule.Title,
		Date:            date,
		StartAt:         date.Add(18 * time.Hour),
		EndAt:           date.Add(19 * time.Hour),
		Capacity:        schedule.Capacity,
		WaitlistEnabled: schedule.WaitlistEnabled,
		Status:          entity.SessionStatusScheduled,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func TestDeleteScheduleRefusedWithFutureApproved(t *testing.T) {
	db := setupTestDB(t)
	uc := newScheduleUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	stranger := createTestUser(t, db, entity.RoleIDTrainer, "stranger@test.local")
	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")

	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{2}, validFrom, nil)
	instance := createScheduleInstance(t, db, schedule, 3)
	createTestSignup(t, db, instance.ID, createTestDog(t, db, owner.ID, "Rex").ID, entity.SignupStatusApproved)

	err := uc.DeleteSchedule(ctx, stranger.ID, schedule.ID)
	assert.ErrorIs(t, err, ErrNotScheduleTrainer)

	err = uc.DeleteSchedule(ctx, trainer.ID, schedule.ID)
	assert.ErrorIs(t, err, ErrScheduleHasApproved)

	// Nothing was touched.
	var count int64
	require.NoError(t, db.Model(&entity.RecurringSchedule{}).Where("id = ?", schedule.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&entity.Session{}).Where("id = ?", instance.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteScheduleRemovesFutureKeepsPast(t *testing.T) {
	db := setupTestDB(t)
	uc := newScheduleUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")

	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{2}, validFrom, nil)

	// A past instance with an approved signup is history and must not block
	// deletion; only future approved signups do.
	past := createScheduleInstance(t, db, schedule, -7)
	pastSignup := createTestSignup(t, db, past.ID, createTestDog(t, db, owner.ID, "Rex").ID, entity.SignupStatusApproved)

	future := createScheduleInstance(t, db, schedule, 3)
	createTestSignup(t, db, future.ID, createTestDog(t, db, owner.ID, "Bella").ID, entity.SignupStatusPending)
	createTestWaitlistEntry(t, db, future.ID, createTestDog(t, db, owner.ID, "Luna").ID)

	require.NoError(t, uc.DeleteSchedule(ctx, trainer.ID, schedule.ID))

	var count int64
	require.NoError(t, db.Model(&entity.RecurringSchedule{}).Where("id = ?", schedule.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Future instance and its membership rows are gone.
	require.NoError(t, db.Model(&entity.Session{}).Where("id = ?", future.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entity.SessionSignup{}).Where("session_id = ?", future.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entity.WaitlistEntry{}).Where("session_id = ?", future.ID).Count(&count).Error)
	assert.Zero(t, count)

	// The past instance survives detached, signup intact.
	var kept entity.Session
	require.NoError(t, db.First(&kept, "id = ?", past.ID).Error)
	assert.Nil(t, kept.ScheduleID)
	var keptSignup entity.SessionSignup
	require.NoError(t, db.First(&keptSignup, "id = ?", pastSignup.ID).Error)
	assert.Equal(t, entity.SignupStatusApproved, keptSignup.Status)

	err := uc.DeleteSchedule(ctx, trainer.ID, schedule.ID)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
