package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/repository"
	"github.com/pawbook/pawbook/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newGeneratorUsecaseForTest(t *testing.T, db *gorm.DB) GeneratorUsecase {
	t.Helper()
	return NewGeneratorUsecase(
		db,
		testLogger(),
		30,
		repository.NewRecurringScheduleRepository(),
		repository.NewSessionRepository(),
		repository.NewSessionSignupRepository(),
		repository.NewWaitlistEntryRepository(),
		newTestLockService(t),
		service.NewAuditService(testLogger(), repository.NewAuditLogRepository()),
	)
}

func createTestSchedule(t *testing.T, db *gorm.DB, trainerID uuid.UUID, days entity.WeekdaySet, validFrom time.Time, validUntil *time.Time) *entity.RecurringSchedule {
	t.Helper()
	schedule := &entity.RecurringSchedule{
		TrainerID:       trainerID,
		Title:           "Tuesday agility",
		DaysOfWeek:      days,
		StartTime:       "18:00",
		EndTime:         "19:00",
		Capacity:        6,
		WaitlistEnabled: true,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		Active:          true,
	}
	require.NoError(t, db.Create(schedule).Error)
	return schedule
}

func TestGenerateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	uc := newGeneratorUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{2, 4}, validFrom, nil)

	// 2024-03-04 (Mon) through 2024-03-17 (Sun) holds two Tuesdays and two
	// Thursdays.
	rangeStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	result, err := uc.Generate(ctx, nil, schedule.ID, rangeStart, rangeEnd, false)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Created)
	assert.Equal(t, 0, result.Skipped)

	var sessions []entity.Session
	require.NoError(t, db.Where("schedule_id = ?", schedule.ID).Order("date ASC").Find(&sessions).Error)
	require.Len(t, sessions, 4)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), sessions[0].Date.UTC())
	assert.Equal(t, time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC), sessions[0].StartAt.UTC())
	assert.Equal(t, time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC), sessions[0].EndAt.UTC())
	assert.Equal(t, schedule.Capacity, sessions[0].Capacity)

	// A rerun over the same range creates nothing.
	result, err = uc.Generate(ctx, nil, schedule.ID, rangeStart, rangeEnd, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 4, result.Skipped)

	var total int64
	require.NoError(t, db.Model(&entity.Session{}).Where("schedule_id = ?", schedule.ID).Count(&total).Error)
	assert.EqualValues(t, 4, total)
}

func TestGenerateForceRebuildsFromTemplate(t *testing.T) {
	db := setupTestDB(t)
	uc := newGeneratorUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	owner := createTestUser(t, db, entity.RoleIDOwner, "owner@test.local")
	dog := createTestDog(t, db, owner.ID, "Rex")

	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{2}, validFrom, nil)

	rangeStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	result, err := uc.Generate(ctx, nil, schedule.ID, rangeStart, rangeEnd, false)
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	var instance entity.Session
	require.NoError(t, db.Where("schedule_id = ?", schedule.ID).First(&instance).Error)

	// A signup attached to the old instance goes away with it on force.
	signup := &entity.SessionSignup{SessionID: instance.ID, DogID: dog.ID, Status: entity.SignupStatusApproved}
	require.NoError(t, db.Create(signup).Error)

	// Template changed after generation; force rebuilds from current values.
	require.NoError(t, db.Model(schedule).Updates(map[string]interface{}{
		"capacity":   10,
		"start_time": "17:00",
		"end_time":   "18:30",
	}).Error)

	result, err = uc.Generate(ctx, nil, schedule.ID, rangeStart, rangeEnd, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)

	var rebuilt entity.Session
	require.NoError(t, db.Where("schedule_id = ?", schedule.ID).First(&rebuilt).Error)
	assert.NotEqual(t, instance.ID, rebuilt.ID)
	assert.Equal(t, 10, rebuilt.Capacity)
	assert.Equal(t, 17, rebuilt.StartAt.UTC().Hour())

	var orphaned int64
	require.NoError(t, db.Model(&entity.SessionSignup{}).Where("session_id = ?", instance.ID).Count(&orphaned).Error)
	assert.EqualValues(t, 0, orphaned)
}

func TestGenerateHonorsValidityWindow(t *testing.T) {
	db := setupTestDB(t)
	uc := newGeneratorUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	validFrom := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	validUntil := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	schedule := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{1}, validFrom, &validUntil)

	// Mondays abound in the range, but only 2024-03-04 is inside the
	// validity window.
	rangeStart := time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	result, err := uc.Generate(ctx, nil, schedule.ID, rangeStart, rangeEnd, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	var session entity.Session
	require.NoError(t, db.Where("schedule_id = ?", schedule.ID).First(&session).Error)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), session.Date.UTC())
}

func TestGenerateRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	uc := newGeneratorUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	schedule := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{1}, validFrom, nil)

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	_, err := uc.Generate(ctx, nil, schedule.ID, start, start.AddDate(0, 0, -1), false)
	assert.ErrorIs(t, err, ErrInvalidRange)

	require.NoError(t, db.Model(schedule).Update("active", false).Error)
	_, err = uc.Generate(ctx, nil, schedule.ID, start, start.AddDate(0, 0, 7), false)
	assert.ErrorIs(t, err, ErrScheduleInactive)
}

func TestGenerateForTrainerChecksOwnership(t *testing.T) {
	db := setupTestDB(t)
	uc := newGeneratorUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	stranger := createTestUser(t, db, entity.RoleIDTrainer, "stranger@test.local")
	schedule := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{1, 2, 3, 4, 5, 6, 7}, today().AddDate(0, 0, -7), nil)

	_, err := uc.GenerateForTrainer(ctx, stranger.ID, schedule.ID, &dto.GenerateRequest{})
	assert.ErrorIs(t, err, ErrNotScheduleTrainer)

	// Default lookahead generates one instance per day.
	result, err := uc.GenerateForTrainer(ctx, trainer.ID, schedule.ID, &dto.GenerateRequest{Days: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Created)
}

func TestGenerateAll(t *testing.T) {
	db := setupTestDB(t)
	uc := newGeneratorUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	active := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{2}, validFrom, nil)
	inactive := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{3}, validFrom, nil)
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	rangeStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	results, err := uc.GenerateAll(ctx, rangeStart, rangeEnd, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, active.ID, results[0].ScheduleID)
	assert.Equal(t, 2, results[0].Created)
}

func TestGenerateAllContinuesPastFailingSchedule(t *testing.T) {
	db := setupTestDB(t)
	uc := newGeneratorUsecaseForTest(t, db)
	ctx := context.Background()

	trainer := createTestUser(t, db, entity.RoleIDTrainer, "trainer@test.local")
	validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// First schedule carries an unparseable start time, written directly to
	// bypass request validation. The sweep must still expand the second one.
	broken := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{1, 2, 3, 4, 5, 6, 7}, validFrom, nil)
	require.NoError(t, db.Model(broken).Update("start_time", "25:99").Error)
	healthy := createTestSchedule(t, db, trainer.ID, entity.WeekdaySet{2, 4}, validFrom, nil)

	rangeStart := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	results, err := uc.GenerateAll(ctx, rangeStart, rangeEnd, false)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	require.Len(t, results, 1)
	assert.Equal(t, healthy.ID, results[0].ScheduleID)
	assert.Equal(t, 4, results[0].Created)

	var count int64
	require.NoError(t, db.Model(&entity.Session{}).Where("schedule_id = ?", healthy.ID).Count(&count).Error)
	assert.EqualValues(t, 4, count)
	require.NoError(t, db.Model(&entity.Session{}).Where("schedule_id = ?", broken.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
