package usecase

import (
	"io"
	"testing"
	"time"

	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database with the full schema
// and role rows. One connection keeps every session on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.TrainerProfile{},
		&entity.Dog{},
		&entity.Booking{},
		&entity.RecurringSchedule{},
		&entity.Session{},
		&entity.SessionSignup{},
		&entity.WaitlistEntry{},
		&entity.AuditLog{},
	))

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDTrainer, RoleName: entity.RoleTrainer},
		{ID: entity.RoleIDOwner, RoleName: entity.RoleOwner},
	}
	require.NoError(t, db.Create(&roles).Error)

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestLockService(t *testing.T) *service.LockService {
	t.Helper()
	lock := service.NewLockService(testLogger())
	t.Cleanup(lock.Stop)
	return lock
}

func createTestUser(t *testing.T, db *gorm.DB, roleID int, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		RoleID:   roleID,
		Email:    email,
		Password: "hashed",
		FullName: "Test " + email,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestDog(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string) *entity.Dog {
	t.Helper()
	dog := &entity.Dog{
		OwnerID: ownerID,
		Name:    name,
		Breed:   "Border Collie",
	}
	require.NoError(t, db.Create(dog).Error)
	return dog
}

// createTestSession creates a scheduled session two days out, 10:00-11:00.
func createTestSession(t *testing.T, db *gorm.DB, trainerID uuid.UUID, capacity int, waitlistEnabled bool) *entity.Session {
	t.Helper()
	date := today().AddDate(0, 0, 2)
	session := &entity.Session{
		TrainerID:       trainerID,
		Title:           "Group obedience",
		Date:            date,
		StartAt:         date.Add(10 * time.Hour),
		EndAt:           date.Add(11 * time.Hour),
		Capacity:        capacity,
		WaitlistEnabled: waitlistEnabled,
		Status:          entity.SessionStatusScheduled,
	}
	require.NoError(t, db.Create(session).Error)
	return session
}
