package database

import (
	"fmt"

	"github.com/pawbook/pawbook/config"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresConnection(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logrus.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}

// SeedRoles upserts the fixed role rows the application depends on.
func SeedRoles(db *gorm.DB, roleRepo repository.RoleRepository) error {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "Platform administrator"},
		{ID: entity.RoleIDTrainer, RoleName: entity.RoleTrainer, Description: "Dog trainer offering bookings and group sessions"},
		{ID: entity.RoleIDOwner, RoleName: entity.RoleOwner, Description: "Dog owner booking services"},
	}

	for _, role := range roles {
		r := role
		if err := roleRepo.Upsert(db, &r); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.RoleName, err)
		}
	}

	return nil
}
