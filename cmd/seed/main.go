// Command seed populates a development database with fake owners, trainers,
// dogs, recurring schedules and one-off sessions. Every account gets the
// password "password123".
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/pawbook/pawbook/config"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/infrastructure/database"
	"github.com/pawbook/pawbook/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	trainerCount = 5
	ownerCount   = 20
	seedPassword = "password123"
)

var specialties = []string{
	"Puppy socialization",
	"Obedience",
	"Agility",
	"Behavioral correction",
	"Scent work",
	"Recall training",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedRoles(db, repository.NewRoleRepository()); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx, string(hashed)); err != nil {
			return err
		}

		trainers, err := seedTrainers(tx, string(hashed))
		if err != nil {
			return err
		}

		if err := seedOwners(tx, string(hashed)); err != nil {
			return err
		}

		return seedSchedulesAndSessions(tx, trainers)
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d trainers and %d owners (password: %s)", trainerCount, ownerCount, seedPassword)
}

func seedAdmin(tx *gorm.DB, password string) error {
	admin := entity.User{
		RoleID:   entity.RoleIDAdmin,
		Email:    "admin@pawbook.local",
		Password: password,
		FullName: "Pawbook Admin",
		IsActive: true,
	}
	return tx.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error
}

func seedTrainers(tx *gorm.DB, password string) ([]entity.User, error) {
	trainers := make([]entity.User, 0, trainerCount)

	for i := 0; i < trainerCount; i++ {
		user := entity.User{
			RoleID:   entity.RoleIDTrainer,
			Email:    fmt.Sprintf("trainer%d@pawbook.local", i+1),
			Password: password,
			FullName: gofakeit.Name(),
			IsActive: true,
		}
		if err := tx.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return nil, err
		}

		profile := entity.TrainerProfile{
			UserID:       user.ID,
			BusinessName: gofakeit.Company() + " Dog Training",
			Bio:          gofakeit.Sentence(12),
			Specialties:  gofakeit.RandomString(specialties),
		}
		if err := tx.Where("user_id = ?", user.ID).FirstOrCreate(&profile).Error; err != nil {
			return nil, err
		}

		trainers = append(trainers, user)
	}

	return trainers, nil
}

func seedOwners(tx *gorm.DB, password string) error {
	for i := 0; i < ownerCount; i++ {
		owner := entity.User{
			RoleID:   entity.RoleIDOwner,
			Email:    fmt.Sprintf("owner%d@pawbook.local", i+1),
			Password: password,
			FullName: gofakeit.Name(),
			IsActive: true,
		}
		if err := tx.Where("email = ?", owner.Email).FirstOrCreate(&owner).Error; err != nil {
			return err
		}

		dogCount := gofakeit.Number(1, 3)
		for j := 0; j < dogCount; j++ {
			birth := gofakeit.DateRange(
				time.Now().AddDate(-12, 0, 0),
				time.Now().AddDate(0, -3, 0),
			)
			dog := entity.Dog{
				OwnerID:   owner.ID,
				Name:      gofakeit.PetName(),
				Breed:     gofakeit.Dog(),
				BirthDate: &birth,
				Notes:     gofakeit.Sentence(6),
			}
			if err := tx.Where("owner_id = ? AND name = ?", owner.ID, dog.Name).FirstOrCreate(&dog).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedSchedulesAndSessions(tx *gorm.DB, trainers []entity.User) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, trainer := range trainers {
		schedule := entity.RecurringSchedule{
			TrainerID:       trainer.ID,
			Title:           gofakeit.RandomString(specialties) + " class",
			Location:        gofakeit.City() + " Park",
			DaysOfWeek:      entity.WeekdaySet{2, 4},
			StartTime:       "18:00",
			EndTime:         "19:00",
			Capacity:        gofakeit.Number(4, 10),
			WaitlistEnabled: gofakeit.Bool(),
			Price:           float64(gofakeit.Number(20, 60)),
			ValidFrom:       today,
			Active:          true,
		}
		if err := tx.Where("trainer_id = ? AND title = ?", trainer.ID, schedule.Title).FirstOrCreate(&schedule).Error; err != nil {
			return err
		}

		// One-off session this weekend, independent of the schedule.
		sessionDate := today.AddDate(0, 0, gofakeit.Number(2, 9))
		session := entity.Session{
			TrainerID:       trainer.ID,
			Title:           "Drop-in " + gofakeit.RandomString(specialties),
			Location:        gofakeit.City() + " Field",
			Date:            sessionDate,
			StartAt:         sessionDate.Add(10 * time.Hour),
			EndAt:           sessionDate.Add(11 * time.Hour),
			Capacity:        gofakeit.Number(4, 8),
			WaitlistEnabled: true,
			Price:           float64(gofakeit.Number(15, 40)),
			Status:          entity.SessionStatusScheduled,
		}
		if err := tx.Where("trainer_id = ? AND title = ? AND date = ?", trainer.ID, session.Title, session.Date).FirstOrCreate(&session).Error; err != nil {
			return err
		}
	}

	return nil
}
