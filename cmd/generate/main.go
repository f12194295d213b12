// Command generate expands recurring schedules into concrete sessions. It is
// intended to run as a cron job alongside the API server:
//
//	generate                       expand every active schedule
//	generate --schedule <uuid>     expand one schedule
//	generate --days 14 --force     regenerate the next two weeks
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/pawbook/pawbook/config"
	"github.com/pawbook/pawbook/internal/infrastructure/database"
	"github.com/pawbook/pawbook/internal/repository"
	"github.com/pawbook/pawbook/internal/service"
	"github.com/pawbook/pawbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func main() {
	scheduleFlag := flag.String("schedule", "", "expand only this schedule ID")
	daysFlag := flag.Int("days", 0, "lookahead window in days (default: GENERATOR_LOOKAHEAD_DAYS)")
	forceFlag := flag.Bool("force", false, "regenerate sessions that already exist")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	scheduleRepo := repository.NewRecurringScheduleRepository()
	sessionRepo := repository.NewSessionRepository()
	signupRepo := repository.NewSessionSignupRepository()
	waitlistRepo := repository.NewWaitlistEntryRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	lockService := service.NewLockService(logger)
	defer lockService.Stop()
	auditService := service.NewAuditService(logger, auditLogRepo)

	generator := usecase.NewGeneratorUsecase(
		db, logger, cfg.Generator.LookaheadDays,
		scheduleRepo, sessionRepo, signupRepo, waitlistRepo,
		lockService, auditService,
	)

	days := *daysFlag
	if days <= 0 {
		days = cfg.Generator.LookaheadDays
	}

	now := time.Now().UTC()
	rangeStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	rangeEnd := rangeStart.AddDate(0, 0, days-1)

	ctx := context.Background()

	if *scheduleFlag != "" {
		scheduleID, err := uuid.Parse(*scheduleFlag)
		if err != nil {
			log.Fatalf("Invalid schedule ID %q: %v", *scheduleFlag, err)
		}

		result, err := generator.Generate(ctx, nil, scheduleID, rangeStart, rangeEnd, *forceFlag)
		if err != nil {
			log.Fatalf("Generation failed for schedule %s: %v", scheduleID, err)
		}

		logger.WithFields(logrus.Fields{
			"schedule_id": result.ScheduleID,
			"created":     result.Created,
			"skipped":     result.Skipped,
		}).Info("Schedule expanded")
		return
	}

	results, err := generator.GenerateAll(ctx, rangeStart, rangeEnd, *forceFlag)

	var created, skipped int
	for _, result := range results {
		created += result.Created
		skipped += result.Skipped
	}

	logger.WithFields(logrus.Fields{
		"schedules": len(results),
		"created":   created,
		"skipped":   skipped,
	}).Info("Active schedules expanded")

	if err != nil {
		log.Fatalf("Some schedules failed to expand: %v", err)
	}
}
