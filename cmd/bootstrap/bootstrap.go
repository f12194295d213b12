package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawbook/pawbook/config"
	deliveryHttp "github.com/pawbook/pawbook/internal/delivery/http"
	"github.com/pawbook/pawbook/internal/delivery/http/handler"
	"github.com/pawbook/pawbook/internal/delivery/http/middleware"
	"github.com/pawbook/pawbook/internal/infrastructure/cache"
	"github.com/pawbook/pawbook/internal/infrastructure/database"
	"github.com/pawbook/pawbook/internal/repository"
	"github.com/pawbook/pawbook/internal/service"
	"github.com/pawbook/pawbook/internal/usecase"
	"github.com/pawbook/pawbook/pkg/jwt"
	"github.com/pawbook/pawbook/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	LockService *service.LockService
	Server      *http.Server
}

func New() (*App, error) {
	log := setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := database.SeedRoles(db, repository.NewRoleRepository()); err != nil {
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	app := &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
	}

	app.initializeServer()

	return app, nil
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}

func (app *App) initializeServer() {
	// Repositories
	userRepo := repository.NewUserRepository()
	trainerProfileRepo := repository.NewTrainerProfileRepository()
	dogRepo := repository.NewDogRepository()
	bookingRepo := repository.NewBookingRepository()
	sessionRepo := repository.NewSessionRepository()
	signupRepo := repository.NewSessionSignupRepository()
	waitlistRepo := repository.NewWaitlistEntryRepository()
	scheduleRepo := repository.NewRecurringScheduleRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	jwtService := jwt.NewJWTService(app.Config.JWT)
	customValidator := validator.NewValidator()
	lockService := service.NewLockService(app.Log)
	auditService := service.NewAuditService(app.Log, auditLogRepo)
	app.LockService = lockService

	// Usecases
	authUsecase := usecase.NewAuthUsecase(app.DB, app.Log, userRepo, trainerProfileRepo, auditService, jwtService, app.RedisClient)
	dogUsecase := usecase.NewDogUsecase(app.DB, app.Log, dogRepo)
	trainerUsecase := usecase.NewTrainerUsecase(app.DB, app.Log, trainerProfileRepo)
	bookingUsecase := usecase.NewBookingUsecase(app.DB, app.Log, app.Config.Booking, bookingRepo, dogRepo, userRepo, lockService, auditService)
	sessionUsecase := usecase.NewSessionUsecase(app.DB, app.Log, sessionRepo, signupRepo, waitlistRepo, lockService, auditService)
	signupUsecase := usecase.NewSignupUsecase(app.DB, app.Log, sessionRepo, signupRepo, waitlistRepo, dogRepo, lockService, auditService)
	scheduleUsecase := usecase.NewScheduleUsecase(app.DB, app.Log, scheduleRepo, sessionRepo, signupRepo, waitlistRepo, lockService, auditService)
	generatorUsecase := usecase.NewGeneratorUsecase(app.DB, app.Log, app.Config.Generator.LookaheadDays, scheduleRepo, sessionRepo, signupRepo, waitlistRepo, lockService, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(app.DB, app.Log, auditLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	dogHandler := handler.NewDogHandler(dogUsecase, customValidator)
	trainerHandler := handler.NewTrainerHandler(trainerUsecase, bookingUsecase, customValidator)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator)
	sessionHandler := handler.NewSessionHandler(sessionUsecase, signupUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, generatorUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient)
	corsMiddleware := middleware.NewCORSMiddleware(app.Config.CORS.AllowedOrigins)

	// Router
	router := deliveryHttp.NewRouter(
		authHandler,
		dogHandler,
		trainerHandler,
		bookingHandler,
		sessionHandler,
		scheduleHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)

	app.Server = &http.Server{
		Addr:         ":" + app.Config.App.Port,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (app *App) Run() error {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	return app.waitForShutdown()
}

func (app *App) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	app.Close()

	app.Log.Info("Server exited")
	return nil
}

func (app *App) Close() {
	if app.LockService != nil {
		app.LockService.Stop()
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Errorf("Failed to close redis client: %v", err)
		}
	}

	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Errorf("Failed to close database connection: %v", err)
			}
		}
	}
}
