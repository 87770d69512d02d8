package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-scheduler/config"
	deliveryHttp "clinic-scheduler/internal/delivery/http"
	"clinic-scheduler/internal/delivery/http/handler"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/delivery/validation"
	"clinic-scheduler/internal/domain/availability"
	"clinic-scheduler/internal/infrastructure/cache"
	"clinic-scheduler/internal/infrastructure/database"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/service"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const initialWarmTimeout = 2 * time.Minute

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Warmer      *service.SlotCacheWarmer

	jobs *backgroundJobs
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, jobs: newBackgroundJobs()}

	log, err := NewLogger(cfg.App)
	if err != nil {
		return nil, err
	}
	app.Log = log

	if cfg.App.AutoMigrate {
		if err := RunMigrations(cfg, log); err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsDevelopment())
	if err != nil {
		return nil, err
	}
	app.DB = db

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	engine, err := NewEngine(cfg.Clinic)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.initialize(engine)

	return app, nil
}

// NewLogger builds the JSON logrus logger used by every layer.
func NewLogger(cfg config.AppConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(level)
	return log, nil
}

// NewEngine builds the availability engine for the configured clinic wall clock.
func NewEngine(cfg config.ClinicConfig) (*availability.Engine, error) {
	offset, err := availability.ParseOffset(cfg.UTCOffset)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_UTC_OFFSET: %w", err)
	}
	open, err := availability.ParseTimeOfDay(cfg.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_OPEN_TIME: %w", err)
	}
	closing, err := availability.ParseTimeOfDay(cfg.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_CLOSE_TIME: %w", err)
	}
	if !open.Before(closing) {
		return nil, fmt.Errorf("CLINIC_OPEN_TIME %s must be before CLINIC_CLOSE_TIME %s", open, closing)
	}
	if cfg.SlotStep <= 0 {
		return nil, fmt.Errorf("SLOT_STEP must be positive, got %s", cfg.SlotStep)
	}

	return availability.NewEngine(offset, availability.WithBusinessHours(open, closing, cfg.SlotStep)), nil
}

// RunMigrations applies every pending migration and closes the migrator.
func RunMigrations(cfg *config.Config, log *logrus.Logger) error {
	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// initialize wires repositories, services, usecases and handlers into the HTTP server
func (app *App) initialize(engine *availability.Engine) {
	cfg, db, log := app.Config, app.DB, app.Log

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validation.New()

	// Repositories
	userRepo := repository.NewUserRepository()
	clinicRepo := repository.NewClinicRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	slotCache := service.NewSlotCacheService(app.RedisClient, log)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, clinicRepo, auditService, jwtService, app.RedisClient)
	clinicUsecase := usecase.NewClinicUsecase(db, log, clinicRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, auditService, slotCache, engine)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, patientRepo, auditService, engine)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	clinicHandler := handler.NewClinicHandler(clinicUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, authUsecase)
	clinicMiddleware := middleware.NewClinicMiddleware(clinicUsecase)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigins)

	router := deliveryHttp.NewRouter(
		authHandler,
		clinicHandler,
		doctorHandler,
		patientHandler,
		appointmentHandler,
		auditLogHandler,
		authMiddleware,
		clinicMiddleware,
		corsMiddleware,
	)

	app.Server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: router.Handler(),
	}

	app.Warmer = service.NewSlotCacheWarmer(db, log, doctorRepo, slotCache, engine, cfg.SlotCache.Cron, cfg.SlotCache.BatchSize)
}

// Run starts the HTTP server and the slot cache warmer, then blocks until shutdown
func (app *App) Run() error {
	if err := app.Warmer.Start(); err != nil {
		return fmt.Errorf("failed to start slot cache warmer: %w", err)
	}

	app.jobs.Go(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, initialWarmTimeout)
		defer cancel()
		if err := app.Warmer.WarmToday(ctx); err != nil {
			app.Log.Warnf("Initial slot cache warm failed: %+v", err)
		}
	})

	serverErr := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	return app.waitForShutdown(serverErr)
}

// waitForShutdown blocks until an interrupt signal is received or the server fails
func (app *App) waitForShutdown(serverErr <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		app.Log.Info("Shutting down server...")
	case err := <-serverErr:
		app.Log.Errorf("Failed to start server: %v", err)
		runErr = err
	}

	app.Warmer.Stop()
	app.jobs.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return runErr
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
