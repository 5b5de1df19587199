package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-directory/config"
	deliveryHttp "doctor-directory/internal/delivery/http"
	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/delivery/http/view"
	"doctor-directory/internal/infrastructure/cache"
	"doctor-directory/internal/infrastructure/database"
	"doctor-directory/internal/infrastructure/storage"
	"doctor-directory/internal/repository"
	"doctor-directory/internal/service"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/jwt"
	"doctor-directory/pkg/validator"

	"github.com/fsnotify/fsnotify"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options are the command line settings main passes in.
type Options struct {
	ConfigPath string
	Migrate    bool
}

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	rateLimiter *middleware.RateLimiter
}

// New creates a new App instance with all dependencies initialized
func New(opts Options) (*App, error) {
	app := &App{Log: logrus.StandardLogger()}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	setupLogger(app.Log, cfg.App.LogLevel)
	app.Log.Info("Configuration loaded successfully")

	if opts.ConfigPath != "" {
		config.Watch(opts.ConfigPath, func(e fsnotify.Event, fresh *config.Config) {
			app.Log.WithField("file", e.Name).Info("Configuration changed")
			setupLogger(app.Log, fresh.App.LogLevel)
		})
	}

	db, err := database.NewPostgresConnection(cfg.DB, database.LogLevelFor(cfg.App.Env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if opts.Migrate || cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			app.Close()
			return nil, err
		}
	}

	// Redis is optional; the home page is computed on every request without it.
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Log.Warnf("Redis unavailable, home cache disabled: %v", err)
		} else {
			app.RedisClient = redisClient
		}
	}

	media, err := storage.NewLocalStorage(cfg.Media.Root, cfg.Media.URL, cfg.Media.MaxUploadBytes, app.Log)
	if err != nil {
		app.Close()
		return nil, err
	}

	server, err := app.initializeServer(media)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger. Unknown levels fall back to info.
func setupLogger(log *logrus.Logger, level string) {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(media *storage.LocalStorage) (*http.Server, error) {
	cfg, db, log := app.Config, app.DB, app.Log

	jwtService := jwt.NewJWTService(cfg.AdminAuth)
	customValidator := validator.NewValidator()

	renderer, err := view.NewRenderer(log)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Repositories
	specialtyRepo := repository.NewSpecialtyRepository()
	hospitalRepo := repository.NewHospitalRepository()
	doctorRepo := repository.NewDoctorRepository()
	experienceRepo := repository.NewExperienceRepository()
	reviewRepo := repository.NewReviewRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	homeCache := service.NewHomeCache(app.RedisClient, cfg.Cache.HomeTTL, log)

	// Usecases
	specialtyUsecase := usecase.NewSpecialtyUsecase(db, log, customValidator, specialtyRepo, auditService)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, customValidator, hospitalRepo, media, cfg.Media.URL, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, customValidator, doctorRepo, hospitalRepo, specialtyRepo, reviewRepo, media, cfg.Media.URL, auditService)
	experienceUsecase := usecase.NewExperienceUsecase(db, log, customValidator, doctorRepo, experienceRepo, auditService)
	reviewUsecase := usecase.NewReviewUsecase(db, log, customValidator, doctorRepo, reviewRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	homeUsecase := usecase.NewHomeUsecase(db, log, specialtyRepo, hospitalRepo, doctorRepo, reviewRepo, homeCache, cfg.Media.URL)
	directoryUsecase := usecase.NewDirectoryUsecase(db, log, doctorRepo, hospitalRepo, specialtyRepo, reviewRepo, cfg.Media.URL)

	// Handlers
	handlers := deliveryHttp.Handlers{
		Page:       handler.NewPageHandler(homeUsecase, directoryUsecase, renderer, log),
		Specialty:  handler.NewSpecialtyHandler(specialtyUsecase, customValidator),
		Hospital:   handler.NewHospitalHandler(hospitalUsecase, customValidator),
		Doctor:     handler.NewDoctorHandler(doctorUsecase, customValidator),
		Experience: handler.NewExperienceHandler(experienceUsecase, customValidator),
		Review:     handler.NewReviewHandler(reviewUsecase, customValidator),
		AuditLog:   handler.NewAuditLogHandler(auditLogUsecase),
		Health:     handler.NewHealthHandler(db, app.RedisClient),
	}

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	app.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)

	router := deliveryHttp.NewRouter(
		handlers,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
		app.rateLimiter,
		homeCache,
		media.Root(),
		cfg.Media.URL,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.rateLimiter.Run(ctx)

	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes the database and redis connections
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
