package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-roster/config"
	deliveryHttp "doctor-roster/internal/delivery/http"
	"doctor-roster/internal/delivery/http/handler"
	"doctor-roster/internal/delivery/http/middleware"
	"doctor-roster/internal/infrastructure/cache"
	"doctor-roster/internal/infrastructure/database"
	"doctor-roster/internal/repository"
	"doctor-roster/internal/service"
	"doctor-roster/internal/usecase"
	"doctor-roster/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Setup logger
	SetupLogger(cfg.App.LogLevel)

	// Apply schema migrations before the pool is opened
	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(cfg.DB); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient)

	return app, nil
}

// SetupLogger configures the logrus logger
func SetupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	shiftRequestRepo := repository.NewShiftRequestRepository(db)
	leaveRepo := repository.NewLeaveRequestRepository(db)
	chatSessionRepo := repository.NewChatSessionRepository(db)

	// Initialize services
	notifier := service.NewLineNotifier(cfg.Line.APIBaseURL, cfg.Line.ChannelAccessToken, cfg.Notify.Timeout, log)
	dedupService := service.NewWebhookDedupService(redisClient, cfg.Webhook.DedupTTL, log)
	exporter := service.NewShiftTableExporter()
	if cfg.Line.ChannelAccessToken == "" {
		log.Warn("LINE_CHANNEL_ACCESS_TOKEN is empty, LINE notifications are disabled")
	}

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorRepo)
	departmentUsecase := usecase.NewDepartmentUsecase(log, departmentRepo)
	shiftRequestUsecase := usecase.NewShiftRequestUsecase(log, shiftRequestRepo, doctorRepo)
	shiftTableUsecase := usecase.NewShiftTableUsecase(log, shiftRequestRepo, leaveRepo, exporter)
	leaveUsecase := usecase.NewLeaveRequestUsecase(log, leaveRepo, doctorRepo, chatSessionRepo, notifier, cfg.Notify)
	lineChatUsecase := usecase.NewLineChatUsecase(log, chatSessionRepo, doctorRepo, leaveUsecase, notifier, dedupService, cfg.Notify.Timeout)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	departmentHandler := handler.NewDepartmentHandler(departmentUsecase, customValidator)
	shiftRequestHandler := handler.NewShiftRequestHandler(shiftRequestUsecase, shiftTableUsecase, customValidator)
	leaveHandler := handler.NewLeaveHandler(leaveUsecase, customValidator)
	lineWebhookHandler := handler.NewLineWebhookHandler(lineChatUsecase)

	// Initialize middleware
	lineSignatureMiddleware := middleware.NewLineSignatureMiddleware(cfg.Line.ChannelSecret, log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		doctorHandler,
		departmentHandler,
		shiftRequestHandler,
		leaveHandler,
		lineWebhookHandler,
		lineSignatureMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
