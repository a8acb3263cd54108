// Package bootstrap wires configuration, storage, repositories, services
// and controllers into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/zhanel/coursehub/internal/app/auth"
	appControllers "github.com/zhanel/coursehub/internal/app/controllers"
	appMigrations "github.com/zhanel/coursehub/internal/app/migrations"
	appRepos "github.com/zhanel/coursehub/internal/app/repositories"
	appRoutes "github.com/zhanel/coursehub/internal/app/routes"
	appServices "github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/config"
	"github.com/zhanel/coursehub/internal/db"
	appMiddleware "github.com/zhanel/coursehub/internal/middleware"
	pkgAuth "github.com/zhanel/coursehub/internal/pkg/auth"
	"github.com/zhanel/coursehub/internal/pkg/cache"
	"github.com/zhanel/coursehub/internal/pkg/filestorage"
	"github.com/zhanel/coursehub/internal/pkg/helpers"
	"github.com/zhanel/coursehub/internal/pkg/logger"
	"github.com/zhanel/coursehub/internal/scheduler"
	"github.com/zhanel/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	CourseService          appServices.CourseService
	EnrollmentService      appServices.EnrollmentService
	AssessmentService      appServices.AssessmentService
	FeedbackService        appServices.FeedbackService
	AttachmentService      appServices.AttachmentService
	NotificationService    appServices.NotificationService
	StatsService           appServices.StatsService
	AuthController         *appControllers.AuthController
	CourseController       *appControllers.CourseController
	EnrollmentController   *appControllers.EnrollmentController
	AssessmentController   *appControllers.AssessmentController
	FeedbackController     *appControllers.FeedbackController
	AttachmentController   *appControllers.AttachmentController
	NotificationController *appControllers.NotificationController
	StatsController        *appControllers.StatsController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	FileStorage            *filestorage.LocalStorage
	ReportCache            *cache.ReportCache
	Scheduler              *scheduler.Scheduler
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(ctx, database.Pool, lgr); err != nil {
		// Seeding failures are not fatal; the API can serve without defaults.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	dbPool := database.Pool

	deps.Repos = appRepos.NewRepositories(dbPool)

	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	if cfg.Redis.Enabled {
		reportTTL := helpers.ParseDuration(cfg.Redis.ReportTTL, 5*time.Minute)
		deps.ReportCache, err = cache.NewReportCache(context.Background(), cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      reportTTL,
		})
		if err != nil {
			// Reports degrade to direct queries without the cache.
			lgr.Warn().Err(err).Msg("Report cache unavailable, continuing without it")
			deps.ReportCache = nil
		}
	}

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.Users)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.JWTService, lgr)
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.Notifications,
		deps.Repos.Enrollments,
		deps.Repos.Users,
		lgr,
	)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.Courses,
		deps.Repos.Modules,
		deps.NotificationService,
		lgr,
	)
	deps.EnrollmentService = appServices.NewEnrollmentService(database, deps.Repos.Enrollments, deps.Repos.Courses, lgr)
	deps.AssessmentService = appServices.NewAssessmentService(
		database,
		deps.Repos.Assessments,
		deps.Repos.Enrollments,
		deps.Repos.Modules,
		lgr,
	)
	deps.FeedbackService = appServices.NewFeedbackService(deps.Repos.Feedbacks, deps.Repos.Courses, lgr)
	deps.AttachmentService = appServices.NewAttachmentService(
		deps.Repos.Attachments,
		deps.Repos.Modules,
		deps.Repos.Courses,
		deps.FileStorage,
		deps.NotificationService,
		lgr,
	)
	deps.StatsService = appServices.NewStatsService(deps.Repos.Stats, deps.ReportCache, lgr)

	if cfg.Scheduler.Enabled {
		deps.Scheduler, err = scheduler.New(deps.StatsService, cfg.Scheduler.WarmReportsEvery, lgr)
		if err != nil {
			return nil, err
		}
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService)
	deps.AssessmentController = appControllers.NewAssessmentController(deps.AssessmentService)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService, deps.AuthService)
	deps.AttachmentController = appControllers.NewAttachmentController(deps.AttachmentService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.StatsController = appControllers.NewStatsController(deps.StatsService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.EnrollmentController,
		deps.AssessmentController,
		deps.FeedbackController,
		deps.AttachmentController,
		deps.NotificationController,
		deps.StatsController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	lgr.Info().Msg("Router configured")
	return router
}
