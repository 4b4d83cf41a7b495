package app

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/controller"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/service"
	"coachpro_backend/pkg/configwatcher"
	"coachpro_backend/pkg/database"
	"coachpro_backend/pkg/logger"
	"coachpro_backend/pkg/monitoring"
	"coachpro_backend/pkg/security"
	"coachpro_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user           *repository.UserRepository
	profile        *repository.ProfileRepository
	program        *repository.ProgramRepository
	enrollment     *repository.EnrollmentRepository
	progress       *repository.ProgressRepository
	session        *repository.SessionRepository
	assessment     *repository.AssessmentRepository
	recommendation *repository.RecommendationRepository
	analytics      *repository.AnalyticsRepository
	setting        *repository.SettingRepository
}

type services struct {
	auth           *service.AuthService
	storage        *service.StorageService
	profile        *service.ProfileService
	program        *service.ProgramService
	enrollment     *service.EnrollmentService
	session        *service.SessionService
	assessment     *service.AssessmentService
	recommendation *service.RecommendationService
	report         *service.ReportService
	settings       *service.SettingsService
	dashboard      *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	profile    *controller.ProfileController
	program    *controller.ProgramController
	enrollment *controller.EnrollmentController
	session    *controller.SessionController
	assessment *controller.AssessmentController
	report     *controller.ReportController
	settings   *controller.SettingsController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		profile:        repository.NewProfileRepository(db),
		program:        repository.NewProgramRepository(db),
		enrollment:     repository.NewEnrollmentRepository(db),
		progress:       repository.NewProgressRepository(db),
		session:        repository.NewSessionRepository(db),
		assessment:     repository.NewAssessmentRepository(db),
		recommendation: repository.NewRecommendationRepository(db),
		analytics:      repository.NewAnalyticsRepository(db),
		setting:        repository.NewSettingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.profile = service.NewProfileService(repos.profile)
	s.program = service.NewProgramService(repos.program)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.progress, repos.program, db)
	s.session = service.NewSessionService(repos.session)
	s.assessment = service.NewAssessmentService(repos.assessment, s.enrollment, db)
	s.recommendation = service.NewRecommendationService(repos.recommendation, repos.progress, repos.setting)
	s.report = service.NewReportService(repos.analytics, repos.progress, repos.enrollment, repos.program, rdb)
	s.settings = service.NewSettingsService(repos.setting)
	s.dashboard = service.NewDashboardService(repos.program, repos.progress, repos.session, repos.enrollment)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		profile:    controller.NewProfileController(s.profile),
		program:    controller.NewProgramController(s.program),
		enrollment: controller.NewEnrollmentController(s.enrollment, s.recommendation),
		session:    controller.NewSessionController(s.session, s.storage),
		assessment: controller.NewAssessmentController(s.assessment),
		report:     controller.NewReportController(s.report),
		settings:   controller.NewSettingsController(s.settings),
		dashboard:  controller.NewDashboardController(s.dashboard, repos.user),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	service.SetStoreTimeout(time.Duration(cfg.Database.TimeoutSeconds) * time.Second)

	app := &App{
		Config: cfg,
		DB:     db,
	}

	// Migration already ran inside InitDB; nothing else is needed.
	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Reports fall back to live aggregation without a cache.
		logger.Log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, repos, db)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("coachpro-lms", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	if err := svcs.report.StartScheduler(cfg.Snapshot); err != nil {
		logger.Log.Error("Snapshot scheduler failed to start", zap.Error(err))
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(updated *config.Config) {
		logger.Log.Info("Configuration reloaded",
			zap.Bool("snapshot_enabled", updated.Snapshot.Enabled))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.services != nil && a.services.report != nil {
		a.services.report.StopScheduler()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
