package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"proctor_guard_backend/internal/config"
	"proctor_guard_backend/internal/controller"
	"proctor_guard_backend/internal/detection"
	"proctor_guard_backend/internal/repository"
	"proctor_guard_backend/internal/service"
	"proctor_guard_backend/internal/util"
	"proctor_guard_backend/pkg/database"
	"proctor_guard_backend/pkg/logger"
	"proctor_guard_backend/pkg/monitoring"
	"proctor_guard_backend/pkg/security"
	"proctor_guard_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Detector detection.FaceDetector

	services       *services
	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	student    *repository.StudentRepository
	exam       *repository.ExamRepository
	alert      *repository.AlertRepository
	submission *repository.SubmissionRepository
}

type services struct {
	student    *service.StudentService
	exam       *service.ExamService
	proctor    *service.ProctorService
	submission *service.SubmissionService
	dashboard  *service.DashboardService
	presence   *service.PresenceService
	archive    *service.EvidenceArchiveService
}

type controllers struct {
	student    *controller.StudentController
	exam       *controller.ExamController
	proctor    *controller.ProctorController
	submission *controller.SubmissionController
	dashboard  *controller.DashboardController
	monitor    *controller.MonitorController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		student:    repository.NewStudentRepository(db),
		exam:       repository.NewExamRepository(db),
		alert:      repository.NewAlertRepository(db),
		submission: repository.NewSubmissionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.archive = service.NewEvidenceArchiveService(cfg)
	s.presence = service.NewPresenceService(rdb, cfg.Presence.TTLSeconds)
	s.student = service.NewStudentService(repos.student)
	s.exam = service.NewExamService(repos.exam)
	s.proctor = service.NewProctorService(repos.alert, repos.exam, a.Detector, s.archive, s.presence)
	s.submission = service.NewSubmissionService(repos.submission, repos.exam)
	s.dashboard = service.NewDashboardService(repos.student, repos.exam, repos.alert, repos.submission, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		student:    controller.NewStudentController(s.student),
		exam:       controller.NewExamController(s.exam),
		proctor:    controller.NewProctorController(s.proctor),
		submission: controller.NewSubmissionController(s.submission),
		dashboard:  controller.NewDashboardController(s.dashboard),
		monitor:    controller.NewMonitorController(s.presence),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	runMigrations := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, runMigrations)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	// 迁移模式不加载级联模型、不起 HTTP
	if cfg.MigrateOnly {
		return app
	}

	// 人脸检测模型只在启动时加载一次，之后只读
	detector, err := detection.NewPigoDetector(cfg.Detection)
	if err != nil {
		logger.Log.Fatal("Failed to load face detection cascade",
			zap.String("cascade_file", cfg.Detection.CascadeFile),
			zap.Error(err))
	}
	app.Detector = detector

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 在线名单和大盘缓存能退化，Redis 挂了不拦着开考
		logger.Log.Warn("Redis unavailable, continuing without presence tracking", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("proctor-guard", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/evidence", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
