package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"risk_screening_backend/internal/config"
	"risk_screening_backend/internal/controller"
	"risk_screening_backend/internal/repository"
	"risk_screening_backend/internal/service"
	"risk_screening_backend/pkg/configwatcher"
	"risk_screening_backend/pkg/database"
	"risk_screening_backend/pkg/logger"
	"risk_screening_backend/pkg/monitoring"
	"risk_screening_backend/pkg/security"
	"risk_screening_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "risk-screening-backend"

type App struct {
	Config     *config.Config
	ConfigFile string
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client

	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	quiz      *repository.LifestyleQuizRepository
	attempt   *repository.LifestyleQuizAttemptRepository
	screening *repository.ScreeningRepository

	knowledgeQuiz    *repository.KnowledgeQuizRepository
	knowledgeAttempt *repository.KnowledgeQuizAttemptRepository
}

type services struct {
	auth      *service.AuthService
	quiz      *service.LifestyleQuizService
	dashboard *service.DashboardService
	screening *service.ScreeningService
	knowledge *service.KnowledgeQuizService
}

type controllers struct {
	auth      *controller.AuthController
	quiz      *controller.LifestyleQuizController
	dashboard *controller.DashboardController
	screening *controller.ScreeningController
	knowledge *controller.KnowledgeQuizController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		quiz:      repository.NewLifestyleQuizRepository(db, rdb, cfg.Cache.QuizTTL()),
		attempt:   repository.NewLifestyleQuizAttemptRepository(db),
		screening: repository.NewScreeningRepository(db),

		knowledgeQuiz:    repository.NewKnowledgeQuizRepository(db),
		knowledgeAttempt: repository.NewKnowledgeQuizAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	return &services{
		auth:      service.NewAuthService(repos.user, cfg),
		quiz:      service.NewLifestyleQuizService(repos.quiz, repos.attempt),
		dashboard: service.NewDashboardService(repos.quiz, repos.attempt, repos.user),
		screening: service.NewScreeningService(repos.quiz, repos.attempt, repos.screening, cfg.Screening.LookupConcurrency),
		knowledge: service.NewKnowledgeQuizService(repos.knowledgeQuiz, repos.knowledgeAttempt),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		quiz:      controller.NewLifestyleQuizController(s.quiz),
		dashboard: controller.NewDashboardController(s.dashboard),
		screening: controller.NewScreeningController(s.screening),
		knowledge: controller.NewKnowledgeQuizController(s.knowledge),
		health:    controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// prepareDatabase release 模式下只有指定 -migrate 才迁移；参考数据为空时总会写入
func (a *App) prepareDatabase(cfg *config.Config) {
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(a.DB); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Seed(ctx, a.DB, cfg.ForceSeed); err != nil {
		logger.Log.Fatal("Failed to seed database", zap.Error(err))
	}
}

func NewApp(cfg *config.Config, configFile string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully", zap.Stringer("level", logger.Level()))

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config:     cfg,
		ConfigFile: configFile,
		DB:         db,
	}

	app.prepareDatabase(cfg)
	if cfg.MigrateOnly {
		return app
	}

	// 缓存不可用时问卷直接查库
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, quiz cache disabled", zap.Error(err))
	} else {
		app.Redis = rdb
	}

	repos := app.initRepositories(db, app.Redis, cfg)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(serviceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.SetLevel)
	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		err := configwatcher.WatchConfig(watchCtx, a.ConfigFile, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exiting")
	logger.Log.Sync()
}
