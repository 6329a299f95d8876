package app

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/controller"
	"career_coach_backend/internal/repository"
	"career_coach_backend/internal/service"
	"career_coach_backend/pkg/configwatcher"
	"career_coach_backend/pkg/database"
	"career_coach_backend/pkg/logger"
	"career_coach_backend/pkg/monitoring"
	"career_coach_backend/pkg/security"
	"career_coach_backend/pkg/tracing"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
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
	services *services

	tracer         *sdktrace.TracerProvider
	limiter        *security.Limiter
	stopBackground context.CancelFunc
}

type repositories struct {
	user        *repository.UserRepository
	skill       *repository.SkillRepository
	activity    *repository.ActivityRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	catalog        *service.CatalogService
	ledger         *service.LedgerService
	auth           *service.AuthService
	profile        *service.ProfileService
	recommendation *service.RecommendationService
	leaderboard    *service.LeaderboardService
	dashboard      *service.DashboardService
}

type controllers struct {
	auth           *controller.AuthController
	user           *controller.UserController
	activity       *controller.ActivityController
	dashboard      *controller.DashboardController
	leaderboard    *controller.LeaderboardController
	role           *controller.RoleController
	recommendation *controller.RecommendationController
	health         *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		skill:       repository.NewSkillRepository(db),
		activity:    repository.NewActivityRepository(db),
		leaderboard: repository.NewLeaderboardRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, catalog *service.CatalogService) (*services, error) {
	points, err := service.NewPointTable(cfg.Ledger.Points, cfg.Ledger.StreakTypes)
	if err != nil {
		return nil, fmt.Errorf("ledger points: %w", err)
	}

	s := &services{catalog: catalog}
	s.ledger = service.NewLedgerService(
		repos.activity,
		repos.user,
		repos.leaderboard,
		points,
		cfg.Ledger.MaxRetries,
		cfg.Ledger.RetryBackoff,
	)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.profile = service.NewProfileService(repos.user, repos.skill, s.ledger)
	s.recommendation = service.NewRecommendationService(
		repos.skill,
		repos.user,
		catalog,
		service.NewFitScorer(service.ScoringPolicyFromConfig(cfg.Scoring)),
	)
	s.leaderboard = service.NewLeaderboardService(repos.user, repos.leaderboard)
	s.dashboard = service.NewDashboardService(s.ledger, s.leaderboard, cfg.Ledger.HeatmapDays)
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		user:           controller.NewUserController(s.profile),
		activity:       controller.NewActivityController(s.ledger, a.Config.Ledger.HeatmapDays),
		dashboard:      controller.NewDashboardController(s.dashboard),
		leaderboard:    controller.NewLeaderboardController(s.leaderboard),
		role:           controller.NewRoleController(s.catalog),
		recommendation: controller.NewRecommendationController(s.recommendation),
		health:         controller.NewHealthController(a.DB, a.Redis, s.catalog),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		if window <= 0 {
			window = time.Minute
		}
		a.limiter = security.NewLimiter(cfg.RateLimit.MaxRequests, window)
		router.Use(a.limiter.Middleware())
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 在已建立的连接上组装应用，不负责日志、追踪与文件监听
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, catalog *service.CatalogService) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg, catalog)
	if err != nil {
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != "release" {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	logger.Log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 排行榜缓存不可用时回退到数据库
		logger.Log.Warn("Redis unavailable, leaderboard falls back to database", zap.Error(err))
		rdb = nil
	}

	source, err := service.NewCatalogSource(&cfg.Catalog)
	if err != nil {
		logger.Log.Fatal("Failed to create catalog source", zap.Error(err))
	}
	catalog := service.NewCatalogService(source, cfg.Catalog.WeightTolerance)
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = catalog.Load(loadCtx)
	cancel()
	if err != nil {
		logger.Log.Fatal("Failed to load role catalog", zap.Error(err))
	}

	app, err := New(cfg, db, rdb, catalog)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("career-coach", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.services.leaderboard.Warm(warmCtx, 1000); err != nil {
		logger.Log.Warn("Failed to warm leaderboard cache", zap.Error(err))
	}
	cancelWarm()

	app.startBackground(catalog)

	return app
}

// startBackground 启动限流清理与目录热加载，Run 退出时统一停止
func (a *App) startBackground(catalog *service.CatalogService) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopBackground = cancel

	if a.limiter != nil {
		go a.limiter.Run(ctx)
	}

	if !a.Config.Catalog.Watch || a.Config.Catalog.Source != config.CatalogSourceLocal {
		return
	}
	if err := configwatcher.WatchFile(ctx, a.Config.Catalog.Path, time.Second, catalog.Reload); err != nil {
		logger.Log.Error("Failed to watch role catalog", zap.Error(err))
		return
	}
	logger.Log.Info("Watching role catalog", zap.String("path", a.Config.Catalog.Path))
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

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

	if a.stopBackground != nil {
		a.stopBackground()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
