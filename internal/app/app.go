package app

import (
	"context"
	"learntrack_backend/internal/config"
	"learntrack_backend/internal/controller"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/service"
	"learntrack_backend/pkg/database"
	"learntrack_backend/pkg/logger"
	"learntrack_backend/pkg/monitoring"
	"learntrack_backend/pkg/security"
	"learntrack_backend/pkg/tracing"
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
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	topic    *repository.TopicRepository
	content  *repository.ContentRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	catalog    *service.CatalogService
	progress   *service.ProgressService
	aggregator *service.AggregatorService
	dashboard  *service.DashboardService
	storage    *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	topic        *controller.TopicController
	progress     *controller.ProgressController
	adminCatalog *controller.AdminCatalogController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		topic:    repository.NewTopicRepository(db),
		content:  repository.NewContentRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.catalog = service.NewCatalogService(repos.topic, repos.content)
	s.progress = service.NewProgressService(repos.progress, repos.content)
	s.aggregator = service.NewAggregatorService(repos.topic, repos.content, repos.progress)
	s.user = service.NewUserService(repos.user, s.aggregator, cfg)
	s.dashboard = service.NewDashboardService(repos.user, repos.topic, repos.content, repos.progress, rdb)

	return s, nil
}

func initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user, s.storage),
		topic:        controller.NewTopicController(s.catalog, s.progress, s.aggregator),
		progress:     controller.NewProgressController(s.progress, s.aggregator),
		adminCatalog: controller.NewAdminCatalogController(s.catalog),
		dashboard:    controller.NewDashboardController(s.dashboard, s.user),
		health:       controller.NewHealthController(db, rdb),
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
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The dashboard cache degrades gracefully; progress data never
		// touches Redis, so the server can still serve learners.
		logger.Log.Warn("Redis unavailable, stats caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := initRepositories(db)
	services, err := initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learntrack", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
