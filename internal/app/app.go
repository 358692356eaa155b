package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/controller"
	"lexile_eval_backend/internal/repository"
	"lexile_eval_backend/internal/service"
	"lexile_eval_backend/pkg/configwatcher"
	"lexile_eval_backend/pkg/database"
	"lexile_eval_backend/pkg/logger"
	"lexile_eval_backend/pkg/monitoring"
	"lexile_eval_backend/pkg/security"
	"lexile_eval_backend/pkg/tracing"

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
	user        *repository.UserRepository
	factorScore *repository.FactorScoreRepository
	testSession *repository.TestSessionRepository
}

type services struct {
	ai         *service.AIService
	generation *service.GenerationService
	auth       *service.AuthService
	user       *service.UserService
	test       *service.TestService
}

type controllers struct {
	auth   *controller.AuthController
	user   *controller.UserController
	test   *controller.TestController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		factorScore: repository.NewFactorScoreRepository(db),
		testSession: repository.NewTestSessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.generation = service.NewGenerationService(s.ai, cfg)
	s.auth = service.NewAuthService(repos.user, repos.factorScore, cfg)
	s.user = service.NewUserService(repos.user, repos.factorScore, repos.testSession)
	s.test = service.NewTestService(repos.user, repos.factorScore, repos.testSession, s.generation, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		user:   controller.NewUserController(s.auth, s.user, s.test),
		test:   controller.NewTestController(s.auth, s.test, a.Config),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := database.BackfillFactorScores(db, cfg.Curriculum.EvaluationFactors); err != nil {
		logger.Log.Fatal("Failed to backfill factor scores", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lexile-eval", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// Curriculum edits (topics, factors, tiers) apply without a restart.
	// Only the curriculum section is swapped, under its lock; the rest of the
	// config stays fixed so handlers can keep reading it directly.
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		cfg.SetCurriculum(newCfg.Curriculum)
		logger.Log.Info("Config reloaded",
			zap.Int("topics", len(newCfg.Curriculum.Topics)),
			zap.Int("factors", len(newCfg.Curriculum.EvaluationFactors)))
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
