package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/schooladmin/internal/app/controllers"
	"github.com/yigit/schooladmin/internal/app/gateway"
	appRoutes "github.com/yigit/schooladmin/internal/app/routes"
	appServices "github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/config"
	appMiddleware "github.com/yigit/schooladmin/internal/middleware"
	pkgAuth "github.com/yigit/schooladmin/internal/pkg/auth"
	"github.com/yigit/schooladmin/internal/pkg/helpers"
	"github.com/yigit/schooladmin/internal/pkg/logger"
	"github.com/yigit/schooladmin/internal/pkg/websocket"
	"github.com/yigit/schooladmin/internal/seed"
	"github.com/yigit/schooladmin/internal/store"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store            *store.MemoryStore
	Services         *appServices.Services
	Facade           *gateway.Facade
	Hub              *websocket.Hub
	JWTService       *pkgAuth.JWTService
	APIController    *appControllers.APIController
	HealthController *appControllers.HealthController
	FeedHandler      *websocket.Handler
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
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

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	if len(cfg.EnvOverrides) > 0 {
		lgr.Debug().Strs("env", cfg.EnvOverrides).Msg("Configuration overridden from environment")
	}
	return cfg, lgr, nil
}

// BuildDependencies creates the store, services and transport layer.
func BuildDependencies(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Store = store.New(store.WithSuperAdmin(cfg.Auth.SuperAdminUsername, "Super Admin"))
	deps.Hub = websocket.NewHub(logger.Component("feed"))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenExp: helpers.ParseDuration(cfg.Auth.TokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.Auth.Issuer,
	})

	engine := appServices.NewEngine(deps.Store, appServices.Options{
		SectionCapacity:  cfg.Store.SectionCapacity,
		ActivityLogLimit: cfg.Store.ActivityLogLimit,
		DuplicateWindow:  helpers.ParseDuration(cfg.Store.DuplicateWindow, time.Second),
	}, nil, deps.Hub)
	deps.Services = appServices.NewServices(engine, deps.JWTService, cfg.Auth.BcryptCost)

	if err := deps.Services.Auth.SetPassword(ctx, cfg.Auth.SuperAdminUsername, cfg.Auth.SuperAdminPassword); err != nil {
		return nil, fmt.Errorf("failed to set super admin password: %w", err)
	}

	if cfg.Store.Seed {
		if err := seed.Load(ctx, deps.Services, deps.Store, lgr); err != nil {
			// Partial demo data is still usable
			lgr.Error().Err(err).Msg("Failed to load demo data, proceeding anyway...")
		}
	}

	deps.Facade = gateway.New(deps.Services)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth)
	deps.APIController = appControllers.NewAPIController(deps.Facade, logger.Component("api"))
	deps.HealthController = appControllers.NewHealthController()
	deps.FeedHandler = websocket.NewHandler(deps.Hub, appMiddleware.GetActor, logger.Component("feed"))

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.SimulatedLatency(helpers.ParseDuration(cfg.Server.SimulatedLatency, 0)))

	appRoutes.SetupRouter(router,
		deps.APIController,
		deps.HealthController,
		deps.FeedHandler,
		deps.AuthMiddleware,
	)

	return router
}
