package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/tunahan/uniplanner/internal/app/controllers"
	appMigrations "github.com/tunahan/uniplanner/internal/app/migrations"
	appRepos "github.com/tunahan/uniplanner/internal/app/repositories"
	appRoutes "github.com/tunahan/uniplanner/internal/app/routes"
	appServices "github.com/tunahan/uniplanner/internal/app/services"
	"github.com/tunahan/uniplanner/internal/config"
	"github.com/tunahan/uniplanner/internal/db"
	appMiddleware "github.com/tunahan/uniplanner/internal/middleware"
	pkgAuth "github.com/tunahan/uniplanner/internal/pkg/auth"
	"github.com/tunahan/uniplanner/internal/pkg/helpers"
	"github.com/tunahan/uniplanner/internal/pkg/logger"
	"github.com/tunahan/uniplanner/internal/pkg/procrun"
	"github.com/tunahan/uniplanner/internal/pkg/workspace"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	TimetableService    appServices.TimetableService
	CatalogService      appServices.CatalogService
	TimetableController *appControllers.TimetableController
	CatalogController   *appControllers.CatalogController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Workspaces          *workspace.Manager
	Logger              zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.Workspaces, err = workspace.NewManager(cfg.Solver.WorkspaceRoot)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize workspace manager")
		return nil, fmt.Errorf("failed to initialize workspace manager: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	solverCfg := appServices.SolverConfig{
		EnginePath:      cfg.Solver.EnginePath,
		RendererScript:  cfg.Solver.RendererScript,
		PythonBin:       cfg.Solver.PythonBin,
		EngineTimeout:   helpers.ParseDuration(cfg.Solver.EngineTimeout, 2*time.Minute),
		RendererTimeout: helpers.ParseDuration(cfg.Solver.RendererTimeout, 1*time.Minute),
	}

	deps.TimetableService = appServices.NewTimetableService(
		deps.Repos,
		deps.Workspaces,
		procrun.ExecRunner{},
		solverCfg,
		lgr,
	)
	deps.CatalogService = appServices.NewCatalogService(deps.Repos)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.TimetableController = appControllers.NewTimetableController(deps.TimetableService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.TimetableController,
		deps.CatalogController,
		deps.AuthMiddleware,
	)

	return router
}
