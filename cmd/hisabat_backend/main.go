package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	_ "github.com/hisabat-app/hisabat-backend/cmd/docs"
	portssvc "github.com/hisabat-app/hisabat-backend/internal/core/ports/services"
	"github.com/hisabat-app/hisabat-backend/internal/core/services"
	"github.com/hisabat-app/hisabat-backend/internal/handlers"
	"github.com/hisabat-app/hisabat-backend/internal/jobs"
	"github.com/hisabat-app/hisabat-backend/internal/middleware"
	"github.com/hisabat-app/hisabat-backend/internal/platform/config"
	"github.com/hisabat-app/hisabat-backend/internal/repositories/database/pgsql"
	"github.com/hisabat-app/hisabat-backend/pkg/database"
)

// @title Hisabat Backend API
// @version 1.0
// @description Double-entry bookkeeping and financial integrity engine.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.EnableWorker {
		worker, err := newWorker(cfg, serviceContainer, logger)
		if err != nil {
			logger.Error("Failed to configure background worker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		go func() {
			if err := worker.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("Background worker stopped", slog.String("error", err.Error()))
			}
		}()
		logger.Info("Background worker started", slog.String("redis_addr", cfg.RedisAddr))
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies pending "up" migrations through a temporary
// database/sql connection on the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func newWorker(cfg *config.Config, serviceContainer *portssvc.ServiceContainer, logger *slog.Logger) (*jobs.Worker, error) {
	metrics := jobs.NewMetrics(nil)

	workerCfg := jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeDepreciationRun, Handler: jobs.NewDepreciationRunHandler(serviceContainer.Depreciation, metrics, logger)},
			{Type: jobs.TaskTypeIntegrityVerify, Handler: jobs.NewIntegrityVerifyHandler(serviceContainer.Integrity, metrics, logger)},
		},
	}

	if cfg.WorkerCompanyID != "" {
		depTask, err := jobs.NewDepreciationRunTask(jobs.DepreciationRunPayload{CompanyID: cfg.WorkerCompanyID})
		if err != nil {
			return nil, err
		}
		verifyTask, err := jobs.NewIntegrityVerifyTask(jobs.IntegrityVerifyPayload{CompanyID: cfg.WorkerCompanyID})
		if err != nil {
			return nil, err
		}
		workerCfg.Cron = []jobs.CronRegistration{
			{Spec: cfg.DepreciationCron, Task: depTask},
			{Spec: cfg.IntegrityCron, Task: verifyTask},
		}
	}

	return jobs.NewWorker(workerCfg)
}
