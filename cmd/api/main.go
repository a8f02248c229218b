// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelamos/ledger-backend/internal/account"
	"github.com/angelamos/ledger-backend/internal/analysis"
	"github.com/angelamos/ledger-backend/internal/auth"
	"github.com/angelamos/ledger-backend/internal/config"
	"github.com/angelamos/ledger-backend/internal/core"
	"github.com/angelamos/ledger-backend/internal/health"
	"github.com/angelamos/ledger-backend/internal/middleware"
	"github.com/angelamos/ledger-backend/internal/server"
	"github.com/angelamos/ledger-backend/internal/transaction"
	"github.com/angelamos/ledger-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	deps := []health.Dependency{{Name: "database", Checker: db}}

	var (
		redis       *core.Redis
		revocations auth.RevocationStore
	)
	if cfg.UsesRedis() {
		redis, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		revocations = auth.NewRedisRevocationStore(
			redis.Client,
			cfg.Revocation.KeyPrefix,
		)
		deps = append(deps, health.Dependency{Name: "redis", Checker: redis})
		logger.Info("redis revocation store connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	} else {
		revocations = auth.NewMemoryRevocationStore()
		logger.Info("in-memory revocation store enabled")
	}

	hasher, err := core.NewPasswordHasher(cfg.Password)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", cfg.Auth.Algorithm,
		"ttl", tokens.DefaultTTL(),
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(db.DB, userRepo, hasher)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(tokens, revocations, hasher, userSvc)
	authHandler := auth.NewHandler(authSvc)

	accountSvc := account.NewService(account.NewRepository(db.DB))
	accountHandler := account.NewHandler(accountSvc)

	transactionRepo := transaction.NewRepository(db.DB)
	transactionSvc := transaction.NewService(transactionRepo, accountSvc)
	transactionHandler := transaction.NewHandler(transactionSvc)

	analysisSvc := analysis.NewService(
		analysis.NewRepository(db.DB),
		transactionRepo,
	)
	analysisHandler := analysis.NewHandler(analysisSvc)

	healthHandler := health.NewHandler(deps...)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(authSvc)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r, authenticator)
		accountHandler.RegisterRoutes(r, authenticator)
		transactionHandler.RegisterRoutes(r, authenticator)
		analysisHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if redis != nil {
		if err := redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
