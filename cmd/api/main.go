package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/ong-backend/internal/api"
	"github.com/baharkarakas/ong-backend/internal/auth"
	"github.com/baharkarakas/ong-backend/internal/config"
	"github.com/baharkarakas/ong-backend/internal/db"
	"github.com/baharkarakas/ong-backend/internal/logger"
	"github.com/baharkarakas/ong-backend/internal/metrics"
	"github.com/baharkarakas/ong-backend/internal/repository"
	"github.com/baharkarakas/ong-backend/internal/repository/memory"
	"github.com/baharkarakas/ong-backend/internal/repository/postgres"
	"github.com/baharkarakas/ong-backend/internal/services"
	"github.com/baharkarakas/ong-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	wp := worker.NewPool(cfg.HashWorkers)
	defer wp.Stop()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	hasher := auth.NewPasswordHasher(wp, cfg.BcryptCost)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:         cfg,
		UserSvc:     services.NewUserService(repos.Users, repos.Resources, hasher, tokens),
		ResourceSvc: services.NewResourceService(repos.Users, repos.Resources),
		Tokens:      tokens,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("env check",
		"APP_ENV", cfg.Env,
		"STORE_DRIVER", cfg.StoreDriver,
		"JWT_ISSUER", cfg.JWTIssuer,
		"JWT_SECRET_len", len(cfg.JWTSecret),
		"HASH_WORKERS", cfg.HashWorkers,
	)

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (repository.Repositories, func(), error) {
	if cfg.StoreDriver == "memory" {
		return memory.NewRepositories(), func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return repository.Repositories{}, nil, err
		}
		slog.Info("migrations applied")
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
