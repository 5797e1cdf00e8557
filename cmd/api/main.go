package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkaganm/balance-store/internal/api"
	"github.com/mkaganm/balance-store/internal/api/handlers"
	"github.com/mkaganm/balance-store/internal/auth"
	"github.com/mkaganm/balance-store/internal/config"
	"github.com/mkaganm/balance-store/internal/db"
	"github.com/mkaganm/balance-store/internal/logger"
	"github.com/mkaganm/balance-store/internal/metrics"
	"github.com/mkaganm/balance-store/internal/middleware"
	repo "github.com/mkaganm/balance-store/internal/repository"
	"github.com/mkaganm/balance-store/internal/repository/memory"
	"github.com/mkaganm/balance-store/internal/repository/postgres"
	"github.com/mkaganm/balance-store/internal/services"
	"github.com/mkaganm/balance-store/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var balances repo.Balances
	var operationLogs repo.OperationLogs
	var dbPool *pgxpool.Pool

	switch cfg.StoreDriver {
	case "memory":
		repos := memory.NewRepositories()
		balances, operationLogs = repos.Balances, repos.OperationLogs
		log.Warn("using in-memory store, state is lost on restart")
	default:
		var err error
		dbPool, err = db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, dbPool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}

		repos := postgres.NewRepositories(dbPool)
		balances, operationLogs = repos.Balances, repos.OperationLogs
	}

	wp := worker.NewPool(4)
	defer wp.Stop()

	balanceSvc := services.NewBalanceService(balances, operationLogs, wp)

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, 15*time.Minute)
	am := middleware.NewAuthMiddleware(tm, cfg.Env)
	ah := handlers.NewAuthHandler(tm, cfg.OperatorKeyHash)

	metrics.Init()
	r := api.NewRouter(cfg, balanceSvc, am, ah)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "driver", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
