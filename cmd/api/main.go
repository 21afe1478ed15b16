package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ridgelinemoto/dealerops-backend/api/routes"
	"github.com/ridgelinemoto/dealerops-backend/internal/hdimport"
	"github.com/ridgelinemoto/dealerops-backend/internal/orders"
	"github.com/ridgelinemoto/dealerops-backend/internal/progress"
	"github.com/ridgelinemoto/dealerops-backend/internal/reconcile"
	"github.com/ridgelinemoto/dealerops-backend/internal/stock"
	"github.com/ridgelinemoto/dealerops-backend/internal/transition"
	"github.com/ridgelinemoto/dealerops-backend/pkg/config"
	"github.com/ridgelinemoto/dealerops-backend/pkg/db"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
	"github.com/ridgelinemoto/dealerops-backend/pkg/metrics"
	"github.com/ridgelinemoto/dealerops-backend/pkg/migrate"
	"github.com/ridgelinemoto/dealerops-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	fulfillmentMetrics := metrics.NewFulfillmentMetrics(registry)

	ordersRepo := orders.NewRepository(dbClient.DB())
	stockRepo := stock.NewRepository(dbClient.DB())
	progressRepo := progress.NewRepository(dbClient.DB())
	hdRepo := hdimport.NewRepository(dbClient.DB())

	reconcileService, err := reconcile.NewService(ordersRepo, stockRepo, progressRepo, fulfillmentMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create reconcile service", err)
		os.Exit(1)
	}

	transitionService, err := transition.NewService(progressRepo, stockRepo, ordersRepo, dbClient, fulfillmentMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create transition service", err)
		os.Exit(1)
	}

	hdService, err := hdimport.NewService(hdRepo, dbClient, logg, fulfillmentMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create hd import service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			reconcileService,
			transitionService,
			hdService,
			stockRepo,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
