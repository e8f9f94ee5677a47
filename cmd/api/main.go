package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garagelab/modstudio-backend/api"
	"github.com/garagelab/modstudio-backend/api/routes"
	"github.com/garagelab/modstudio-backend/internal/appointments"
	"github.com/garagelab/modstudio-backend/internal/auth"
	"github.com/garagelab/modstudio-backend/internal/builds"
	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/internal/catalog"
	"github.com/garagelab/modstudio-backend/internal/customers"
	"github.com/garagelab/modstudio-backend/internal/history"
	"github.com/garagelab/modstudio-backend/internal/insights"
	"github.com/garagelab/modstudio-backend/internal/reports"
	"github.com/garagelab/modstudio-backend/pkg/config"
	"github.com/garagelab/modstudio-backend/pkg/db"
	"github.com/garagelab/modstudio-backend/pkg/logger"
	"github.com/garagelab/modstudio-backend/pkg/metrics"
	"github.com/garagelab/modstudio-backend/pkg/migrate"
	"github.com/garagelab/modstudio-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	customerRepo := customers.NewRepository(dbClient.DB())
	carRepo := cars.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	billRepo := history.NewRepository(dbClient.DB())
	reportRepo := reports.NewRepository(dbClient.DB())
	appointmentRepo := appointments.NewRepository(dbClient.DB())

	if cfg.Features.SeedCatalog {
		seeded, err := catalogRepo.Seed(ctx)
		if err != nil {
			logg.Error(ctx, "failed to seed catalog", err)
			os.Exit(1)
		}
		if seeded > 0 {
			logg.Info(logg.WithFields(ctx, map[string]any{"count": seeded}), "seeded catalog")
		}
	}

	authService, err := auth.NewService(auth.ServiceParams{
		CustomerRepo: customerRepo,
		RateLimiter:  redisClient,
		JWT:          cfg.JWT,
		RateLimit:    cfg.AuthRateLimit,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customers.ServiceParams{CustomerRepo: customerRepo})
	if err != nil {
		logg.Error(ctx, "failed to create customers service", err)
		os.Exit(1)
	}

	carService, err := cars.NewService(cars.ServiceParams{CarRepo: carRepo})
	if err != nil {
		logg.Error(ctx, "failed to create cars service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{CatalogRepo: catalogRepo})
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	buildService, err := builds.NewService(builds.ServiceParams{
		CustomerRepo: customerRepo,
		CarRepo:      carRepo,
		CatalogRepo:  catalogRepo,
		Tx:           dbClient,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create builds service", err)
		os.Exit(1)
	}

	historyService, err := history.NewService(history.ServiceParams{
		BillRepo:     billRepo,
		CustomerRepo: customerRepo,
		CarRepo:      carRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create history service", err)
		os.Exit(1)
	}

	insightService, err := insights.NewService(insights.ServiceParams{
		Profiles:    historyService,
		CatalogRepo: catalogRepo,
		CarRepo:     carRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create insights service", err)
		os.Exit(1)
	}

	reportService, err := reports.NewService(reports.ServiceParams{
		ReportRepo:  reportRepo,
		HistoryRepo: billRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create reports service", err)
		os.Exit(1)
	}

	appointmentService, err := appointments.NewService(appointments.ServiceParams{
		AppointmentRepo: appointmentRepo,
		CarRepo:         carRepo,
	})
	if err != nil {
		logg.Error(ctx, "failed to create appointments service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	handler := routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, metricsHandler, routes.Services{
		Auth:         authService,
		Customers:    customerService,
		Cars:         carService,
		Catalog:      catalogService,
		Builds:       buildService,
		History:      historyService,
		Insights:     insightService,
		Reports:      reportService,
		Appointments: appointmentService,
	})

	server := api.NewServer(cfg, handler)

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": server.Addr,
	})
	logg.Info(startCtx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logg.Error(startCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		if closeErr := server.Close(); closeErr != nil {
			logg.Error(ctx, "forced close failed", closeErr)
		}
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
