package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/calzalindo/catalog-backend/api/routes"
	"github.com/calzalindo/catalog-backend/internal/catalog"
	"github.com/calzalindo/catalog-backend/internal/images"
	"github.com/calzalindo/catalog-backend/internal/inquiry"
	"github.com/calzalindo/catalog-backend/internal/pricing"
	"github.com/calzalindo/catalog-backend/internal/triage"
	"github.com/calzalindo/catalog-backend/pkg/config"
	"github.com/calzalindo/catalog-backend/pkg/db"
	"github.com/calzalindo/catalog-backend/pkg/logger"
	"github.com/calzalindo/catalog-backend/pkg/metrics"
	"github.com/calzalindo/catalog-backend/pkg/migrate"
	"github.com/calzalindo/catalog-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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
	jobMetrics := metrics.NewJobMetrics(registry)

	catalogService, err := catalog.NewService(
		catalog.NewRepository(dbClient.DB()),
		pricing.NewEngine(cfg.Pricing),
		cfg.Catalog,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	triageService, err := triage.NewService(triage.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create triage service", err)
		os.Exit(1)
	}

	lookupClient, err := images.NewLookupClient(cfg.Images.LookupBaseURL, cfg.Images.LookupTimeout)
	if err != nil {
		logg.Error(context.Background(), "failed to create image lookup client", err)
		os.Exit(1)
	}
	imagesService, err := images.NewService(images.NewRepository(dbClient.DB()), lookupClient, cfg.Images, logg, jobMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create images service", err)
		os.Exit(1)
	}

	inquiryService, err := inquiry.NewService(inquiry.NewStore(redisClient, cfg.Inquiry), cfg.Inquiry)
	if err != nil {
		logg.Error(context.Background(), "failed to create inquiry service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:     cfg,
		Logger:     logg,
		DB:         dbClient,
		Redis:      redisClient,
		Registry:   registry,
		Catalog:    catalogService,
		Triage:     triageService,
		Images:     imagesService,
		ImageProxy: images.NewProxy(cfg.Images),
		Inquiry:    inquiryService,
	})

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
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
