package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/kitboxworks/kitbox-backend/api/routes"
	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/catalog"
	"github.com/kitboxworks/kitbox-backend/internal/configurator"
	"github.com/kitboxworks/kitbox-backend/internal/pricing"
	quotesvc "github.com/kitboxworks/kitbox-backend/internal/quote"
	"github.com/kitboxworks/kitbox-backend/internal/stock"
	"github.com/kitboxworks/kitbox-backend/pkg/config"
	"github.com/kitboxworks/kitbox-backend/pkg/db"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
	"github.com/kitboxworks/kitbox-backend/pkg/metrics"
	"github.com/kitboxworks/kitbox-backend/pkg/migrate"
	pkgredis "github.com/kitboxworks/kitbox-backend/pkg/redis"
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

	redisClient, err := pkgredis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	rates, err := pricing.RatesFromConfig(cfg.Pricing, cfg.Quote)
	if err != nil {
		logg.Error(context.Background(), "failed to parse pricing rates", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	apiMetrics := metrics.NewAPIMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	stockAdapter := stock.NewAdapter(stock.NewGormStore(dbClient.DB()), catalogRepo, logg)
	generator := bom.NewGenerator(logg)
	engine := pricing.NewEngine(catalogRepo, stockAdapter, rates, logg)

	quoteService, err := quotesvc.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}
	configuratorService, err := configurator.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create configuration service", err)
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
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DBPinger:     dbClient,
			RedisClient:  redisClient,
			Generator:    generator,
			Engine:       engine,
			Catalog:      catalogRepo,
			Stock:        stockAdapter,
			Quotes:       quoteService,
			Configurator: configuratorService,
			Metrics:      apiMetrics,
			PromRegistry: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
