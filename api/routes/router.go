package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kitboxworks/kitbox-backend/api/controllers"
	"github.com/kitboxworks/kitbox-backend/api/middleware"
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
	pkgredis "github.com/kitboxworks/kitbox-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    db.Pinger
	RedisClient *pkgredis.Client

	Generator     *bom.Generator
	Engine        *pricing.Engine
	Catalog       catalog.Source
	Stock         *stock.Adapter
	Quotes        quotesvc.Service
	Configurator  configurator.Service
	Metrics       *metrics.APIMetrics
	PromRegistry  *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	logg := deps.Logger

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var idempotencyStore pkgredis.IdempotencyStore
	var redisPinger pkgredis.Pinger
	if deps.RedisClient != nil {
		idempotencyStore = deps.RedisClient
		redisPinger = deps.RedisClient
	}

	r.Use(middleware.Idempotency(idempotencyStore, logg, deps.Config.Quote.IdempotencyTTL))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, logg, deps.DBPinger, redisPinger))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/bom", controllers.GenerateBOM(deps.Generator, deps.Metrics, logg))
		r.Post("/price", controllers.PriceConfiguration(deps.Generator, deps.Engine, deps.Metrics, logg))
		r.Post("/quote", controllers.CreateQuote(deps.Generator, deps.Engine, deps.Quotes, deps.Metrics, logg))

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/{number}", controllers.GetQuote(deps.Quotes, logg))
			r.Post("/{number}/status", controllers.UpdateQuoteStatus(deps.Quotes, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/parts", controllers.ListParts(deps.Catalog, logg))
			r.Get("/parts/{code}", controllers.GetPart(deps.Catalog, logg))
		})

		r.Route("/stock", func(r chi.Router) {
			r.Post("/reserve", controllers.ReserveStock(deps.Stock, deps.Metrics, logg))
			r.Post("/release", controllers.ReleaseStock(deps.Stock, logg))
			r.Post("/delivery-estimate", controllers.EstimateDelivery(deps.Stock, logg))
			r.Get("/{code}", controllers.GetStock(deps.Stock, logg))
		})

		r.Route("/configurations", func(r chi.Router) {
			r.Post("/", controllers.CreateConfiguration(deps.Configurator, logg))
			r.Get("/{id}", controllers.GetConfiguration(deps.Configurator, logg))
			r.Put("/{id}", controllers.UpdateConfiguration(deps.Configurator, logg))
		})
	})

	return r
}
