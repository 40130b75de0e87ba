package controllers

import (
	"net/http"

	"github.com/kitboxworks/kitbox-backend/api/responses"
	"github.com/kitboxworks/kitbox-backend/api/validators"
	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/configurator"
	"github.com/kitboxworks/kitbox-backend/internal/pricing"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
	"github.com/kitboxworks/kitbox-backend/pkg/metrics"
)

// PriceConfiguration resolves a configuration into a full price breakdown
// plus optimization suggestions. Nothing is persisted.
func PriceConfiguration(generator *bom.Generator, engine *pricing.Engine, apiMetrics *metrics.APIMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload PriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg := payload.Configuration.toModel()
		if err := configurator.Validate(cfg); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requirements := generator.Generate(r.Context(), cfg)
		breakdown, err := engine.Price(r.Context(), requirements, payload.Options.toOptions(cfg))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		apiMetrics.IncPriceRequest()

		responses.WriteSuccess(w, map[string]any{
			"breakdown":   breakdown,
			"suggestions": pricing.Analyze(cfg, breakdown),
		})
	}
}
