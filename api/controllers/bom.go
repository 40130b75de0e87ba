package controllers

import (
	"net/http"

	"github.com/kitboxworks/kitbox-backend/api/responses"
	"github.com/kitboxworks/kitbox-backend/api/validators"
	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/configurator"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
	"github.com/kitboxworks/kitbox-backend/pkg/metrics"
)

// GenerateBOM resolves a configuration into its merged requirement list
// without touching the catalog or pricing.
func GenerateBOM(generator *bom.Generator, apiMetrics *metrics.APIMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ConfigurationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg := payload.toModel()
		if err := configurator.Validate(cfg); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requirements := generator.Generate(r.Context(), cfg)
		apiMetrics.IncBOMRequest()

		responses.WriteSuccess(w, map[string]any{
			"requirements":      requirements,
			"overall_height_cm": cfg.OverallHeightCM(),
			"door_count":        cfg.DoorCount(),
		})
	}
}
