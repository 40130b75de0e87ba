package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kitboxworks/kitbox-backend/api/responses"
	"github.com/kitboxworks/kitbox-backend/api/validators"
	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/configurator"
	"github.com/kitboxworks/kitbox-backend/internal/pricing"
	quotesvc "github.com/kitboxworks/kitbox-backend/internal/quote"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
	pkgerrors "github.com/kitboxworks/kitbox-backend/pkg/errors"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
	"github.com/kitboxworks/kitbox-backend/pkg/metrics"
)

// CreateQuote prices a configuration and persists the result as a draft
// quote document.
func CreateQuote(generator *bom.Generator, engine *pricing.Engine, svc quotesvc.Service, apiMetrics *metrics.APIMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload QuoteRequest
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

		record, err := svc.Create(r.Context(), cfg, breakdown)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		apiMetrics.IncQuoteGenerated()

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithQuoteNumber(ctx, record.Number)
			logg.Info(ctx, "quote.created")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

// GetQuote loads a quote by number.
func GetQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		number := chi.URLParam(r, "number")
		record, err := svc.GetByNumber(r.Context(), number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// UpdateQuoteStatus applies a lifecycle transition.
func UpdateQuoteStatus(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var payload QuoteStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		number := chi.URLParam(r, "number")
		record, err := svc.UpdateStatus(r.Context(), number, enums.QuoteStatus(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}
