package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kitboxworks/kitbox-backend/api/responses"
	"github.com/kitboxworks/kitbox-backend/api/validators"
	"github.com/kitboxworks/kitbox-backend/internal/stock"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
	"github.com/kitboxworks/kitbox-backend/pkg/metrics"
)

// GetStock reports availability for one part code.
func GetStock(adapter *stock.Adapter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		status, err := adapter.Status(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"part_code": code,
			"status":    status,
		})
	}
}

// ReserveStock reserves a batch of lines. Each line succeeds or fails on its
// own; the response carries the per-code outcome map.
func ReserveStock(adapter *stock.Adapter, apiMetrics *metrics.APIMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload StockBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results := adapter.ReserveBatch(r.Context(), payload.toRequirements())
		for _, ok := range results {
			if ok {
				apiMetrics.IncStockReservation("reserved")
			} else {
				apiMetrics.IncStockReservation("rejected")
			}
		}

		responses.WriteSuccess(w, map[string]any{"results": results})
	}
}

// EstimateDelivery returns an expected delivery date per requested line.
func EstimateDelivery(adapter *stock.Adapter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload StockBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimates, err := adapter.EstimateDelivery(r.Context(), payload.toRequirements())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"estimates": estimates})
	}
}

// ReleaseStock releases a batch of previously reserved lines.
func ReleaseStock(adapter *stock.Adapter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload StockBatchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results := adapter.ReleaseBatch(r.Context(), payload.toRequirements())
		responses.WriteSuccess(w, map[string]any{"results": results})
	}
}
