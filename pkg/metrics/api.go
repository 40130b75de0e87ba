package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics counts the configurator's core operations.
type APIMetrics struct {
	bomRequests     prometheus.Counter
	priceRequests   prometheus.Counter
	quotesGenerated prometheus.Counter
	stockReserves   *prometheus.CounterVec
}

// NewAPIMetrics registers the API metrics on the provided registerer. A nil
// registerer yields a no-op instance.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	if reg == nil {
		return &APIMetrics{}
	}
	bomRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bom_requests_total",
		Help: "BOM resolutions served.",
	})
	priceRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "price_requests_total",
		Help: "Price breakdowns computed.",
	})
	quotesGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quotes_generated_total",
		Help: "Quote documents persisted.",
	})
	stockReserves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_reservations_total",
		Help: "Stock reservation attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(bomRequests, priceRequests, quotesGenerated, stockReserves)
	return &APIMetrics{
		bomRequests:     bomRequests,
		priceRequests:   priceRequests,
		quotesGenerated: quotesGenerated,
		stockReserves:   stockReserves,
	}
}

// IncBOMRequest counts one BOM resolution.
func (m *APIMetrics) IncBOMRequest() {
	if m == nil || m.bomRequests == nil {
		return
	}
	m.bomRequests.Inc()
}

// IncPriceRequest counts one price computation.
func (m *APIMetrics) IncPriceRequest() {
	if m == nil || m.priceRequests == nil {
		return
	}
	m.priceRequests.Inc()
}

// IncQuoteGenerated counts one persisted quote.
func (m *APIMetrics) IncQuoteGenerated() {
	if m == nil || m.quotesGenerated == nil {
		return
	}
	m.quotesGenerated.Inc()
}

// IncStockReservation counts one reservation attempt by outcome.
func (m *APIMetrics) IncStockReservation(outcome string) {
	if m == nil || m.stockReserves == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.stockReserves.WithLabelValues(outcome).Inc()
}
