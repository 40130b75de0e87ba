package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/catalog"
	"github.com/kitboxworks/kitbox-backend/internal/pricing"
	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
	"github.com/kitboxworks/kitbox-backend/pkg/metrics"
)

type downCatalog struct{}

func (downCatalog) GetAllParts(context.Context) ([]models.Part, error) {
	return nil, errors.New("catalog connection refused")
}

func (downCatalog) GetPartByCode(context.Context, string) (*models.Part, error) {
	return nil, errors.New("catalog connection refused")
}

func priceTestEngine() *pricing.Engine {
	parts := []models.Part{
		{Code: "BAT-32", Reference: "Vertical batten 32", Category: enums.PartCategoryBatten,
			Supplier1Price: decimal.RequireFromString("2.50"), StockQuantity: 100},
	}
	rates := pricing.Rates{
		TaxRatePercent: decimal.NewFromInt(21),
		ValidityDays:   30,
	}
	return pricing.NewEngine(catalog.NewSnapshot(parts), nil, rates, nil)
}

func TestPriceConfiguration_Success(t *testing.T) {
	handler := PriceConfiguration(bom.NewGenerator(nil), priceTestEngine(), metrics.NewAPIMetrics(nil), nil)

	body := `{"configuration": ` + validConfigurationJSON + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/price", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Breakdown pricing.Breakdown `json:"breakdown"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	breakdown := envelope.Data.Breakdown
	// only the battens resolve against the one-part catalog
	if !breakdown.PartsSubtotal.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected parts subtotal 10.00, got %s", breakdown.PartsSubtotal)
	}
	if breakdown.UnresolvedCount == 0 {
		t.Fatal("expected unresolved codes against the minimal catalog")
	}
	if !breakdown.Total.Equal(decimal.RequireFromString("12.10")) {
		t.Fatalf("expected total 12.10, got %s", breakdown.Total)
	}
}

func TestPriceConfiguration_AppliesDiscountOptions(t *testing.T) {
	handler := PriceConfiguration(bom.NewGenerator(nil), priceTestEngine(), metrics.NewAPIMetrics(nil), nil)

	body := `{"configuration": ` + validConfigurationJSON + `, "options": {"discount_percent": 50}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/price", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Breakdown pricing.Breakdown `json:"breakdown"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if !envelope.Data.Breakdown.AfterDiscount.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("expected after-discount 5.00, got %s", envelope.Data.Breakdown.AfterDiscount)
	}
}

func TestPriceConfiguration_CatalogDown(t *testing.T) {
	engine := pricing.NewEngine(downCatalog{}, nil, pricing.Rates{
		TaxRatePercent: decimal.NewFromInt(21),
		ValidityDays:   30,
	}, nil)
	handler := PriceConfiguration(bom.NewGenerator(nil), engine, metrics.NewAPIMetrics(nil), nil)

	body := `{"configuration": ` + validConfigurationJSON + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/price", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Error.Code != "DEPENDENCY_ERROR" {
		t.Fatalf("expected DEPENDENCY_ERROR, got %q", envelope.Error.Code)
	}
}
