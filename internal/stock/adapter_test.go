package stock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/catalog"
	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

var testNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func testAdapter(items []models.StockItem, parts []models.Part) *Adapter {
	return NewAdapter(NewMemoryStore(items), catalog.NewSnapshot(parts), nil).
		WithClock(func() time.Time { return testNow })
}

func TestStatus_StockItemIsAuthoritative(t *testing.T) {
	items := []models.StockItem{
		{PartCode: "BAT-32", CurrentStock: 20, ReservedStock: 5, MinimumLevel: 10},
		{PartCode: "CRL-42", CurrentStock: 5, ReservedStock: 5},
		{PartCode: "PNB-1", CurrentStock: 100, MinimumLevel: 10},
	}
	// catalog says plenty in stock, but the stock item wins
	parts := []models.Part{
		{Code: "BAT-32", StockQuantity: 500},
		{Code: "CRL-42", StockQuantity: 500},
	}
	adapter := testAdapter(items, parts)
	ctx := context.Background()

	cases := []struct {
		code string
		want enums.StockStatus
	}{
		{"BAT-32", enums.StockStatusLowStock},
		{"CRL-42", enums.StockStatusOutOfStock},
		{"PNB-1", enums.StockStatusInStock},
	}
	for _, tc := range cases {
		got, err := adapter.Status(ctx, tc.code)
		if err != nil {
			t.Fatalf("Status(%s) returned error: %v", tc.code, err)
		}
		if got != tc.want {
			t.Fatalf("Status(%s) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestStatus_FallsBackToCatalogCounters(t *testing.T) {
	parts := []models.Part{
		{Code: "HDL-CUP", StockQuantity: 3, MinimumStock: 5},
	}
	adapter := testAdapter(nil, parts)

	got, err := adapter.Status(context.Background(), "HDL-CUP")
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if got != enums.StockStatusLowStock {
		t.Fatalf("expected catalog fallback low_stock, got %s", got)
	}
}

func TestStatus_UnknownCodeReadsOutOfStock(t *testing.T) {
	adapter := testAdapter(nil, nil)

	got, err := adapter.Status(context.Background(), "GHOST-1")
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if got != enums.StockStatusOutOfStock {
		t.Fatalf("expected out_of_stock for unknown code, got %s", got)
	}
}

func TestReserve_AtomicAllOrNothing(t *testing.T) {
	store := NewMemoryStore([]models.StockItem{
		{PartCode: "BAT-32", CurrentStock: 10, ReservedStock: 4},
	})
	adapter := NewAdapter(store, catalog.NewSnapshot(nil), nil)
	ctx := context.Background()

	ok, err := adapter.Reserve(ctx, "BAT-32", 8)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if ok {
		t.Fatal("reserve of 8 must fail with only 6 available")
	}
	item, _ := store.GetStockItem(ctx, "BAT-32")
	if item.ReservedStock != 4 {
		t.Fatalf("failed reserve must not mutate, reserved = %d", item.ReservedStock)
	}

	ok, err = adapter.Reserve(ctx, "BAT-32", 6)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if !ok {
		t.Fatal("reserve of 6 must succeed with 6 available")
	}
	item, _ = store.GetStockItem(ctx, "BAT-32")
	if item.ReservedStock != 10 {
		t.Fatalf("expected reserved 10, got %d", item.ReservedStock)
	}
}

func TestReserve_ConcurrentNeverOversells(t *testing.T) {
	store := NewMemoryStore([]models.StockItem{
		{PartCode: "BAT-32", CurrentStock: 10},
	})
	adapter := NewAdapter(store, catalog.NewSnapshot(nil), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := adapter.Reserve(ctx, "BAT-32", 1)
			if err != nil {
				t.Errorf("Reserve returned error: %v", err)
				return
			}
			if ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Fatalf("expected exactly 10 successful reservations, got %d", succeeded)
	}
	item, _ := store.GetStockItem(ctx, "BAT-32")
	if item.ReservedStock != 10 {
		t.Fatalf("expected reserved 10, got %d", item.ReservedStock)
	}
}

func TestRelease_FlooredAtZero(t *testing.T) {
	store := NewMemoryStore([]models.StockItem{
		{PartCode: "BAT-32", CurrentStock: 10, ReservedStock: 3},
	})
	adapter := NewAdapter(store, catalog.NewSnapshot(nil), nil)
	ctx := context.Background()

	if err := adapter.Release(ctx, "BAT-32", 100); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	item, _ := store.GetStockItem(ctx, "BAT-32")
	if item.ReservedStock != 0 {
		t.Fatalf("expected reserved floored at 0, got %d", item.ReservedStock)
	}

	if err := adapter.Release(ctx, "GHOST-1", 1); err != nil {
		t.Fatalf("releasing an unknown code must be a no-op, got %v", err)
	}
}

func TestReserveBatch_PartialFailureDoesNotAbort(t *testing.T) {
	store := NewMemoryStore([]models.StockItem{
		{PartCode: "BAT-32", CurrentStock: 10},
		{PartCode: "CRL-42", CurrentStock: 1},
		{PartCode: "PNB-1", CurrentStock: 10},
	})
	adapter := NewAdapter(store, catalog.NewSnapshot(nil), nil)
	ctx := context.Background()

	results := adapter.ReserveBatch(ctx, []bom.PartRequirement{
		{PartCode: "BAT-32", Quantity: 4},
		{PartCode: "CRL-42", Quantity: 4},
		{PartCode: "PNB-1", Quantity: 2},
	})

	if !results["BAT-32"] || results["CRL-42"] || !results["PNB-1"] {
		t.Fatalf("unexpected batch results: %v", results)
	}

	// succeeding lines stay reserved even when a sibling fails
	item, _ := store.GetStockItem(ctx, "PNB-1")
	if item.ReservedStock != 2 {
		t.Fatalf("expected PNB-1 reserved 2, got %d", item.ReservedStock)
	}

	released := adapter.ReleaseBatch(ctx, []bom.PartRequirement{
		{PartCode: "BAT-32", Quantity: 4},
		{PartCode: "PNB-1", Quantity: 2},
	})
	if !released["BAT-32"] || !released["PNB-1"] {
		t.Fatalf("unexpected release results: %v", released)
	}
	item, _ = store.GetStockItem(ctx, "PNB-1")
	if item.ReservedStock != 0 {
		t.Fatalf("expected PNB-1 reserved 0 after release, got %d", item.ReservedStock)
	}
}

func TestEstimateDelivery(t *testing.T) {
	restock := testNow.Add(5 * 24 * time.Hour)
	items := []models.StockItem{
		{PartCode: "BAT-32", CurrentStock: 50},
		{PartCode: "CRL-42", CurrentStock: 0, ExpectedRestockAt: &restock},
		{PartCode: "PNB-1", CurrentStock: 0},
	}
	parts := []models.Part{
		// supplier delay 10 days beats the 5-day restock date
		{Code: "CRL-42", Supplier1Price: decimal.NewFromInt(3), Supplier1DelayDays: 10},
	}
	adapter := testAdapter(items, parts)

	estimates, err := adapter.EstimateDelivery(context.Background(), []bom.PartRequirement{
		{PartCode: "BAT-32", Quantity: 4},
		{PartCode: "CRL-42", Quantity: 4},
		{PartCode: "PNB-1", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("EstimateDelivery returned error: %v", err)
	}

	t.Run("availableShipsNextDay", func(t *testing.T) {
		want := testNow.Add(24 * time.Hour)
		if !estimates["BAT-32"].Equal(want) {
			t.Fatalf("expected %s, got %s", want, estimates["BAT-32"])
		}
	})

	t.Run("backorderTakesLaterOfRestockAndSupplierDelay", func(t *testing.T) {
		want := testNow.Add(10 * 24 * time.Hour)
		if !estimates["CRL-42"].Equal(want) {
			t.Fatalf("expected %s, got %s", want, estimates["CRL-42"])
		}
	})

	t.Run("noDataFallsBackToTwoWeeks", func(t *testing.T) {
		want := testNow.Add(fallbackLeadTime)
		if !estimates["PNB-1"].Equal(want) {
			t.Fatalf("expected %s, got %s", want, estimates["PNB-1"])
		}
	})
}

func TestCheckAvailability_FallsBackToCatalogCounters(t *testing.T) {
	// no warehouse row: catalog counters decide, same as Status
	parts := []models.Part{
		{Code: "HDL-CUP", StockQuantity: 5},
	}
	adapter := testAdapter(nil, parts)
	ctx := context.Background()

	ok, err := adapter.CheckAvailability(ctx, "HDL-CUP", 3)
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected catalog-stocked part to be available")
	}

	ok, err = adapter.CheckAvailability(ctx, "HDL-CUP", 10)
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if ok {
		t.Fatal("expected request beyond catalog stock to be unavailable")
	}

	ok, err = adapter.CheckAvailability(ctx, "GHOST-1", 1)
	if err != nil {
		t.Fatalf("CheckAvailability returned error: %v", err)
	}
	if ok {
		t.Fatal("expected unknown code to be unavailable")
	}
}

func TestEstimateDelivery_CatalogStockedPartShipsNextDay(t *testing.T) {
	parts := []models.Part{
		{Code: "HDL-CUP", StockQuantity: 5, Supplier1Price: decimal.NewFromInt(1), Supplier1DelayDays: 10},
	}
	adapter := testAdapter(nil, parts)

	estimates, err := adapter.EstimateDelivery(context.Background(), []bom.PartRequirement{
		{PartCode: "HDL-CUP", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("EstimateDelivery returned error: %v", err)
	}
	want := testNow.Add(24 * time.Hour)
	if !estimates["HDL-CUP"].Equal(want) {
		t.Fatalf("expected %s, got %s", want, estimates["HDL-CUP"])
	}
}
