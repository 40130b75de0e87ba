package stock

import (
	"context"
	"time"

	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/catalog"
	"github.com/kitboxworks/kitbox-backend/internal/supplier"
	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
)

// Store is the mutable stock counter source. Reserve must be atomic per part
// code: it either applies the full quantity or changes nothing.
type Store interface {
	GetStockItem(ctx context.Context, code string) (*models.StockItem, error)
	Reserve(ctx context.Context, code string, qty int) (bool, error)
	Release(ctx context.Context, code string, qty int) error
}

// fallbackLeadTime is used when a requirement is short on stock and neither a
// restock date nor a supplier delay is known.
const fallbackLeadTime = 14 * 24 * time.Hour

// Adapter annotates requirements with availability and delivery data and
// fronts the reservation counters. All single-code operations are safe to
// retry; no-op paths never mutate.
type Adapter struct {
	store Store
	parts catalog.Source
	logg  *logger.Logger
	now   func() time.Time
}

// NewAdapter wires the availability adapter.
func NewAdapter(store Store, parts catalog.Source, logg *logger.Logger) *Adapter {
	return &Adapter{store: store, parts: parts, logg: logg, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (a *Adapter) WithClock(now func() time.Time) *Adapter {
	a.now = now
	return a
}

// CheckAvailability reports whether the available (current minus reserved)
// stock covers the requested quantity. Stock items are authoritative; parts
// without a stock item fall back to their catalog counters, matching Status.
func (a *Adapter) CheckAvailability(ctx context.Context, code string, qty int) (bool, error) {
	item, err := a.store.GetStockItem(ctx, code)
	if err != nil {
		return false, err
	}
	if item != nil {
		return item.AvailableStock() >= qty, nil
	}

	part, err := a.parts.GetPartByCode(ctx, code)
	if err != nil {
		return false, err
	}
	if part == nil {
		return false, nil
	}
	return part.StockQuantity >= qty, nil
}

// Status classifies availability for the code. Stock items are authoritative;
// parts without a stock item fall back to their catalog counters, and unknown
// codes read as out of stock.
func (a *Adapter) Status(ctx context.Context, code string) (enums.StockStatus, error) {
	item, err := a.store.GetStockItem(ctx, code)
	if err != nil {
		return enums.StockStatusOutOfStock, err
	}
	if item != nil {
		available := item.AvailableStock()
		switch {
		case available <= 0:
			return enums.StockStatusOutOfStock, nil
		case available <= item.MinimumLevel:
			return enums.StockStatusLowStock, nil
		default:
			return enums.StockStatusInStock, nil
		}
	}

	part, err := a.parts.GetPartByCode(ctx, code)
	if err != nil {
		return enums.StockStatusOutOfStock, err
	}
	if part == nil {
		return enums.StockStatusOutOfStock, nil
	}
	return part.StockStatus(), nil
}

// Reserve atomically claims qty units; it fails without any state change when
// the available stock is short.
func (a *Adapter) Reserve(ctx context.Context, code string, qty int) (bool, error) {
	return a.store.Reserve(ctx, code, qty)
}

// Release returns qty reserved units, floored at zero. It always succeeds.
func (a *Adapter) Release(ctx context.Context, code string, qty int) error {
	return a.store.Release(ctx, code, qty)
}

// ReserveBatch reserves each requirement independently; one failure never
// aborts the rest. The caller inspects the per-code result map and rolls back
// already reserved lines when partial success is unacceptable.
func (a *Adapter) ReserveBatch(ctx context.Context, requirements []bom.PartRequirement) map[string]bool {
	results := make(map[string]bool, len(requirements))
	for _, requirement := range requirements {
		ok, err := a.store.Reserve(ctx, requirement.PartCode, requirement.Quantity)
		if err != nil {
			a.logError(ctx, requirement.PartCode, "stock.reserve_failed", err)
			ok = false
		}
		results[requirement.PartCode] = ok
	}
	return results
}

// ReleaseBatch releases each requirement independently.
func (a *Adapter) ReleaseBatch(ctx context.Context, requirements []bom.PartRequirement) map[string]bool {
	results := make(map[string]bool, len(requirements))
	for _, requirement := range requirements {
		err := a.store.Release(ctx, requirement.PartCode, requirement.Quantity)
		if err != nil {
			a.logError(ctx, requirement.PartCode, "stock.release_failed", err)
		}
		results[requirement.PartCode] = err == nil
	}
	return results
}

// EstimateDelivery returns an expected delivery date per requirement: next
// day when fully available, otherwise the later of the expected restock date
// and now plus the arbitrated supplier delay.
func (a *Adapter) EstimateDelivery(ctx context.Context, requirements []bom.PartRequirement) (map[string]time.Time, error) {
	now := a.now()
	estimates := make(map[string]time.Time, len(requirements))

	for _, requirement := range requirements {
		available, err := a.CheckAvailability(ctx, requirement.PartCode, requirement.Quantity)
		if err != nil {
			return nil, err
		}
		if available {
			estimates[requirement.PartCode] = now.Add(24 * time.Hour)
			continue
		}
		estimates[requirement.PartCode] = a.backorderEstimate(ctx, requirement.PartCode, now)
	}

	return estimates, nil
}

func (a *Adapter) backorderEstimate(ctx context.Context, code string, now time.Time) time.Time {
	var estimate time.Time

	if item, err := a.store.GetStockItem(ctx, code); err == nil && item != nil && item.ExpectedRestockAt != nil {
		estimate = *item.ExpectedRestockAt
	}

	if part, err := a.parts.GetPartByCode(ctx, code); err == nil && part != nil {
		selected := supplier.SelectQuote(
			supplier.Quote{Price: part.Supplier1Price, DelayDays: part.Supplier1DelayDays},
			supplier.Quote{Price: part.Supplier2Price, DelayDays: part.Supplier2DelayDays},
		)
		if selected.DelayKnown() {
			supplierDate := now.Add(time.Duration(selected.DelayDays) * 24 * time.Hour)
			if supplierDate.After(estimate) {
				estimate = supplierDate
			}
		}
	}

	if estimate.IsZero() {
		if a.logg != nil {
			a.logg.Warn(a.logg.WithPartCode(ctx, code), "stock.no_delivery_data")
		}
		estimate = now.Add(fallbackLeadTime)
	}

	return estimate
}

func (a *Adapter) logError(ctx context.Context, code, msg string, err error) {
	if a.logg == nil {
		return
	}
	a.logg.Error(a.logg.WithPartCode(ctx, code), msg, err)
}
