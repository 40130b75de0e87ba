package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/catalog"
	"github.com/kitboxworks/kitbox-backend/internal/supplier"
	"github.com/kitboxworks/kitbox-backend/pkg/config"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
	pkgerrors "github.com/kitboxworks/kitbox-backend/pkg/errors"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// Rates carries the configured pricing amounts as decimals.
type Rates struct {
	TaxRatePercent       decimal.Decimal
	StandardDeliveryCost decimal.Decimal
	AssemblyBasePrice    decimal.Decimal
	AssemblyPerExtraComp decimal.Decimal
	AssemblyPerDoor      decimal.Decimal
	ValidityDays         int
}

// RatesFromConfig parses the decimal strings in the pricing config.
func RatesFromConfig(pricing config.PricingConfig, quote config.QuoteConfig) (Rates, error) {
	rates := Rates{ValidityDays: quote.ValidityDays}
	fields := []struct {
		name string
		raw  string
		dest *decimal.Decimal
	}{
		{"tax rate", pricing.TaxRatePercent, &rates.TaxRatePercent},
		{"standard delivery", pricing.StandardDeliveryCost, &rates.StandardDeliveryCost},
		{"assembly base", pricing.AssemblyBasePrice, &rates.AssemblyBasePrice},
		{"assembly per compartment", pricing.AssemblyPerExtraComp, &rates.AssemblyPerExtraComp},
		{"assembly per door", pricing.AssemblyPerDoor, &rates.AssemblyPerDoor},
	}
	for _, field := range fields {
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return Rates{}, fmt.Errorf("parsing %s %q: %w", field.name, field.raw, err)
		}
		*field.dest = value
	}
	return rates, nil
}

// Options are the per-quote pricing adjustments. Fixed and percentage
// discounts are independently settable and compose additively.
type Options struct {
	WithAssembly     bool
	CompartmentCount int
	DoorCount        int

	DeliveryOverride *decimal.Decimal

	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
}

// StatusSource reports availability per part code. The stock adapter
// implements it; pricing falls back to catalog counters when absent.
type StatusSource interface {
	Status(ctx context.Context, code string) (enums.StockStatus, error)
}

// Engine turns requirement lists into price breakdowns.
type Engine struct {
	parts  catalog.Source
	status StatusSource
	rates  Rates
	logg   *logger.Logger
	now    func() time.Time
}

// NewEngine wires a price engine. status may be nil, in which case
// availability derives from the catalog snapshot counters.
func NewEngine(parts catalog.Source, status StatusSource, rates Rates, logg *logger.Logger) *Engine {
	return &Engine{parts: parts, status: status, rates: rates, logg: logg, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Price builds the layered breakdown for the requirements. Requirement codes
// with no catalog match are skipped and counted, never fatal: an unknown code
// must not abort the quote. Aggregation order is fixed: parts subtotal,
// assembly, delivery, discounts (clamped at zero), tax, total.
func (e *Engine) Price(ctx context.Context, requirements []bom.PartRequirement, opts Options) (Breakdown, error) {
	now := e.now()
	breakdown := Breakdown{
		DiscountAmount:  opts.DiscountAmount,
		DiscountPercent: opts.DiscountPercent,
		TaxRatePercent:  e.rates.TaxRatePercent,
		CalculatedAt:    now,
		ValidUntil:      now.AddDate(0, 0, e.rates.ValidityDays),
	}

	for _, requirement := range requirements {
		part, err := e.parts.GetPartByCode(ctx, requirement.PartCode)
		if err != nil {
			return Breakdown{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("resolving part %s", requirement.PartCode))
		}
		if part == nil {
			breakdown.UnresolvedCount++
			if e.logg != nil {
				e.logg.Warn(e.logg.WithPartCode(ctx, requirement.PartCode), "pricing.unresolved_part")
			}
			continue
		}

		selected := supplier.SelectQuote(
			supplier.Quote{Price: part.Supplier1Price, DelayDays: part.Supplier1DelayDays},
			supplier.Quote{Price: part.Supplier2Price, DelayDays: part.Supplier2DelayDays},
		)

		availability, err := e.availability(ctx, part.Code, part.StockStatus())
		if err != nil {
			return Breakdown{}, err
		}
		if availability.IsIssue() {
			breakdown.HasStockIssues = true
		}

		quantity := decimal.NewFromInt(int64(requirement.Quantity))
		line := LineItem{
			PartCode:          part.Code,
			Description:       part.Reference,
			Quantity:          requirement.Quantity,
			UnitPrice:         selected.Price,
			LineTotal:         selected.Price.Mul(quantity),
			Category:          part.Category,
			Availability:      availability,
			DeliveryDelayDays: selected.DelayDays,
			DelayKnown:        selected.DelayKnown(),
		}
		breakdown.Lines = append(breakdown.Lines, line)
		breakdown.PartsSubtotal = breakdown.PartsSubtotal.Add(line.LineTotal)

		if countsAsCornerIron(part.Reference) {
			breakdown.CornerIronCount += requirement.Quantity
		}
	}

	if opts.WithAssembly {
		breakdown.AssemblyCost = e.assemblyCost(opts.CompartmentCount, opts.DoorCount)
	}

	breakdown.DeliveryCost = e.rates.StandardDeliveryCost
	if opts.DeliveryOverride != nil {
		breakdown.DeliveryCost = *opts.DeliveryOverride
	}

	breakdown.SubtotalBeforeDiscount = breakdown.PartsSubtotal.
		Add(breakdown.AssemblyCost).
		Add(breakdown.DeliveryCost)

	percentDiscount := breakdown.SubtotalBeforeDiscount.Mul(opts.DiscountPercent).Div(oneHundred)
	afterDiscount := breakdown.SubtotalBeforeDiscount.Sub(opts.DiscountAmount).Sub(percentDiscount)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}
	breakdown.AfterDiscount = afterDiscount

	breakdown.TaxAmount = afterDiscount.Mul(e.rates.TaxRatePercent).Div(oneHundred)
	breakdown.Total = afterDiscount.Add(breakdown.TaxAmount)

	return breakdown, nil
}

func (e *Engine) availability(ctx context.Context, code string, fallback enums.StockStatus) (enums.StockStatus, error) {
	if e.status == nil {
		return fallback, nil
	}
	status, err := e.status.Status(ctx, code)
	if err != nil {
		return enums.StockStatusOutOfStock, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("availability for %s", code))
	}
	return status, nil
}

func (e *Engine) assemblyCost(compartmentCount, doorCount int) decimal.Decimal {
	cost := e.rates.AssemblyBasePrice
	if compartmentCount > 1 {
		extra := decimal.NewFromInt(int64(compartmentCount - 1))
		cost = cost.Add(e.rates.AssemblyPerExtraComp.Mul(extra))
	}
	if doorCount > 0 {
		doors := decimal.NewFromInt(int64(doorCount))
		cost = cost.Add(e.rates.AssemblyPerDoor.Mul(doors))
	}
	return cost
}

// countsAsCornerIron classifies a part as an angle iron by its reference
// text. The string match is a loose join between the generic pricing pass and
// the angle-iron concept; it stays isolated here so its fuzziness never leaks
// into the arithmetic.
func countsAsCornerIron(reference string) bool {
	lowered := strings.ToLower(reference)
	return strings.Contains(lowered, "iron") || strings.Contains(lowered, "corner")
}
