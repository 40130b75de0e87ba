package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

// LineItem is one priced requirement on the breakdown.
type LineItem struct {
	PartCode          string            `json:"part_code"`
	Description       string            `json:"description"`
	Quantity          int               `json:"quantity"`
	UnitPrice         decimal.Decimal   `json:"unit_price"`
	LineTotal         decimal.Decimal   `json:"line_total"`
	Category          enums.PartCategory `json:"category"`
	Availability      enums.StockStatus `json:"availability"`
	DeliveryDelayDays int               `json:"delivery_delay_days"`
	DelayKnown        bool              `json:"delay_known"`
}

// Breakdown is the fully layered price computation. Every figure is
// reproducible from the stored inputs; nothing random participates.
type Breakdown struct {
	Lines []LineItem `json:"lines"`

	PartsSubtotal decimal.Decimal `json:"parts_subtotal"`
	AssemblyCost  decimal.Decimal `json:"assembly_cost"`
	DeliveryCost  decimal.Decimal `json:"delivery_cost"`

	SubtotalBeforeDiscount decimal.Decimal `json:"subtotal_before_discount"`
	DiscountAmount         decimal.Decimal `json:"discount_amount"`
	DiscountPercent        decimal.Decimal `json:"discount_percent"`
	AfterDiscount          decimal.Decimal `json:"after_discount"`

	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`

	HasStockIssues  bool `json:"has_stock_issues"`
	UnresolvedCount int  `json:"unresolved_count"`
	CornerIronCount int  `json:"corner_iron_count"`

	CalculatedAt time.Time `json:"calculated_at"`
	ValidUntil   time.Time `json:"valid_until"`
}
