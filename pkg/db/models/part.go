package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

// Part is a catalog entry. Dimensions is the authoritative free-form source
// string ("H52", "32x60", "52x32x30"); parsed height/width/depth are derived
// from it at lookup time and never stored independently.
type Part struct {
	Code       string             `gorm:"column:code;primaryKey" json:"code"`
	Reference  string             `gorm:"column:reference;not null" json:"reference"`
	Dimensions string             `gorm:"column:dimensions" json:"dimensions"`
	Category   enums.PartCategory `gorm:"column:category;not null" json:"category"`
	Color      string             `gorm:"column:color" json:"color"`

	// Two supplier quotes feed the arbitrated unit price. A quote is valid
	// only when its price is strictly positive.
	Supplier1Price     decimal.Decimal `gorm:"column:supplier1_price;type:numeric(12,2);not null;default:0" json:"supplier1_price"`
	Supplier1DelayDays int             `gorm:"column:supplier1_delay_days;not null;default:0" json:"supplier1_delay_days"`
	Supplier2Price     decimal.Decimal `gorm:"column:supplier2_price;type:numeric(12,2);not null;default:0" json:"supplier2_price"`
	Supplier2DelayDays int             `gorm:"column:supplier2_delay_days;not null;default:0" json:"supplier2_delay_days"`

	StockQuantity int `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	MinimumStock  int `gorm:"column:minimum_stock;not null;default:0" json:"minimum_stock"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name for gorm.
func (Part) TableName() string { return "parts" }

// IsOutOfStock reports whether the part has no sellable stock.
func (p Part) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}

// IsLowStock reports whether the part sits at or below its minimum threshold
// while still having stock.
func (p Part) IsLowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= p.MinimumStock
}

// StockStatus derives the availability classification from the counters.
func (p Part) StockStatus() enums.StockStatus {
	switch {
	case p.IsOutOfStock():
		return enums.StockStatusOutOfStock
	case p.IsLowStock():
		return enums.StockStatusLowStock
	default:
		return enums.StockStatusInStock
	}
}
