package models

import "time"

// StockItem tracks warehouse-level counters for a part. Reservations are
// soft, additive counters; available stock never goes negative.
type StockItem struct {
	PartCode      string `gorm:"column:part_code;primaryKey" json:"part_code"`
	CurrentStock  int    `gorm:"column:current_stock;not null;default:0" json:"current_stock"`
	ReservedStock int    `gorm:"column:reserved_stock;not null;default:0" json:"reserved_stock"`

	ReorderPoint    int `gorm:"column:reorder_point;not null;default:0" json:"reorder_point"`
	ReorderQuantity int `gorm:"column:reorder_quantity;not null;default:0" json:"reorder_quantity"`
	MinimumLevel    int `gorm:"column:minimum_level;not null;default:0" json:"minimum_level"`
	MaximumLevel    int `gorm:"column:maximum_level;not null;default:0" json:"maximum_level"`

	Supplier          string     `gorm:"column:supplier" json:"supplier"`
	WarehouseLocation string     `gorm:"column:warehouse_location" json:"warehouse_location"`
	ExpectedRestockAt *time.Time `gorm:"column:expected_restock_at" json:"expected_restock_at,omitempty"`

	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name for gorm.
func (StockItem) TableName() string { return "stock_items" }

// AvailableStock returns current minus reserved, floored at zero.
func (s StockItem) AvailableStock() int {
	available := s.CurrentStock - s.ReservedStock
	if available < 0 {
		return 0
	}
	return available
}
