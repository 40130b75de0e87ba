package enums

import "fmt"

// StockStatus classifies the availability of a catalog part.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

var validStockStatuses = []StockStatus{
	StockStatusInStock,
	StockStatusLowStock,
	StockStatusOutOfStock,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsIssue reports whether the status should flag the quote as having stock
// problems.
func (s StockStatus) IsIssue() bool {
	return s == StockStatusLowStock || s == StockStatusOutOfStock
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
