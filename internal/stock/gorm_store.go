package stock

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
)

// GormStore persists stock counters in the stock_items table. Reservation
// relies on a conditional single-row update, so concurrent reservations for
// the same code are serialized by the database and the reserved counter can
// never overtake current stock.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wires the store over the shared connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetStockItem returns the row for the code, or nil when unknown.
func (s *GormStore) GetStockItem(ctx context.Context, code string) (*models.StockItem, error) {
	var item models.StockItem
	err := s.db.WithContext(ctx).First(&item, "part_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading stock item %s: %w", code, err)
	}
	return &item, nil
}

// Reserve claims qty units via a guarded update; zero rows affected means the
// available stock was short and nothing changed.
func (s *GormStore) Reserve(ctx context.Context, code string, qty int) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("part_code = ? AND current_stock - reserved_stock >= ?", code, qty).
		UpdateColumn("reserved_stock", gorm.Expr("reserved_stock + ?", qty))
	if res.Error != nil {
		return false, fmt.Errorf("reserving %d of %s: %w", qty, code, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Release returns qty reserved units, clamping the counter at zero. Unknown
// codes are a no-op.
func (s *GormStore) Release(ctx context.Context, code string, qty int) error {
	if qty <= 0 {
		return nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("part_code = ?", code).
		UpdateColumn("reserved_stock", gorm.Expr(
			"CASE WHEN reserved_stock - ? < 0 THEN 0 ELSE reserved_stock - ? END", qty, qty,
		))
	if res.Error != nil {
		return fmt.Errorf("releasing %d of %s: %w", qty, code, res.Error)
	}
	return nil
}

// Upsert writes a stock item row; used by seeding flows.
func (s *GormStore) Upsert(ctx context.Context, item models.StockItem) error {
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return fmt.Errorf("saving stock item %s: %w", item.PartCode, err)
	}
	return nil
}
