package stock

import (
	"context"
	"sync"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
)

// MemoryStore keeps stock counters in memory. Each part code owns its own
// lock so concurrent reservations against different codes never contend and
// reservations against the same code are serialized.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	mu   sync.Mutex
	item models.StockItem
}

// NewMemoryStore builds a store seeded with the given items.
func NewMemoryStore(items []models.StockItem) *MemoryStore {
	entries := make(map[string]*memoryEntry, len(items))
	for _, item := range items {
		entries[item.PartCode] = &memoryEntry{item: item}
	}
	return &MemoryStore{entries: entries}
}

func (s *MemoryStore) entry(code string) *memoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[code]
}

// GetStockItem returns a copy of the item, or nil for unknown codes.
func (s *MemoryStore) GetStockItem(_ context.Context, code string) (*models.StockItem, error) {
	entry := s.entry(code)
	if entry == nil {
		return nil, nil
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	item := entry.item
	return &item, nil
}

// Reserve claims qty units when the available stock covers them. The check
// and increment happen under the per-code lock, so a failed reservation
// changes nothing.
func (s *MemoryStore) Reserve(_ context.Context, code string, qty int) (bool, error) {
	if qty <= 0 {
		return false, nil
	}
	entry := s.entry(code)
	if entry == nil {
		return false, nil
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.item.AvailableStock() < qty {
		return false, nil
	}
	entry.item.ReservedStock += qty
	return true, nil
}

// Release returns qty reserved units, floored at zero. Unknown codes are a
// no-op.
func (s *MemoryStore) Release(_ context.Context, code string, qty int) error {
	if qty <= 0 {
		return nil
	}
	entry := s.entry(code)
	if entry == nil {
		return nil
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.item.ReservedStock -= qty
	if entry.item.ReservedStock < 0 {
		entry.item.ReservedStock = 0
	}
	return nil
}

// Put inserts or replaces an item; used by seeding and tests.
func (s *MemoryStore) Put(item models.StockItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[item.PartCode] = &memoryEntry{item: item}
}
