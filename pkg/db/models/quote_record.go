package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

// QuoteRecord is the persisted form of a quote document: an immutable pairing
// of one configuration snapshot with one price breakdown. Both snapshots are
// stored as JSON so a quote keeps its numbers even when the catalog moves on.
type QuoteRecord struct {
	ID     uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Number string            `gorm:"column:number;uniqueIndex;not null" json:"number"`
	Status enums.QuoteStatus `gorm:"column:status;not null;default:draft" json:"status"`

	ConfigurationID       uuid.UUID `gorm:"column:configuration_id;type:uuid;not null;index" json:"configuration_id"`
	ConfigurationSnapshot string    `gorm:"column:configuration_snapshot;type:text;not null" json:"configuration_snapshot"`
	BreakdownSnapshot     string    `gorm:"column:breakdown_snapshot;type:text;not null" json:"breakdown_snapshot"`

	Total      decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	ValidUntil time.Time       `gorm:"column:valid_until;not null" json:"valid_until"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name for gorm.
func (QuoteRecord) TableName() string { return "quotes" }

// IsExpired reports whether the validity window has passed at the given time.
func (q QuoteRecord) IsExpired(now time.Time) bool {
	return now.After(q.ValidUntil)
}
