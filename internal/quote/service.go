package quote

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitboxworks/kitbox-backend/internal/pricing"
	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
	pkgerrors "github.com/kitboxworks/kitbox-backend/pkg/errors"
)

// Service creates and manages quote documents: immutable pairings of one
// configuration snapshot with one price breakdown.
type Service interface {
	Create(ctx context.Context, cfg models.CabinetConfiguration, breakdown pricing.Breakdown) (*models.QuoteRecord, error)
	GetByNumber(ctx context.Context, number string) (*models.QuoteRecord, error)
	UpdateStatus(ctx context.Context, number string, status enums.QuoteStatus) (*models.QuoteRecord, error)
}

type service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService wires a quote service over the shared connection.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: db, now: time.Now}, nil
}

// Create snapshots the configuration and breakdown into a draft quote with a
// fresh number and the breakdown's validity window.
func (s *service) Create(ctx context.Context, cfg models.CabinetConfiguration, breakdown pricing.Breakdown) (*models.QuoteRecord, error) {
	configurationJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "snapshot configuration")
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "snapshot breakdown")
	}

	record := &models.QuoteRecord{
		ID:                    uuid.New(),
		Number:                NewNumber(s.now()),
		Status:                enums.QuoteStatusDraft,
		ConfigurationID:       cfg.ID,
		ConfigurationSnapshot: string(configurationJSON),
		BreakdownSnapshot:     string(breakdownJSON),
		Total:                 breakdown.Total,
		ValidUntil:            breakdown.ValidUntil,
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist quote")
	}
	return record, nil
}

// GetByNumber loads a quote. A draft or sent quote past its validity window
// is moved to expired on read.
func (s *service) GetByNumber(ctx context.Context, number string) (*models.QuoteRecord, error) {
	var record models.QuoteRecord
	err := s.db.WithContext(ctx).First(&record, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}

	if record.IsExpired(s.now()) && record.Status.CanTransitionTo(enums.QuoteStatusExpired) {
		record.Status = enums.QuoteStatusExpired
		if err := s.db.WithContext(ctx).Model(&record).Update("status", record.Status).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire quote")
		}
	}

	return &record, nil
}

// UpdateStatus applies a lifecycle transition, rejecting moves the state
// machine does not allow.
func (s *service) UpdateStatus(ctx context.Context, number string, status enums.QuoteStatus) (*models.QuoteRecord, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote status")
	}

	record, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if !record.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("quote cannot move from %s to %s", record.Status, status))
	}

	record.Status = status
	if err := s.db.WithContext(ctx).Model(record).Update("status", status).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
	}
	return record, nil
}

// NewNumber builds a human-readable quote number: a date prefix plus a random
// disambiguator. Uniqueness is best-effort; the unique index on the column is
// the real guard.
func NewNumber(now time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// fall back to the clock's sub-second bits
		nanos := now.UnixNano()
		buf[0] = byte(nanos)
		buf[1] = byte(nanos >> 8)
		buf[2] = byte(nanos >> 16)
	}
	return fmt.Sprintf("KB-%s-%s", now.Format("20060102"), hex.EncodeToString(buf))
}
