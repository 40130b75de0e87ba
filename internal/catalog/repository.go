package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
)

// Source is the injected catalog collaborator. Implementations hand the core
// an already-resolved snapshot; any transport or retry policy lives behind
// this interface.
type Source interface {
	GetAllParts(ctx context.Context) ([]models.Part, error)
	GetPartByCode(ctx context.Context, code string) (*models.Part, error)
}

// Repository is the gorm-backed catalog source.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a catalog repository over the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllParts loads the full catalog snapshot ordered by code.
func (r *Repository) GetAllParts(ctx context.Context) ([]models.Part, error) {
	var parts []models.Part
	if err := r.db.WithContext(ctx).Order("code").Find(&parts).Error; err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return parts, nil
}

// GetPartByCode returns the part for the given code, or nil when unknown.
func (r *Repository) GetPartByCode(ctx context.Context, code string) (*models.Part, error) {
	var part models.Part
	err := r.db.WithContext(ctx).First(&part, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading part %s: %w", code, err)
	}
	return &part, nil
}

// UpsertParts writes catalog entries, replacing rows that share a code. Used
// by seeding and catalog refresh flows, not by the pricing core.
func (r *Repository) UpsertParts(ctx context.Context, parts []models.Part) error {
	for i := range parts {
		if err := r.db.WithContext(ctx).Save(&parts[i]).Error; err != nil {
			return fmt.Errorf("saving part %s: %w", parts[i].Code, err)
		}
	}
	return nil
}

// Snapshot is an in-memory catalog used by the pure core and by tests.
type Snapshot struct {
	parts  []models.Part
	byCode map[string]*models.Part
}

// NewSnapshot indexes the given parts by code.
func NewSnapshot(parts []models.Part) *Snapshot {
	byCode := make(map[string]*models.Part, len(parts))
	for i := range parts {
		byCode[parts[i].Code] = &parts[i]
	}
	return &Snapshot{parts: parts, byCode: byCode}
}

// GetAllParts returns the snapshot contents.
func (s *Snapshot) GetAllParts(_ context.Context) ([]models.Part, error) {
	return s.parts, nil
}

// GetPartByCode returns the part for the given code, or nil when unknown.
func (s *Snapshot) GetPartByCode(_ context.Context, code string) (*models.Part, error) {
	return s.byCode[code], nil
}
