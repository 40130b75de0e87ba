package configurator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	pkgerrors "github.com/kitboxworks/kitbox-backend/pkg/errors"
)

// Compartment count bounds for a cabinet.
const (
	MinCompartments = 1
	MaxCompartments = 7
)

// Validate rejects configurations that must never reach BOM generation or
// pricing: an out-of-range compartment count, non-positive dimensions, or
// unknown enum values. Non-catalog standard sizes are allowed; the BOM
// generator resolves them with documented fallbacks.
func Validate(cfg models.CabinetConfiguration) error {
	count := len(cfg.Compartments)
	if count < MinCompartments || count > MaxCompartments {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("compartment count must be between %d and %d, got %d", MinCompartments, MaxCompartments, count))
	}

	if !cfg.Color.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown cabinet color %q", cfg.Color))
	}
	if !cfg.AngleIronFinish.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown angle iron finish %q", cfg.AngleIronFinish))
	}
	if cfg.DoorColor != "" && !cfg.DoorColor.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown door color %q", cfg.DoorColor))
	}

	for _, compartment := range cfg.Compartments {
		if compartment.HeightCM <= 0 || compartment.WidthCM <= 0 || compartment.DepthCM <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("compartment %d has non-positive dimensions", compartment.Position))
		}
		if compartment.DoorColor != "" && !compartment.DoorColor.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("compartment %d has unknown door color %q", compartment.Position, compartment.DoorColor))
		}
	}

	return nil
}

// Service persists cabinet configurations.
type Service interface {
	Create(ctx context.Context, cfg models.CabinetConfiguration) (*models.CabinetConfiguration, error)
	Update(ctx context.Context, cfg models.CabinetConfiguration) (*models.CabinetConfiguration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CabinetConfiguration, error)
}

type service struct {
	db *gorm.DB
}

// NewService wires a configuration service over the shared connection.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: db}, nil
}

// Create validates and stores a new configuration, assigning ids and
// normalizing compartment order.
func (s *service) Create(ctx context.Context, cfg models.CabinetConfiguration) (*models.CabinetConfiguration, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	normalizeCompartments(&cfg)

	if err := s.db.WithContext(ctx).Create(&cfg).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist configuration")
	}
	return &cfg, nil
}

// Update validates and replaces an existing configuration, including its
// compartments.
func (s *service) Update(ctx context.Context, cfg models.CabinetConfiguration) (*models.CabinetConfiguration, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "configuration id is required")
	}

	existing, err := s.GetByID(ctx, cfg.ID)
	if err != nil {
		return nil, err
	}
	cfg.CreatedAt = existing.CreatedAt
	normalizeCompartments(&cfg)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("configuration_id = ?", cfg.ID).Delete(&models.Compartment{}).Error; err != nil {
			return err
		}
		return tx.Save(&cfg).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update configuration")
	}
	return &cfg, nil
}

// GetByID loads a configuration with its compartments in position order.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.CabinetConfiguration, error) {
	var cfg models.CabinetConfiguration
	err := s.db.WithContext(ctx).
		Preload("Compartments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&cfg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "configuration not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load configuration")
	}
	return &cfg, nil
}

func normalizeCompartments(cfg *models.CabinetConfiguration) {
	sort.SliceStable(cfg.Compartments, func(i, j int) bool {
		return cfg.Compartments[i].Position < cfg.Compartments[j].Position
	})
	for i := range cfg.Compartments {
		comp := &cfg.Compartments[i]
		if comp.ID == uuid.Nil {
			comp.ID = uuid.New()
		}
		comp.ConfigurationID = cfg.ID
		comp.Position = i + 1
	}
}
