package controllers

import (
	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/internal/bom"
	"github.com/kitboxworks/kitbox-backend/internal/pricing"
	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

// CompartmentRequest is one stacked cell in an incoming configuration.
type CompartmentRequest struct {
	Position  int    `json:"position"`
	HeightCM  int    `json:"height_cm" validate:"required,gt=0"`
	WidthCM   int    `json:"width_cm" validate:"required,gt=0"`
	DepthCM   int    `json:"depth_cm" validate:"required,gt=0"`
	HasDoor   bool   `json:"has_door"`
	DoorColor string `json:"door_color" validate:"omitempty,oneof=white brown glass"`
}

// ConfigurationRequest is the wire form of a cabinet configuration.
type ConfigurationRequest struct {
	Name            string               `json:"name" validate:"max=120"`
	Notes           string               `json:"notes" validate:"max=2000"`
	WidthCM         int                  `json:"width_cm" validate:"required,gt=0"`
	DepthCM         int                  `json:"depth_cm" validate:"required,gt=0"`
	Color           string               `json:"color" validate:"required,oneof=white black natural"`
	DoorColor       string               `json:"door_color" validate:"omitempty,oneof=white brown glass"`
	AngleIronFinish string               `json:"angle_iron_finish" validate:"required,oneof=white black galvanized"`
	WithAssembly    bool                 `json:"with_assembly"`
	Compartments    []CompartmentRequest `json:"compartments" validate:"required,min=1,max=7,dive"`
}

func (req ConfigurationRequest) toModel() models.CabinetConfiguration {
	cfg := models.CabinetConfiguration{
		Name:            req.Name,
		Notes:           req.Notes,
		WidthCM:         req.WidthCM,
		DepthCM:         req.DepthCM,
		Color:           enums.CabinetColor(req.Color),
		DoorColor:       enums.DoorColor(req.DoorColor),
		AngleIronFinish: enums.AngleIronFinish(req.AngleIronFinish),
		WithAssembly:    req.WithAssembly,
	}
	for i, comp := range req.Compartments {
		position := comp.Position
		if position == 0 {
			position = i + 1
		}
		cfg.Compartments = append(cfg.Compartments, models.Compartment{
			Position:  position,
			HeightCM:  comp.HeightCM,
			WidthCM:   comp.WidthCM,
			DepthCM:   comp.DepthCM,
			HasDoor:   comp.HasDoor,
			DoorColor: enums.DoorColor(comp.DoorColor),
		})
	}
	return cfg
}

// PricingOptionsRequest carries the per-quote adjustments.
type PricingOptionsRequest struct {
	DeliveryOverride *decimal.Decimal `json:"delivery_override,omitempty"`
	DiscountAmount   decimal.Decimal  `json:"discount_amount"`
	DiscountPercent  decimal.Decimal  `json:"discount_percent"`
}

func (req PricingOptionsRequest) toOptions(cfg models.CabinetConfiguration) pricing.Options {
	return pricing.Options{
		WithAssembly:     cfg.WithAssembly,
		CompartmentCount: len(cfg.Compartments),
		DoorCount:        cfg.DoorCount(),
		DeliveryOverride: req.DeliveryOverride,
		DiscountAmount:   req.DiscountAmount,
		DiscountPercent:  req.DiscountPercent,
	}
}

// PriceRequest prices a configuration without persisting anything.
type PriceRequest struct {
	Configuration ConfigurationRequest  `json:"configuration" validate:"required"`
	Options       PricingOptionsRequest `json:"options"`
}

// QuoteRequest builds and persists a quote document.
type QuoteRequest struct {
	Configuration ConfigurationRequest  `json:"configuration" validate:"required"`
	Options       PricingOptionsRequest `json:"options"`
}

// QuoteStatusRequest moves a quote through its lifecycle.
type QuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent accepted rejected expired"`
}

// StockLineRequest is one part code plus a quantity.
type StockLineRequest struct {
	PartCode string `json:"part_code" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// StockBatchRequest reserves or releases a set of lines.
type StockBatchRequest struct {
	Items []StockLineRequest `json:"items" validate:"required,min=1,dive"`
}

func (req StockBatchRequest) toRequirements() []bom.PartRequirement {
	requirements := make([]bom.PartRequirement, 0, len(req.Items))
	for _, item := range req.Items {
		requirements = append(requirements, bom.PartRequirement{
			PartCode: item.PartCode,
			Quantity: item.Quantity,
		})
	}
	return requirements
}
