package bom

import (
	"context"
	"fmt"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
)

// PartRequirement is a (part code, quantity) pair. The code is the merge key:
// requirements for the same code coming from different compartments are
// summed.
type PartRequirement struct {
	PartCode string `json:"part_code"`
	Quantity int    `json:"quantity"`
}

// Generator expands a cabinet configuration into merged part requirements.
// Generation is a pure function of the configuration; the logger only records
// size-table fallbacks.
type Generator struct {
	logg *logger.Logger
}

// NewGenerator builds a BOM generator.
func NewGenerator(logg *logger.Logger) *Generator {
	return &Generator{logg: logg}
}

// Generate derives the full requirement list for the configuration: per
// compartment the battens, crossbars and panels (plus door panels and cup
// handles when the compartment has a non-glass door), then cabinet-level
// angle irons and feet. The result is merged by part code with summed
// quantities; validation of the configuration itself happens upstream.
func (g *Generator) Generate(ctx context.Context, cfg models.CabinetConfiguration) []PartRequirement {
	var requirements []PartRequirement

	for _, compartment := range cfg.Compartments {
		requirements = append(requirements, g.compartmentRequirements(ctx, cfg, compartment)...)
	}

	// Angle irons are sized on the stacked compartment heights, without the
	// 4 cm frame allowance.
	requirements = append(requirements, PartRequirement{
		PartCode: angleIronCode(cfg.CompartmentHeightSum(), cfg.AngleIronFinish),
		Quantity: 4,
	})
	requirements = append(requirements, PartRequirement{PartCode: footCode, Quantity: 4})

	return MergeRequirements(requirements)
}

func (g *Generator) compartmentRequirements(ctx context.Context, cfg models.CabinetConfiguration, compartment models.Compartment) []PartRequirement {
	var requirements []PartRequirement

	battenCode, exact := lookupSize(battenTable, compartment.HeightCM)
	if !exact {
		g.logFallback(ctx, "batten", compartment.HeightCM, battenCode)
	}
	requirements = append(requirements, PartRequirement{PartCode: battenCode, Quantity: 4})

	lateralCode, exact := lookupSize(lateralCrossbarTable, compartment.DepthCM)
	if !exact {
		g.logFallback(ctx, "lateral crossbar", compartment.DepthCM, lateralCode)
	}
	requirements = append(requirements, PartRequirement{PartCode: lateralCode, Quantity: 4})

	frontCode, exact := lookupSize(frontCrossbarTable, compartment.WidthCM)
	if !exact {
		g.logFallback(ctx, "front crossbar", compartment.WidthCM, frontCode)
	}
	requirements = append(requirements,
		PartRequirement{PartCode: frontCode, Quantity: 2}, // front
		PartRequirement{PartCode: frontCode, Quantity: 2}, // back
	)

	suffix := cabinetColorSuffix(cfg.Color)
	requirements = append(requirements,
		PartRequirement{PartCode: backPanelCode(compartment, suffix), Quantity: 1},
		PartRequirement{PartCode: horizontalPanelCode(compartment, suffix), Quantity: 2},
		PartRequirement{PartCode: sidePanelCode(compartment, suffix), Quantity: 2},
	)

	if compartment.HasDoor {
		doorColor := compartment.DoorColor
		if doorColor == "" {
			doorColor = cfg.DoorColor
		}
		requirements = append(requirements, PartRequirement{
			PartCode: doorPanelCode(compartment, doorColorSuffix(doorColor)),
			Quantity: 2,
		})
		if !doorColor.IsGlass() {
			requirements = append(requirements, PartRequirement{PartCode: cupHandleCode, Quantity: 2})
		}
	}

	return requirements
}

func backPanelCode(compartment models.Compartment, suffix string) string {
	return fmt.Sprintf("PNB-%dx%d-%s", compartment.HeightCM, compartment.WidthCM, suffix)
}

func horizontalPanelCode(compartment models.Compartment, suffix string) string {
	return fmt.Sprintf("PNH-%dx%d-%s", compartment.WidthCM, compartment.DepthCM, suffix)
}

func sidePanelCode(compartment models.Compartment, suffix string) string {
	return fmt.Sprintf("PNS-%dx%d-%s", compartment.HeightCM, compartment.DepthCM, suffix)
}

func doorPanelCode(compartment models.Compartment, suffix string) string {
	return fmt.Sprintf("DRP-%dx%d-%s", compartment.HeightCM, compartment.WidthCM, suffix)
}

// MergeRequirements sums quantities per part code, preserving first-seen
// order. Every generated list goes through this; duplicate codes must never
// reach the pricing pass.
func MergeRequirements(requirements []PartRequirement) []PartRequirement {
	merged := make([]PartRequirement, 0, len(requirements))
	index := make(map[string]int, len(requirements))
	for _, requirement := range requirements {
		if pos, ok := index[requirement.PartCode]; ok {
			merged[pos].Quantity += requirement.Quantity
			continue
		}
		index[requirement.PartCode] = len(merged)
		merged = append(merged, requirement)
	}
	return merged
}

// RequirementForCode returns the merged quantity for a code, zero when absent.
func RequirementForCode(requirements []PartRequirement, code string) int {
	for _, requirement := range requirements {
		if requirement.PartCode == code {
			return requirement.Quantity
		}
	}
	return 0
}

func (g *Generator) logFallback(ctx context.Context, kind string, sizeCM int, code string) {
	if g.logg == nil {
		return
	}
	ctx = g.logg.WithFields(ctx, map[string]any{
		"kind":    kind,
		"size_cm": sizeCM,
		"code":    code,
	})
	g.logg.Warn(ctx, "bom.size_table_fallback")
}
