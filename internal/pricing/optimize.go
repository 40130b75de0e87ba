package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
)

// Suggestion is one advisory optimization hint. Suggestions never mutate the
// breakdown they were derived from.
type Suggestion struct {
	Message          string          `json:"message"`
	PotentialSavings decimal.Decimal `json:"potential_savings"`
}

const (
	excessCompartmentThreshold = 5
	bulkDiscountMinCompartments = 3
)

var (
	standardHeights = []int{32, 42, 52}
	standardWidths  = []int{32, 42, 52, 62, 80, 100, 120}
	standardDepths  = []int{32, 42, 52, 62}

	bulkDiscountPercent = decimal.NewFromInt(5)
)

// Analyze inspects a configuration and its breakdown for saving
// opportunities: excess compartment count, non-standard dimensions and bulk
// discount eligibility.
func Analyze(cfg models.CabinetConfiguration, breakdown Breakdown) []Suggestion {
	var suggestions []Suggestion
	compartments := len(cfg.Compartments)

	if compartments > excessCompartmentThreshold {
		excess := compartments - excessCompartmentThreshold
		perCompartment := decimal.Zero
		if compartments > 0 {
			perCompartment = breakdown.PartsSubtotal.Div(decimal.NewFromInt(int64(compartments)))
		}
		suggestions = append(suggestions, Suggestion{
			Message: fmt.Sprintf(
				"configuration uses %d compartments; reducing to %d would simplify the cabinet",
				compartments, excessCompartmentThreshold,
			),
			PotentialSavings: perCompartment.Mul(decimal.NewFromInt(int64(excess))).Round(2),
		})
	}

	if nonStandard := nonStandardCompartments(cfg); nonStandard > 0 {
		suggestions = append(suggestions, Suggestion{
			Message: fmt.Sprintf(
				"%d compartment(s) use non-standard dimensions; standard sizes avoid fallback parts",
				nonStandard,
			),
			PotentialSavings: decimal.Zero,
		})
	}

	if compartments >= bulkDiscountMinCompartments {
		savings := breakdown.PartsSubtotal.Mul(bulkDiscountPercent).Div(oneHundred).Round(2)
		suggestions = append(suggestions, Suggestion{
			Message: fmt.Sprintf(
				"configurations with %d or more compartments qualify for a %s%% bulk discount",
				bulkDiscountMinCompartments, bulkDiscountPercent,
			),
			PotentialSavings: savings,
		})
	}

	return suggestions
}

func nonStandardCompartments(cfg models.CabinetConfiguration) int {
	count := 0
	for _, compartment := range cfg.Compartments {
		if !containsInt(standardHeights, compartment.HeightCM) ||
			!containsInt(standardWidths, compartment.WidthCM) ||
			!containsInt(standardDepths, compartment.DepthCM) {
			count++
		}
	}
	return count
}

func containsInt(values []int, value int) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
