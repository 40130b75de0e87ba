package catalog

import (
	"strings"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

// Specification is a query object against the catalog. Only the fields that
// are set participate in matching; it is never persisted.
type Specification struct {
	Category enums.PartCategory
	HeightCM *int
	WidthCM  *int
	DepthCM  *int
	Color    string
	TypeTag  string
	Quantity int
}

func (s Specification) requiresDimensions() bool {
	return s.HeightCM != nil || s.WidthCM != nil || s.DepthCM != nil
}

// FindBySpecification resolves a specification against a catalog snapshot.
// Candidates are narrowed by category, then color (case-insensitive exact
// match when set), type tag (case-insensitive substring of the reference or
// code when set) and dimensions (only the fields present on the spec must
// match the part's parsed dimensions; a part whose dimension string parses to
// nothing cannot satisfy a spec that requires any). When several parts
// remain, the one with the lexicographically smallest code wins so the result
// does not depend on catalog ordering. Returns nil when nothing matches.
func FindBySpecification(parts []models.Part, spec Specification) *models.Part {
	var best *models.Part
	for i := range parts {
		part := &parts[i]
		if !matches(part, spec) {
			continue
		}
		if best == nil || part.Code < best.Code {
			best = part
		}
	}
	return best
}

func matches(part *models.Part, spec Specification) bool {
	if part.Category != spec.Category {
		return false
	}

	if spec.Color != "" && !strings.EqualFold(part.Color, spec.Color) {
		return false
	}

	if spec.TypeTag != "" {
		tag := strings.ToLower(spec.TypeTag)
		reference := strings.ToLower(part.Reference)
		code := strings.ToLower(part.Code)
		if !strings.Contains(reference, tag) && !strings.Contains(code, tag) {
			return false
		}
	}

	if spec.requiresDimensions() {
		dims := ParseDimensions(part.Dimensions)
		if !dims.HasAny() {
			return false
		}
		if !dimensionMatches(spec.HeightCM, dims.HeightCM) {
			return false
		}
		if !dimensionMatches(spec.WidthCM, dims.WidthCM) {
			return false
		}
		if !dimensionMatches(spec.DepthCM, dims.DepthCM) {
			return false
		}
	}

	return true
}

func dimensionMatches(want, got *int) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}
