package enums

import "fmt"

// PartCategory represents the canonical part families in the catalog.
type PartCategory string

const (
	PartCategoryBatten    PartCategory = "batten"
	PartCategoryCrossbar  PartCategory = "crossbar"
	PartCategoryPanel     PartCategory = "panel"
	PartCategoryDoor      PartCategory = "door"
	PartCategoryAngleIron PartCategory = "angle_iron"
	PartCategoryHardware  PartCategory = "hardware"
	PartCategoryFoot      PartCategory = "foot"
)

var validPartCategories = []PartCategory{
	PartCategoryBatten,
	PartCategoryCrossbar,
	PartCategoryPanel,
	PartCategoryDoor,
	PartCategoryAngleIron,
	PartCategoryHardware,
	PartCategoryFoot,
}

// String implements fmt.Stringer.
func (c PartCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known PartCategory.
func (c PartCategory) IsValid() bool {
	for _, candidate := range validPartCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParsePartCategory converts raw input into a PartCategory.
func ParsePartCategory(value string) (PartCategory, error) {
	for _, candidate := range validPartCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid part category %q", value)
}
