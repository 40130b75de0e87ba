package enums

import "fmt"

// CabinetColor represents the finishes available for panels and frames.
type CabinetColor string

const (
	CabinetColorWhite   CabinetColor = "white"
	CabinetColorBlack   CabinetColor = "black"
	CabinetColorNatural CabinetColor = "natural"
)

var validCabinetColors = []CabinetColor{
	CabinetColorWhite,
	CabinetColorBlack,
	CabinetColorNatural,
}

// String implements fmt.Stringer.
func (c CabinetColor) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CabinetColor.
func (c CabinetColor) IsValid() bool {
	for _, candidate := range validCabinetColors {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCabinetColor converts raw input into a CabinetColor.
func ParseCabinetColor(value string) (CabinetColor, error) {
	for _, candidate := range validCabinetColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cabinet color %q", value)
}
