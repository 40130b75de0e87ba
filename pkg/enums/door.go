package enums

import "fmt"

// DoorColor represents the finishes available for compartment doors.
type DoorColor string

const (
	DoorColorWhite DoorColor = "white"
	DoorColorBrown DoorColor = "brown"
	DoorColorGlass DoorColor = "glass"
)

var validDoorColors = []DoorColor{
	DoorColorWhite,
	DoorColorBrown,
	DoorColorGlass,
}

// String implements fmt.Stringer.
func (c DoorColor) String() string {
	return string(c)
}

// IsValid reports whether the value is a known DoorColor.
func (c DoorColor) IsValid() bool {
	for _, candidate := range validDoorColors {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsGlass reports whether the door is a glass door. Glass doors never
// receive cup handles.
func (c DoorColor) IsGlass() bool {
	return c == DoorColorGlass
}

// ParseDoorColor converts raw input into a DoorColor.
func ParseDoorColor(value string) (DoorColor, error) {
	for _, candidate := range validDoorColors {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid door color %q", value)
}
