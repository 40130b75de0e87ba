package enums

import "fmt"

// AngleIronFinish represents the surface treatment of the corner angle irons.
type AngleIronFinish string

const (
	AngleIronFinishWhite      AngleIronFinish = "white"
	AngleIronFinishBlack      AngleIronFinish = "black"
	AngleIronFinishGalvanized AngleIronFinish = "galvanized"
)

var validAngleIronFinishes = []AngleIronFinish{
	AngleIronFinishWhite,
	AngleIronFinishBlack,
	AngleIronFinishGalvanized,
}

// String implements fmt.Stringer.
func (f AngleIronFinish) String() string {
	return string(f)
}

// IsValid reports whether the value is a known AngleIronFinish.
func (f AngleIronFinish) IsValid() bool {
	for _, candidate := range validAngleIronFinishes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseAngleIronFinish converts raw input into an AngleIronFinish.
func ParseAngleIronFinish(value string) (AngleIronFinish, error) {
	for _, candidate := range validAngleIronFinishes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid angle iron finish %q", value)
}
