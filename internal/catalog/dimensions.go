package catalog

import (
	"regexp"
	"strconv"
)

// Dimensions holds the height/width/depth parsed out of a catalog dimension
// string. Fields are nil when the string carries no value for them.
type Dimensions struct {
	HeightCM *int
	WidthCM  *int
	DepthCM  *int
}

// HasAny reports whether at least one dimension was parsed.
func (d Dimensions) HasAny() bool {
	return d.HeightCM != nil || d.WidthCM != nil || d.DepthCM != nil
}

var (
	letterTokenRe = regexp.MustCompile(`(?i)\b([HWD])\s*(\d+)\b`)
	tripleRe      = regexp.MustCompile(`^\s*(\d+)\s*[xX]\s*(\d+)\s*[xX]\s*(\d+)\s*$`)
	pairRe        = regexp.MustCompile(`^\s*(\d+)\s*[xX]\s*(\d+)\s*$`)
	singleRe      = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// ParseDimensions extracts height/width/depth from a free-form dimension
// string. Matching precedence, in order:
//
//  1. explicit H<n>/W<n>/D<n> tokens anywhere in the string, each extracted
//     independently;
//  2. a bare "A x B x C" pattern assigned positionally to height, width, depth;
//  3. a bare "A x B" pattern assigned to height, width;
//  4. a single bare integer assigned to height.
//
// The single-integer case defaults to height even though for crossbar-style
// parts the lone dimension is usually a length. The parser has no category
// context, so the blanket default is kept rather than guessed around.
// Unparseable strings yield empty Dimensions, never an error.
func ParseDimensions(text string) Dimensions {
	var dims Dimensions

	if tokens := letterTokenRe.FindAllStringSubmatch(text, -1); len(tokens) > 0 {
		for _, token := range tokens {
			value, err := strconv.Atoi(token[2])
			if err != nil {
				continue
			}
			switch token[1][0] {
			case 'H', 'h':
				dims.HeightCM = &value
			case 'W', 'w':
				dims.WidthCM = &value
			case 'D', 'd':
				dims.DepthCM = &value
			}
		}
		return dims
	}

	if m := tripleRe.FindStringSubmatch(text); m != nil {
		dims.HeightCM = atoiPtr(m[1])
		dims.WidthCM = atoiPtr(m[2])
		dims.DepthCM = atoiPtr(m[3])
		return dims
	}

	if m := pairRe.FindStringSubmatch(text); m != nil {
		dims.HeightCM = atoiPtr(m[1])
		dims.WidthCM = atoiPtr(m[2])
		return dims
	}

	if m := singleRe.FindStringSubmatch(text); m != nil {
		dims.HeightCM = atoiPtr(m[1])
		return dims
	}

	return dims
}

func atoiPtr(raw string) *int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
