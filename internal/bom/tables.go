package bom

import (
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
)

// Sizing tables are explicit ordered (size, code) pairs with a documented
// fallback: a size outside a table resolves to the table's first entry so
// totals stay computable for non-catalog sizes. The generator logs when the
// fallback fires.

type sizeCode struct {
	SizeCM int
	Code   string
}

// Vertical battens, keyed by compartment height. The physical batten is cut
// 4 cm shorter than the compartment (2 cm crossbar thickness top and bottom).
var battenTable = []sizeCode{
	{32, "BAT-32"},
	{42, "BAT-42"},
	{52, "BAT-52"},
}

// Lateral crossbars, keyed by compartment depth.
var lateralCrossbarTable = []sizeCode{
	{32, "CRL-32"},
	{42, "CRL-42"},
	{52, "CRL-52"},
	{62, "CRL-62"},
}

// Front/back crossbars, keyed by compartment width.
var frontCrossbarTable = []sizeCode{
	{32, "CRF-32"},
	{42, "CRF-42"},
	{52, "CRF-52"},
	{62, "CRF-62"},
	{80, "CRF-80"},
	{100, "CRF-100"},
	{120, "CRF-120"},
}

// lookupSize resolves a size against a table, falling back to the first entry.
// The second return value reports whether the exact size was found.
func lookupSize(table []sizeCode, sizeCM int) (string, bool) {
	for _, entry := range table {
		if entry.SizeCM == sizeCM {
			return entry.Code, true
		}
	}
	return table[0].Code, false
}

// Panel/door color suffixes. Unknown colors default to the white suffix.
const defaultColorSuffix = "BL"

var cabinetColorSuffixes = map[enums.CabinetColor]string{
	enums.CabinetColorWhite:   "BL",
	enums.CabinetColorBlack:   "NR",
	enums.CabinetColorNatural: "NA",
}

var doorColorSuffixes = map[enums.DoorColor]string{
	enums.DoorColorWhite: "BL",
	enums.DoorColorBrown: "BR",
	enums.DoorColorGlass: "VE",
}

var angleIronFinishSuffixes = map[enums.AngleIronFinish]string{
	enums.AngleIronFinishWhite:      "BL",
	enums.AngleIronFinishBlack:      "NR",
	enums.AngleIronFinishGalvanized: "GL",
}

func cabinetColorSuffix(color enums.CabinetColor) string {
	if suffix, ok := cabinetColorSuffixes[color]; ok {
		return suffix
	}
	return defaultColorSuffix
}

func doorColorSuffix(color enums.DoorColor) string {
	if suffix, ok := doorColorSuffixes[color]; ok {
		return suffix
	}
	return defaultColorSuffix
}

func angleIronFinishSuffix(finish enums.AngleIronFinish) string {
	if suffix, ok := angleIronFinishSuffixes[finish]; ok {
		return suffix
	}
	return defaultColorSuffix
}

// Fixed hardware codes.
const (
	cupHandleCode = "HDL-CUP"
	footCode      = "FOOT-STD"
)

// Angle irons come in two lengths; the threshold is the summed compartment
// height the short iron still covers.
const shortAngleIronMaxCM = 32

func angleIronCode(totalHeightCM int, finish enums.AngleIronFinish) string {
	length := "L"
	if totalHeightCM <= shortAngleIronMaxCM {
		length = "S"
	}
	return "AGI-" + length + "-" + angleIronFinishSuffix(finish)
}
