package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe lengths. Layout works in CSS pixels; the
// preview renderer draws in millimetres.

// Unit is the unit a length value was written in.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers, treated as px
	UnitPX               // CSS pixels (1/96 in)
	UnitMM               // millimetres
	UnitPT               // points (1/72 in)
	UnitIN               // inches
)

// Conversion constants.
const (
	MmPerInch = 25.4
	PxPerInch = 96.0
	PtPerInch = 72.0

	PxToMm = MmPerInch / PxPerInch
	MmToPx = 1.0 / PxToMm
	PtToMm = MmPerInch / PtPerInch
	MmToPt = 1.0 / PtToMm
)

// String returns a short suffix for a Unit value.
func (u Unit) String() string {
	switch u {
	case UnitPX:
		return "px"
	case UnitMM:
		return "mm"
	case UnitPT:
		return "pt"
	case UnitIN:
		return "in"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// mm converts the length to millimetres.
func (l Length) mm() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value
	case UnitPT:
		return l.Value * PtToMm
	case UnitIN:
		return l.Value * MmPerInch
	default:
		return l.Value * PxToMm
	}
}

// To converts this length to the target unit.
func (l Length) To(target Unit) float64 {
	if l.Unit == target || (l.Unit == UnitNone && target == UnitPX) {
		return l.Value
	}
	mm := l.mm()
	switch target {
	case UnitMM:
		return mm
	case UnitPT:
		return mm * MmToPt
	case UnitIN:
		return mm / MmPerInch
	default:
		return mm * MmToPx
	}
}

func (l Length) ToMM() float64 { return l.To(UnitMM) }
func (l Length) ToPX() float64 { return l.To(UnitPX) }

// String formats the length with its unit suffix, e.g. "160px".
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

// ParseLength parses strings such as "160", "160px", "42mm" or "12pt".
// Bare numbers are pixels.
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitPX
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"mm", UnitMM}, {"pt", UnitPT}, {"in", UnitIN}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}

// UnmarshalText lets lengths appear as plain strings in config files.
func (l *Length) UnmarshalText(text []byte) error {
	parsed, err := ParseLength(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
