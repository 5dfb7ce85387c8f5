package ui

import (
	"fmt"
	"strings"
)

// Unit is the display unit for memory quantities. All internal values are
// kibibytes; conversion happens only at render time.
type Unit int

const (
	UnitKB Unit = iota
	UnitMB
	UnitGB
)

// ParseUnit maps a config/flag string to a Unit. Unrecognized strings fall
// back to kibibytes.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mb", "mib", "m":
		return UnitMB
	case "gb", "gib", "g":
		return UnitGB
	default:
		return UnitKB
	}
}

// Label returns the unit suffix shown in table headers.
func (u Unit) Label() string {
	switch u {
	case UnitMB:
		return "MB"
	case UnitGB:
		return "GB"
	default:
		return "KB"
	}
}

// Convert returns kb expressed in the unit.
func (u Unit) Convert(kb int64) float64 {
	switch u {
	case UnitMB:
		return float64(kb) / 1024
	case UnitGB:
		return float64(kb) / (1024 * 1024)
	default:
		return float64(kb)
	}
}

// Format renders kb in the unit: whole numbers for KB, one decimal for MB,
// two for GB.
func (u Unit) Format(kb int64) string {
	switch u {
	case UnitMB:
		return fmt.Sprintf("%.1f", u.Convert(kb))
	case UnitGB:
		return fmt.Sprintf("%.2f", u.Convert(kb))
	default:
		return fmt.Sprintf("%d", kb)
	}
}

// FormatWithLabel renders kb with the unit suffix attached.
func (u Unit) FormatWithLabel(kb int64) string {
	return u.Format(kb) + " " + u.Label()
}
