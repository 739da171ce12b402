// Package units converts and formats temperature values for display.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// Unit selects the temperature scale used for display values.
type Unit string

const (
	Celsius    Unit = "celsius"
	Fahrenheit Unit = "fahrenheit"
)

// Placeholder is rendered for missing values.
const Placeholder = "—"

// ErrUnknownUnit is returned by Parse for unit selectors outside the taxonomy.
var ErrUnknownUnit = errors.New("unknown temperature unit")

// Parse resolves a unit selector from user input. Empty input defaults to
// Celsius. Matching is case-insensitive; "c" and "f" are accepted shorthands.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "celsius", "c":
		return Celsius, nil
	case "fahrenheit", "f":
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

// Convert converts a Celsius value into the given unit.
func Convert(celsius float64, unit Unit) float64 {
	if unit == Fahrenheit {
		return celsius*9/5 + 32
	}
	return celsius
}

// FormatTemp renders a Celsius value in the given unit with one decimal
// place. A nil value renders as the placeholder; it never fails.
func FormatTemp(celsius *float64, unit Unit) string {
	if celsius == nil {
		return Placeholder
	}
	return fmt.Sprintf("%.1f", Convert(*celsius, unit))
}
