// Package units provides shared constants and validation for speed units
package units

// Unit constants
const (
	MPS = "mps"
	MPH = "mph"
	KPH = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// Label returns the axis label for a unit.
func Label(unit string) string {
	switch unit {
	case MPH:
		return "mph"
	case KPH:
		return "km/h"
	default:
		return "m/s"
	}
}

// ConvertSpeed converts a speed from meters per second to the target units.
// Telemetry samples carry speeds in m/s.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPH:
		return speedMPS * 2.23694
	case KPH:
		return speedMPS * 3.6
	default:
		return speedMPS
	}
}
