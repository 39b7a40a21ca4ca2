package production

import (
	"math"
	"time"
)

// Maturation curve breakpoints, in months since production start.
const (
	RampUpMonths  = 12
	DeclineMonths = 60

	rampBase      = 0.1
	rampSlope     = 0.075
	declineSlope  = 0.005
	declineFloor  = 0.5
	seasonalAmp   = 0.05
	monthsPerYear = 12
)

// MaturationFactor returns the capacity fraction a field reaches at ageMonths.
//
//	age < 12       0.1 + 0.075*age   (ramp-up)
//	12 <= age < 60 1.0               (plateau)
//	age >= 60      max(0.5, 1 - 0.005*(age-60))
//
// Negative ages (before start) return 0.
func MaturationFactor(ageMonths int) float64 {
	switch {
	case ageMonths < 0:
		return 0
	case ageMonths < RampUpMonths:
		return rampBase + rampSlope*float64(ageMonths)
	case ageMonths < DeclineMonths:
		return 1.0
	default:
		return math.Max(declineFloor, 1.0-declineSlope*float64(ageMonths-DeclineMonths))
	}
}

// Seasonality returns the calendar multiplier 1 + 0.05*sin(2*pi*(m-1)/12).
func Seasonality(m time.Month) float64 {
	return 1 + seasonalAmp*math.Sin(2*math.Pi*float64(m-1)/monthsPerYear)
}
