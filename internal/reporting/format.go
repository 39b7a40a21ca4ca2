package reporting

import (
	"math"

	"github.com/shopspring/decimal"
)

// Output precision per column kind.
const (
	MoneyPlaces  = 2
	VolumePlaces = 2
	PricePlaces  = 4
	StatPlaces   = 2
)

// formatFixed renders x with a fixed number of decimal places using
// half-away-from-zero rounding. Non-finite values render as NaN/Inf.
func formatFixed(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

func formatMoney(x float64) string  { return formatFixed(x, MoneyPlaces) }
func formatVolume(x float64) string { return formatFixed(x, VolumePlaces) }
func formatPrice(x float64) string  { return formatFixed(x, PricePlaces) }
func formatStat(x float64) string   { return formatFixed(x, StatPlaces) }
