package production

import (
	"math"
	"math/rand/v2"
	"time"

	"oilfield-finance-lab/internal/idhash"
)

// NoiseSource yields the multiplicative noise applied to one field-month.
// Implementations must be deterministic and safe for concurrent use.
type NoiseSource interface {
	Multiplier(fieldID int64, month time.Time) float64
}

// Default noise parameters.
const (
	DefaultNoiseStdDev = 0.03
	noiseStream        = "production"
)

// KeyedNoise draws N(0, StdDev) per (seed, field, month), clamped to
// [-Bound, Bound]. Each draw has its own PCG stream seeded from a hash of
// the key, so results do not depend on evaluation order.
type KeyedNoise struct {
	Seed   uint64
	StdDev float64
	Bound  float64 // 0 means 3*StdDev
}

// NewKeyedNoise creates noise with the given seed and std dev, bounded at 3 sigma.
func NewKeyedNoise(seed uint64, stdDev float64) KeyedNoise {
	return KeyedNoise{Seed: seed, StdDev: stdDev, Bound: 3 * stdDev}
}

// Multiplier returns 1 + clamp(N(0, StdDev)).
func (n KeyedNoise) Multiplier(fieldID int64, month time.Time) float64 {
	if n.StdDev <= 0 {
		return 1
	}
	bound := n.Bound
	if bound <= 0 {
		bound = 3 * n.StdDev
	}

	s1, s2 := idhash.ComputeNoiseSeed(n.Seed, fieldID, month, noiseStream)
	r := rand.New(rand.NewPCG(s1, s2))
	draw := r.NormFloat64() * n.StdDev
	return 1 + math.Max(-bound, math.Min(bound, draw))
}

// NoNoise is a NoiseSource that always returns 1.
type NoNoise struct{}

// Multiplier returns 1.
func (NoNoise) Multiplier(int64, time.Time) float64 { return 1 }

var (
	_ NoiseSource = KeyedNoise{}
	_ NoiseSource = NoNoise{}
)
