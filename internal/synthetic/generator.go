// Package synthetic generates deterministic input tables for demos and tests.
package synthetic

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/idhash"
	"oilfield-finance-lab/internal/ingestion"
)

// Series stream names. Each series draws from its own PCG stream so adding
// or resizing one table never shifts the values of another.
const (
	streamFields = "fields"
	streamPrice  = "usd_price"
	streamFX     = "fx_rate"
)

// Generator produces the four input tables from one seed.
type Generator struct {
	seed uint64
}

// New creates a generator.
func New(seed uint64) *Generator {
	return &Generator{seed: seed}
}

func (g *Generator) rng(stream string) *rand.Rand {
	return rand.New(rand.NewPCG(idhash.ComputeSeriesSeed(g.seed, stream)))
}

// Tables generates a full input set for the horizon.
func (g *Generator) Tables(h domain.Horizon, fieldCount int) (*ingestion.Tables, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if fieldCount <= 0 {
		return nil, fmt.Errorf("synthetic: field count must be positive, got %d", fieldCount)
	}
	return &ingestion.Tables{
		Fields:       g.Fields(fieldCount),
		USDPrices:    g.USDPrices(h),
		FXRates:      g.FXRates(h),
		GeneralCosts: g.GeneralCosts(h, DefaultCostBase()),
	}, nil
}

// Source serves generated tables through the ingestion.Source interface.
type Source struct {
	Generator  *Generator
	Horizon    domain.Horizon
	FieldCount int
}

// Load generates the tables.
func (s *Source) Load(ctx context.Context) (*ingestion.Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Generator.Tables(s.Horizon, s.FieldCount)
}

var _ ingestion.Source = (*Source)(nil)

// linspace returns n evenly spaced values over [start, stop].
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// centeredMean3 is a centred 3-point rolling mean; the ends average the
// two available points.
func centeredMean3(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		lo, hi := max(0, i-1), min(len(values)-1, i+1)
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
