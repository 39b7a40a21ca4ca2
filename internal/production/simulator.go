package production

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/lookup"
)

// Simulator produces monthly production records for a field roster.
type Simulator struct {
	noise   NoiseSource
	workers int
	logger  *zap.Logger
}

// Options contains configuration for creating a Simulator.
type Options struct {
	Noise   NoiseSource // nil means NoNoise
	Workers int         // fields simulated concurrently, <= 1 means sequential
	Logger  *zap.Logger
}

// NewSimulator creates a production simulator.
func NewSimulator(opts Options) *Simulator {
	s := &Simulator{
		noise:   opts.Noise,
		workers: opts.Workers,
		logger:  opts.Logger,
	}
	if s.noise == nil {
		s.noise = NoNoise{}
	}
	if s.workers < 1 {
		s.workers = 1
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Run simulates every field for every month of the horizon.
// Steps:
//  1. Resolve the local price of every horizon month (a gap fails the run)
//  2. Simulate each field independently, optionally in parallel
//  3. Assemble records in (date, field_id) order
//
// The output is identical for any worker count.
func (s *Simulator) Run(ctx context.Context, fields []domain.Field, prices *lookup.PriceIndex, h domain.Horizon) ([]domain.ProductionRecord, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("simulate production: %w", err)
	}
	if prices == nil {
		return nil, fmt.Errorf("simulate production: %w", lookup.ErrNoPriceData)
	}

	// 1. Price for every month, whether or not any field is producing.
	months := h.Months()
	localPrices := make([]float64, len(months))
	for i, m := range months {
		p, err := prices.LocalPriceAt(m)
		if err != nil {
			return nil, err
		}
		localPrices[i] = p
	}

	roster := make([]domain.Field, len(fields))
	copy(roster, fields)
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })

	// 2. One slot per field; workers never share a slot.
	slots := make([][]domain.ProductionRecord, len(roster))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range roster {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = s.simulateField(roster[i], months, localPrices)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("simulate production: %w", err)
	}

	// 3. Month-major, field id ascending.
	records := make([]domain.ProductionRecord, 0, len(roster)*len(months))
	for mi := range months {
		for fi := range roster {
			records = append(records, slots[fi][mi])
		}
	}

	s.logger.Debug("production simulated",
		zap.Int("fields", len(roster)),
		zap.Int("months", len(months)),
		zap.Int("records", len(records)),
		zap.Int("workers", s.workers),
	)
	return records, nil
}

// simulateField returns one record per month for f.
func (s *Simulator) simulateField(f domain.Field, months []time.Time, localPrices []float64) []domain.ProductionRecord {
	out := make([]domain.ProductionRecord, len(months))
	for i, m := range months {
		out[i] = MonthlyRecord(f, m, localPrices[i], s.noise)
	}
	return out
}

// MonthlyRecord computes the production record of field f in month m.
// Months before the field's start produce nothing and skip the model.
func MonthlyRecord(f domain.Field, m time.Time, localPrice float64, noise NoiseSource) domain.ProductionRecord {
	rec := domain.ProductionRecord{
		FieldID:    f.ID,
		Date:       m,
		LocalPrice: localPrice,
	}
	if m.Before(f.StartDate) {
		return rec
	}

	age := domain.MonthsBetween(f.StartDate, m)
	daily := f.Capacity * MaturationFactor(age) * Seasonality(m.Month()) * noise.Multiplier(f.ID, m)
	rec.ProductionVolume = math.Max(0, daily*float64(domain.DaysInMonth(m)))
	rec.Revenue = rec.ProductionVolume * localPrice
	return rec
}
