// Package orchestrator provides end-to-end engine orchestration.
// It coordinates: normalization → simulation → allocation → consolidation → validation
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"oilfield-finance-lab/internal/allocation"
	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/idhash"
	"oilfield-finance-lab/internal/ingestion"
	"oilfield-finance-lab/internal/lookup"
	"oilfield-finance-lab/internal/metrics"
	"oilfield-finance-lab/internal/normalization"
	"oilfield-finance-lab/internal/observability"
	"oilfield-finance-lab/internal/production"
	"oilfield-finance-lab/internal/validation"
)

// Stage names used in logs and metrics.
const (
	StageLoad        = "load"
	StageNormalize   = "normalize"
	StageSimulate    = "simulate"
	StageAllocate    = "allocate"
	StageConsolidate = "consolidate"
	StageValidate    = "validate"
)

// ErrNoSource is returned by Run when no input source is configured.
var ErrNoSource = errors.New("orchestrator: no input source")

// Orchestrator runs the engine stages synchronously in order.
type Orchestrator struct {
	source    ingestion.Source
	horizon   domain.Horizon
	simulator *production.Simulator
	allocator *allocation.Engine
	validator *validation.Validator
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// Options for creating Orchestrator.
type Options struct {
	Source  ingestion.Source // required by Run, unused by RunTables
	Horizon domain.Horizon

	// Simulation
	Noise   production.NoiseSource // nil means no noise
	Workers int

	// Allocation
	Policy *allocation.CostPolicy // nil means allocation.DefaultCostPolicy

	// Validation
	Validation validation.Options

	Metrics *observability.Metrics // nil disables metrics
	Logger  *zap.Logger
}

// New creates a new Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if err := opts.Horizon.Validate(); err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	policy := allocation.DefaultCostPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	allocator, err := allocation.NewEngine(allocation.Options{
		Policy: policy,
		Logger: logger.Named("allocation"),
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	vopts := opts.Validation
	if vopts.Logger == nil {
		vopts.Logger = logger.Named("validation")
	}

	return &Orchestrator{
		source:  opts.Source,
		horizon: opts.Horizon,
		simulator: production.NewSimulator(production.Options{
			Noise:   opts.Noise,
			Workers: opts.Workers,
			Logger:  logger.Named("production"),
		}),
		allocator: allocator,
		validator: validation.NewValidator(vopts),
		metrics:   opts.Metrics,
		logger:    logger,
	}, nil
}

// RunResult contains every table produced by one engine run.
type RunResult struct {
	Tables      *ingestion.Tables // input as loaded, before normalization
	Dataset     *normalization.Dataset
	Production  []domain.ProductionRecord // (date, field_id) order
	Financials  []domain.FinancialRecord  // (date, field_id) order
	Aggregates  []domain.MonthlyAggregate // date ASC
	Degenerate  []allocation.DegenerateMonth
	Validation  *validation.Report
	DataVersion string
}

// Run loads the input tables from the configured source and runs the engine.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	if o.source == nil {
		return nil, ErrNoSource
	}

	var tables *ingestion.Tables
	err := o.stage(StageLoad, func() (int, error) {
		var err error
		tables, err = o.source.Load(ctx)
		if err != nil {
			return 0, err
		}
		return len(tables.Fields), nil
	})
	if err != nil {
		return nil, err
	}

	return o.RunTables(ctx, tables)
}

// RunTables runs the engine over already loaded tables. The tables are not
// modified. Any data contract violation aborts the run before validation.
func (o *Orchestrator) RunTables(ctx context.Context, tables *ingestion.Tables) (*RunResult, error) {
	result := &RunResult{Tables: tables}

	// Stage 1: Normalization
	err := o.stage(StageNormalize, func() (int, error) {
		ds, err := normalization.Normalize(tables, o.horizon)
		if err != nil {
			return 0, err
		}
		result.Dataset = ds
		return len(ds.Fields), nil
	})
	if err != nil {
		return nil, err
	}
	ds := result.Dataset
	result.DataVersion = idhash.ComputeDataVersion(ds.Fields, ds.Prices, ds.Costs)

	prices, err := lookup.NewPriceIndex(ds.Prices)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageNormalize, err)
	}
	costs, err := lookup.NewCostIndex(ds.Costs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageNormalize, err)
	}

	// Stage 2: Production simulation
	err = o.stage(StageSimulate, func() (int, error) {
		records, err := o.simulator.Run(ctx, ds.Fields, prices, o.horizon)
		if err != nil {
			return 0, err
		}
		result.Production = records
		return len(records), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 3: Cost allocation
	err = o.stage(StageAllocate, func() (int, error) {
		res, err := o.allocator.Apply(result.Production, costs)
		if err != nil {
			return 0, err
		}
		result.Financials = res.Records
		result.Degenerate = res.DegenerateMonths
		return len(res.Records), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 4: Consolidation
	err = o.stage(StageConsolidate, func() (int, error) {
		result.Aggregates = metrics.Consolidate(result.Financials, result.Degenerate)
		return len(result.Aggregates), nil
	})
	if err != nil {
		return nil, err
	}

	// Stage 5: Validation
	err = o.stage(StageValidate, func() (int, error) {
		result.Validation = o.validator.Run(validation.Input{
			Horizon:    o.horizon,
			FieldCount: len(ds.Fields),
			Records:    result.Financials,
			Aggregates: result.Aggregates,
			Costs:      ds.Costs,
			Degenerate: result.Degenerate,
		})
		return len(result.Validation.Warnings), nil
	})
	if err != nil {
		return nil, err
	}

	o.recordResult(result)
	o.logger.Info("engine run completed",
		zap.Int("fields", len(ds.Fields)),
		zap.Int("months", o.horizon.Len()),
		zap.Int("financial_records", len(result.Financials)),
		zap.Int("aggregates", len(result.Aggregates)),
		zap.Int("degenerate_months", len(result.Degenerate)),
		zap.Int("warnings", len(result.Validation.Warnings)),
		zap.String("data_version", result.DataVersion),
	)

	return result, nil
}

// stage runs fn, logging its duration and output count. Errors are wrapped
// with the stage name.
func (o *Orchestrator) stage(name string, fn func() (int, error)) error {
	o.logger.Debug("stage started", zap.String("stage", name))
	start := time.Now()

	count, err := fn()
	elapsed := time.Since(start)
	if o.metrics != nil {
		o.metrics.RecordStage(name, elapsed)
	}
	if err != nil {
		o.logger.Error("stage failed", zap.String("stage", name), zap.Duration("duration", elapsed), zap.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}

	o.logger.Info("stage finished",
		zap.String("stage", name),
		zap.Int("count", count),
		zap.Duration("duration", elapsed),
	)
	return nil
}

func (o *Orchestrator) recordResult(r *RunResult) {
	if o.metrics == nil {
		return
	}
	o.metrics.RecordRecords(domain.TableProduction, len(r.Financials))
	o.metrics.RecordRecords("monthly_aggregates", len(r.Aggregates))
	o.metrics.DegenerateMonths.Add(float64(len(r.Degenerate)))
	o.metrics.ValidationWarnings.Add(float64(len(r.Validation.Warnings)))
	for _, c := range r.Validation.Checks {
		if !c.Pass {
			o.metrics.ChecksFailed.Inc()
		}
	}
}
