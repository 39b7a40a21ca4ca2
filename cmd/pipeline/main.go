// Package main provides the simulation pipeline entry point.
// Executes: load → normalization → simulation → allocation → consolidation → validation → outputs
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"oilfield-finance-lab/internal/allocation"
	"oilfield-finance-lab/internal/config"
	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/ingestion"
	"oilfield-finance-lab/internal/observability"
	"oilfield-finance-lab/internal/orchestrator"
	"oilfield-finance-lab/internal/pipeline"
	"oilfield-finance-lab/internal/production"
	chstore "oilfield-finance-lab/internal/storage/clickhouse"
	pgstore "oilfield-finance-lab/internal/storage/postgres"
	"oilfield-finance-lab/internal/synthetic"
	"oilfield-finance-lab/internal/validation"
	"oilfield-finance-lab/pkg/logger"
)

func main() {
	// Parse flags. Flags that are set override configuration values.
	envFile := flag.String("env-file", "", "Optional .env file with OILSIM_* variables")
	flag.String("source", "", "Input source: csv, db or synthetic")
	flag.String("input-dir", "", "Directory with fields.csv, oil_price.csv, fx_rate.csv, general_cost.csv")
	flag.String("output-dir", "", "Output directory for generated files")
	flag.String("seed", "", "Random seed for production noise and synthetic inputs")
	flag.String("start", "", "First horizon month (YYYY-MM)")
	flag.String("end", "", "Last horizon month (YYYY-MM)")
	flag.String("workers", "", "Fields simulated concurrently")
	flag.Bool("verify-reproducible", false, "Run the engine twice with different worker counts and fail on any divergence")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	// Create context with cancellation for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		var dce *domain.DataContractError
		if errors.As(err, &dce) {
			fmt.Fprintf(os.Stderr, "%s\n", dce.Error())
		}
		log.Error("pipeline failed", zap.Error(err))
		os.Exit(1)
	}
}

// applyFlags copies explicitly set flags into cfg and revalidates it.
func applyFlags(cfg *config.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "source":
			cfg.Run.Source = v
		case "input-dir":
			cfg.Paths.InputDir = v
		case "output-dir":
			cfg.Paths.OutputDir = v
		case "start":
			cfg.Run.Start = v
		case "end":
			cfg.Run.End = v
		case "seed":
			cfg.Simulation.Seed, err = strconv.ParseUint(v, 10, 64)
		case "workers":
			cfg.Simulation.Workers, err = strconv.Atoi(v)
		case "verify-reproducible":
			cfg.Simulation.VerifyReruns, err = strconv.ParseBool(v)
		}
		if err != nil {
			err = fmt.Errorf("-%s: %w", f.Name, err)
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	h, err := cfg.Horizon()
	if err != nil {
		return err
	}

	source, closeSource, err := openSource(ctx, cfg, h)
	if err != nil {
		return err
	}
	defer closeSource()

	m := observability.NewMetrics("")
	policy := allocation.CostPolicy{
		UnitVariableCost:  cfg.Costs.UnitVariableCost,
		FixedCostPerField: cfg.Costs.FixedCostPerField,
	}
	newEngine := func(src ingestion.Source, workers int, em *observability.Metrics) (*orchestrator.Orchestrator, error) {
		return orchestrator.New(orchestrator.Options{
			Source:  src,
			Horizon: h,
			Noise:   production.NewKeyedNoise(cfg.Simulation.Seed, cfg.Simulation.NoiseStdDev),
			Workers: workers,
			Policy:  &policy,
			Validation: validation.Options{
				CorrelationThreshold: &cfg.Validation.CorrelationThreshold,
			},
			Metrics: em,
			Logger:  logger.Named(log, "engine"),
		})
	}

	engine, err := newEngine(source, cfg.Simulation.Workers, m)
	if err != nil {
		return err
	}

	var rerun *orchestrator.Orchestrator
	if cfg.Simulation.VerifyReruns {
		// The rerun gets its own metrics so the exported counters describe one run.
		rerun, err = newEngine(nil, rerunWorkers(cfg.Simulation.Workers), observability.NewMetrics(""))
		if err != nil {
			return err
		}
	}

	log.Info("starting pipeline",
		zap.String("source", cfg.Run.Source),
		zap.String("horizon", h.String()),
		zap.Uint64("seed", cfg.Simulation.Seed),
		zap.Int("workers", cfg.Simulation.Workers),
		zap.Bool("verify_reproducible", cfg.Simulation.VerifyReruns),
	)

	p := pipeline.New(pipeline.Options{
		Engine:    engine,
		Rerun:     rerun,
		OutputDir: cfg.Paths.OutputDir,
		Seed:      cfg.Simulation.Seed,
		Horizon:   h,
		Source:    cfg.Run.Source,
		InputDir:  cfg.Paths.InputDir,
		Metrics:   m,
		Logger:    logger.Named(log, "pipeline"),
	})

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Pipeline completed successfully:")
	for _, f := range result.Files {
		fmt.Printf("  - %s\n", f)
	}
	if !result.Run.Validation.Passed() {
		fmt.Printf("Validation reported %d warnings; see the validation report.\n", len(result.Run.Validation.Warnings))
	}
	return nil
}

// rerunWorkers picks a worker count different from the first run.
func rerunWorkers(workers int) int {
	if workers == 1 {
		return 4
	}
	return 1
}

// openSource builds the configured input source and a cleanup function.
func openSource(ctx context.Context, cfg *config.Config, h domain.Horizon) (ingestion.Source, func(), error) {
	switch cfg.Run.Source {
	case config.SourceCSV:
		return ingestion.NewCSVSource(cfg.Paths.InputDir), func() {}, nil

	case config.SourceSynthetic:
		return &synthetic.Source{
			Generator:  synthetic.New(cfg.Simulation.Seed),
			Horizon:    h,
			FieldCount: cfg.Run.Fields,
		}, func() {}, nil

	case config.SourceDB:
		pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		conn, err := chstore.NewConn(ctx, cfg.ClickHouse.DSN)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect clickhouse: %w", err)
		}
		src := ingestion.NewStoreSource(ingestion.StoreSourceOptions{
			FieldStore:       pgstore.NewFieldStore(pool),
			OilPriceStore:    chstore.NewOilPriceStore(conn),
			FXRateStore:      chstore.NewFXRateStore(conn),
			GeneralCostStore: chstore.NewGeneralCostStore(conn),
			Horizon:          h,
		})
		return src, func() {
			pool.Close()
			_ = conn.Close()
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown source %q", cfg.Run.Source)
}
