// Package main loads CSV input tables into Postgres (field registry) and
// ClickHouse (monthly series) after applying schema migrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"oilfield-finance-lab/internal/config"
	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/ingestion"
	"oilfield-finance-lab/internal/observability"
	chstore "oilfield-finance-lab/internal/storage/clickhouse"
	"oilfield-finance-lab/internal/storage/migrations"
	pgstore "oilfield-finance-lab/internal/storage/postgres"
	"oilfield-finance-lab/pkg/logger"
)

func main() {
	envFile := flag.String("env-file", "", "Optional .env file with OILSIM_* variables")
	inputDir := flag.String("input-dir", "", "Directory with the CSV input tables (default OILSIM_INPUT_DIR)")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (default OILSIM_POSTGRES_DSN)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string (default OILSIM_CLICKHOUSE_DSN)")
	metricsFile := flag.String("metrics-file", "", "Optional path for a Prometheus textfile with store timings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *inputDir != "" {
		cfg.Paths.InputDir = *inputDir
	}
	if *postgresDSN != "" {
		cfg.Postgres.DSN = *postgresDSN
	}
	if *clickhouseDSN != "" {
		cfg.ClickHouse.DSN = *clickhouseDSN
	}

	log := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := observability.NewMetrics("")
	err = run(ctx, cfg, m, log)
	if *metricsFile != "" {
		if werr := m.WriteTextfile(*metricsFile); werr != nil {
			log.Error("write metrics", zap.Error(werr))
		}
	}
	if err != nil {
		log.Error("ingest failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, m *observability.Metrics, log *zap.Logger) error {
	// 1. Read and check CSV tables before touching any database.
	tables, err := ingestion.NewCSVSource(cfg.Paths.InputDir).Load(ctx)
	if err != nil {
		return fmt.Errorf("read input tables: %w", err)
	}
	h, err := seriesHorizon(tables)
	if err != nil {
		return err
	}
	log.Info("input tables read",
		zap.String("input_dir", cfg.Paths.InputDir),
		zap.Int("fields", len(tables.Fields)),
		zap.Int("oil_price", len(tables.USDPrices)),
		zap.Int("fx_rate", len(tables.FXRates)),
		zap.Int("general_cost", len(tables.GeneralCosts)),
	)

	// 2. Postgres: migrations + pool
	start := time.Now()
	err = migrations.RunPostgresMigrations(cfg.Postgres.DSN)
	m.RecordStoreOp("postgres", "migrate", time.Since(start), err)
	if err != nil {
		return err
	}
	if version, dirty, err := migrations.PostgresVersion(cfg.Postgres.DSN); err == nil {
		log.Info("postgres schema ready", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}

	pool, err := pgstore.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	// 3. ClickHouse: database + tables
	start = time.Now()
	conn, err := migrations.RunClickhouseMigrations(ctx, cfg.ClickHouse.DSN)
	m.RecordStoreOp("clickhouse", "migrate", time.Since(start), err)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Info("clickhouse schema ready")

	// 4. Store
	opts := ingestion.StoreSourceOptions{
		FieldStore:       pgstore.NewFieldStore(pool),
		OilPriceStore:    chstore.NewOilPriceStore(conn),
		FXRateStore:      chstore.NewFXRateStore(conn),
		GeneralCostStore: chstore.NewGeneralCostStore(conn),
		Horizon:          h,
	}
	start = time.Now()
	counts, err := ingestion.Store(ctx, tables, opts)
	m.RecordStoreOp("all", "insert", time.Since(start), err)
	if err != nil {
		return err
	}
	for table, n := range counts {
		m.RecordRecords(table, n)
	}

	log.Info("ingest completed",
		zap.Int(domain.TableFields, counts[domain.TableFields]),
		zap.Int(domain.TableOilPrice, counts[domain.TableOilPrice]),
		zap.Int(domain.TableFXRate, counts[domain.TableFXRate]),
		zap.Int(domain.TableGeneralCost, counts[domain.TableGeneralCost]),
		zap.String("series_range", h.String()),
	)
	return nil
}

// seriesHorizon spans every date of the monthly series, so the read-back
// range of the store source covers everything that was written.
func seriesHorizon(t *ingestion.Tables) (domain.Horizon, error) {
	var h domain.Horizon
	first := true
	extend := func(d time.Time) {
		if first || d.Before(h.Start) {
			h.Start = d
		}
		if first || d.After(h.End) {
			h.End = d
		}
		first = false
	}
	for _, p := range t.USDPrices {
		extend(p.Date)
	}
	for _, p := range t.FXRates {
		extend(p.Date)
	}
	for _, p := range t.GeneralCosts {
		extend(p.Date)
	}
	if first {
		return h, fmt.Errorf("input tables contain no monthly series")
	}
	return h, h.Validate()
}
