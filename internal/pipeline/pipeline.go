package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/observability"
	"oilfield-finance-lab/internal/orchestrator"
	"oilfield-finance-lab/internal/reporting"
	"oilfield-finance-lab/internal/verification"
)

// GeneratorVersion is recorded in every run manifest.
const GeneratorVersion = "1.0.0"

// Output file names beyond the reporting tables.
const (
	ManifestFile = "run_manifest.json"
	MetricsFile  = "metrics.prom"
)

// Options for creating a Pipeline.
type Options struct {
	Engine *orchestrator.Orchestrator
	Rerun  *orchestrator.Orchestrator // optional; runs the same inputs again and must match bit for bit

	OutputDir string
	Seed      uint64
	Horizon   domain.Horizon
	Source    string // csv, db or synthetic
	InputDir  string

	Metrics *observability.Metrics // nil creates a run-scoped instance
	Logger  *zap.Logger
}

// Pipeline runs the engine once and writes every output file. Nothing is
// written when the engine fails or the rerun diverges.
type Pipeline struct {
	engine    *orchestrator.Orchestrator
	rerun     *orchestrator.Orchestrator
	outputDir string
	seed      uint64
	horizon   domain.Horizon
	source    string
	inputDir  string
	metrics   *observability.Metrics
	logger    *zap.Logger
	reportGen *reporting.Generator
	clock     func() time.Time
	newRunID  func() string
}

// New creates a new pipeline.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = observability.NewMetrics("")
	}
	return &Pipeline{
		engine:    opts.Engine,
		rerun:     opts.Rerun,
		outputDir: opts.OutputDir,
		seed:      opts.Seed,
		horizon:   opts.Horizon,
		source:    opts.Source,
		inputDir:  opts.InputDir,
		metrics:   m,
		logger:    logger,
		reportGen: reporting.NewGenerator(),
		clock:     func() time.Time { return time.Now().UTC() },
		newRunID:  func() string { return uuid.NewString() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *Pipeline) WithClock(clock func() time.Time) *Pipeline {
	p.clock = clock
	p.reportGen = p.reportGen.WithClock(clock)
	return p
}

// WithRunID sets a custom run id generator.
func (p *Pipeline) WithRunID(newRunID func() string) *Pipeline {
	p.newRunID = newRunID
	return p
}

// Result describes a completed pipeline run.
type Result struct {
	Run          *orchestrator.RunResult
	Manifest     Manifest
	Verification *verification.Report // nil without a rerun
	Files        []string             // written paths, in write order
}

// Run executes the engine and writes:
// - production_financials.csv
// - monthly_aggregates.csv
// - VALIDATION_REPORT.md
// - run_manifest.json
// - metrics.prom
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if p.engine == nil {
		return nil, fmt.Errorf("pipeline: no engine configured")
	}
	runID := p.newRunID()
	logger := p.logger.With(zap.String("run_id", runID))

	// 1. Engine run
	run, err := p.engine.Run(ctx)
	if err != nil {
		return nil, p.fail(logger, err)
	}
	result := &Result{Run: run}

	// 2. Optional reproducibility check
	if p.rerun != nil {
		report, err := CheckReproducible(ctx, p.rerun, run)
		result.Verification = report
		if err != nil {
			return nil, p.fail(logger, err)
		}
		logger.Info("reproducibility verified", zap.String("summary", report.Summary()))
	}

	// 3. Render everything in memory
	info := reporting.RunInfo{
		RunID:       runID,
		Seed:        p.seed,
		Horizon:     p.horizon,
		DataVersion: run.DataVersion,
		FieldCount:  len(run.Dataset.Fields),
	}
	report := p.reportGen.Generate(info, run.Validation)
	result.Manifest = p.buildManifest(info, report.GeneratedAt, run, result.Verification)
	manifestJSON, err := RenderManifest(result.Manifest)
	if err != nil {
		return nil, p.fail(logger, err)
	}

	outputs := []struct {
		name string
		data string
	}{
		{reporting.FinancialsFile, reporting.RenderFinancialsCSV(run.Financials)},
		{reporting.AggregatesFile, reporting.RenderAggregatesCSV(run.Aggregates)},
		{reporting.ReportFile, reporting.RenderMarkdown(report)},
		{ManifestFile, string(manifestJSON)},
	}

	// 4. Write files
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, p.fail(logger, fmt.Errorf("create output dir: %w", err))
	}
	for _, out := range outputs {
		path := filepath.Join(p.outputDir, out.name)
		if err := os.WriteFile(path, []byte(out.data), 0644); err != nil {
			return nil, p.fail(logger, fmt.Errorf("write %s: %w", out.name, err))
		}
		result.Files = append(result.Files, path)
	}

	// 5. Metrics go last so they include this run's status.
	p.metrics.RecordRun(observability.StatusSuccess, p.clock())
	metricsPath := filepath.Join(p.outputDir, MetricsFile)
	if err := p.metrics.WriteTextfile(metricsPath); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, metricsPath)

	logger.Info("pipeline completed",
		zap.String("output_dir", p.outputDir),
		zap.Int("files", len(result.Files)),
		zap.Bool("validation_passed", run.Validation.Passed()),
	)
	return result, nil
}

func (p *Pipeline) fail(logger *zap.Logger, err error) error {
	p.metrics.RecordRun(observability.StatusError, p.clock())
	logger.Error("pipeline failed", zap.Error(err))
	return err
}
