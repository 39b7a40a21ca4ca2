package reporting

import (
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/validation"
)

// RunInfo identifies the run a report describes.
type RunInfo struct {
	RunID       string
	Seed        uint64
	Horizon     domain.Horizon
	DataVersion string
	FieldCount  int
}

// Generator produces validation reports.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate assembles the report for one run.
func (g *Generator) Generate(info RunInfo, v *validation.Report) *Report {
	return &Report{
		GeneratedAt: g.now(),
		RunID:       info.RunID,
		Seed:        info.Seed,
		Horizon:     info.Horizon,
		DataVersion: info.DataVersion,
		FieldCount:  info.FieldCount,
		Validation:  v,
	}
}
