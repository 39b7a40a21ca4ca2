package pipeline

import (
	"context"
	"errors"
	"fmt"

	"oilfield-finance-lab/internal/orchestrator"
	"oilfield-finance-lab/internal/verification"
)

// ErrNotReproducible is returned when a rerun over the same inputs diverges.
var ErrNotReproducible = errors.New("run is not reproducible")

// CheckReproducible reruns the engine over the tables of first and compares
// both runs bit for bit.
func CheckReproducible(ctx context.Context, rerun *orchestrator.Orchestrator, first *orchestrator.RunResult) (*verification.Report, error) {
	if first == nil || first.Tables == nil {
		return nil, fmt.Errorf("check reproducible: first run has no input tables")
	}

	second, err := rerun.RunTables(ctx, first.Tables)
	if err != nil {
		return nil, fmt.Errorf("check reproducible: rerun: %w", err)
	}

	report := verification.CompareRuns(first.Financials, second.Financials, first.Aggregates, second.Aggregates)
	if !report.Match() {
		return report, fmt.Errorf("%w: %s", ErrNotReproducible, report.Summary())
	}
	return report, nil
}
