package ingestion

import "context"

// Source loads every input table for a run.
type Source interface {
	// Load returns the raw input tables. Series may be unordered;
	// normalization enforces ordering and coverage.
	Load(ctx context.Context) (*Tables, error)
}
