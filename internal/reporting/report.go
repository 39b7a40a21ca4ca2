package reporting

import (
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/validation"
)

// Report is the VALIDATION_REPORT.md model.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string
	Seed        uint64
	Horizon     domain.Horizon
	DataVersion string
	FieldCount  int

	Validation *validation.Report
}
