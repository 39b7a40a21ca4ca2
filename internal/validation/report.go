package validation

import (
	"time"

	"oilfield-finance-lab/internal/metrics"
)

// Check names.
const (
	CheckDateCoverage      = "date_coverage"
	CheckMissingValues     = "missing_values"
	CheckCorrelation       = "price_revenue_correlation"
	CheckProfitIdentity    = "profit_identity"
	CheckAllocationBalance = "allocation_balance"
	CheckRowCoverage       = "row_coverage"
)

// Check is the outcome of one sanity check.
type Check struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// Warning is an advisory finding. Warnings never abort a run.
type Warning struct {
	Check   string
	Message string
}

// ColumnCount is the number of missing (NaN/Inf) values in one column.
type ColumnCount struct {
	Column string
	Count  int
}

// ColumnSummary pairs a column name with its statistics.
type ColumnSummary struct {
	Column string
	Stats  metrics.Summary
}

// Summary describes the validated tables.
type Summary struct {
	RecordCount    int
	AggregateCount int
	Start          time.Time
	End            time.Time
	Columns        []string
	Aggregates     []ColumnSummary
	Profile        metrics.ProfitProfile
}

// Report is the full validation output.
type Report struct {
	Checks   []Check
	Warnings []Warning

	MissingDates     []time.Time // first few, ascending
	MissingDateCount int
	MissingValues    []ColumnCount
	Correlation      float64 // NaN when undefined

	Narrative []string
	Summary   Summary
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

// Check returns the check with the given name.
func (r *Report) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

func (r *Report) warn(check, msg string) {
	r.Warnings = append(r.Warnings, Warning{Check: check, Message: msg})
}
