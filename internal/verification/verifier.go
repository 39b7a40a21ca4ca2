// Package verification compares two engine runs for reproducibility.
// Values must match bit for bit: the same seed and inputs must reproduce
// identical tables regardless of worker count.
package verification

import (
	"fmt"
	"math"
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/validation"
)

// FieldDivergence represents a mismatch between expected and actual values.
type FieldDivergence struct {
	Column   string
	Expected float64
	Actual   float64
}

// RecordResult describes one divergent row.
type RecordResult struct {
	Table       string
	FieldID     int64 // 0 for aggregate rows
	Date        time.Time
	Divergences []FieldDivergence
}

// Report contains the result of comparing two runs.
type Report struct {
	TotalRecords     int
	MatchedRecords   int
	DivergentRecords int
	Results          []RecordResult // divergent rows only
	Structural       []string       // row count or key mismatches
}

// Match reports whether both runs are identical.
func (r *Report) Match() bool {
	return r.DivergentRecords == 0 && len(r.Structural) == 0
}

// bitEqual treats two NaNs with the same payload as equal.
func bitEqual(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// CompareFinancials compares per-field tables row by row. Rows are matched
// by position and must carry the same (field_id, date) key.
func CompareFinancials(expected, actual []domain.FinancialRecord) *Report {
	r := &Report{}
	if len(expected) != len(actual) {
		r.Structural = append(r.Structural, fmt.Sprintf("%s: row count %d vs %d",
			domain.TableProduction, len(expected), len(actual)))
	}

	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		e, a := &expected[i], &actual[i]
		r.TotalRecords++
		if e.FieldID != a.FieldID || !e.Date.Equal(a.Date) {
			r.Structural = append(r.Structural, fmt.Sprintf("%s row %d: key (%d, %s) vs (%d, %s)",
				domain.TableProduction, i, e.FieldID, domain.FormatDate(e.Date), a.FieldID, domain.FormatDate(a.Date)))
			continue
		}

		var divs []FieldDivergence
		for _, col := range validation.FinancialColumns {
			ev, av := col.Value(e), col.Value(a)
			if !bitEqual(ev, av) {
				divs = append(divs, FieldDivergence{Column: col.Name, Expected: ev, Actual: av})
			}
		}
		r.record(domain.TableProduction, e.FieldID, e.Date, divs)
	}
	return r
}

// CompareAggregates compares monthly aggregate tables row by row.
func CompareAggregates(expected, actual []domain.MonthlyAggregate) *Report {
	const table = "monthly_aggregates"
	r := &Report{}
	if len(expected) != len(actual) {
		r.Structural = append(r.Structural, fmt.Sprintf("%s: row count %d vs %d", table, len(expected), len(actual)))
	}

	n := min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		e, a := &expected[i], &actual[i]
		r.TotalRecords++
		if !e.Date.Equal(a.Date) {
			r.Structural = append(r.Structural, fmt.Sprintf("%s row %d: date %s vs %s",
				table, i, domain.FormatDate(e.Date), domain.FormatDate(a.Date)))
			continue
		}

		var divs []FieldDivergence
		for _, col := range validation.AggregateColumns {
			ev, av := col.Value(e), col.Value(a)
			if !bitEqual(ev, av) {
				divs = append(divs, FieldDivergence{Column: col.Name, Expected: ev, Actual: av})
			}
		}
		r.record(table, 0, e.Date, divs)
	}
	return r
}

// CompareRuns compares both tables of two runs and merges the reports.
func CompareRuns(
	expectedFinancials, actualFinancials []domain.FinancialRecord,
	expectedAggregates, actualAggregates []domain.MonthlyAggregate,
) *Report {
	fin := CompareFinancials(expectedFinancials, actualFinancials)
	agg := CompareAggregates(expectedAggregates, actualAggregates)

	return &Report{
		TotalRecords:     fin.TotalRecords + agg.TotalRecords,
		MatchedRecords:   fin.MatchedRecords + agg.MatchedRecords,
		DivergentRecords: fin.DivergentRecords + agg.DivergentRecords,
		Results:          append(fin.Results, agg.Results...),
		Structural:       append(fin.Structural, agg.Structural...),
	}
}

func (r *Report) record(table string, fieldID int64, date time.Time, divs []FieldDivergence) {
	if len(divs) == 0 {
		r.MatchedRecords++
		return
	}
	r.DivergentRecords++
	r.Results = append(r.Results, RecordResult{
		Table:       table,
		FieldID:     fieldID,
		Date:        date,
		Divergences: divs,
	})
}

// Summary returns a one-line description of the report.
func (r *Report) Summary() string {
	if r.Match() {
		return fmt.Sprintf("runs identical: %d records compared", r.TotalRecords)
	}
	return fmt.Sprintf("runs diverge: %d of %d records differ, %d structural mismatches",
		r.DivergentRecords, r.TotalRecords, len(r.Structural))
}
