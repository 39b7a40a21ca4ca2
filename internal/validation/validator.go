package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"oilfield-finance-lab/internal/allocation"
	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/metrics"
)

// Defaults.
const (
	DefaultCorrelationThreshold = 0.3
	DefaultIdentityTolerance    = 1e-6
	DefaultMaxMissingExamples   = 5
)

// Input bundles the tables a validation run inspects. Nothing is modified.
type Input struct {
	Horizon    domain.Horizon
	FieldCount int
	Records    []domain.FinancialRecord
	Aggregates []domain.MonthlyAggregate
	Costs      []domain.GeneralCostPoint
	Degenerate []allocation.DegenerateMonth
}

// Options contains configuration for creating a Validator.
type Options struct {
	KeyColumns           []string // nil means DefaultKeyColumns
	CorrelationThreshold *float64 // nil means DefaultCorrelationThreshold
	IdentityTolerance    float64  // relative; 0 means DefaultIdentityTolerance
	MaxMissingExamples   int      // 0 means DefaultMaxMissingExamples
	Logger               *zap.Logger
}

// Validator runs read-only sanity checks over engine output.
type Validator struct {
	keyColumns  []string
	threshold   float64
	tolerance   float64
	maxExamples int
	logger      *zap.Logger
}

// NewValidator creates a validator, filling unset options with defaults.
func NewValidator(opts Options) *Validator {
	v := &Validator{
		keyColumns:  opts.KeyColumns,
		threshold:   DefaultCorrelationThreshold,
		tolerance:   opts.IdentityTolerance,
		maxExamples: opts.MaxMissingExamples,
		logger:      opts.Logger,
	}
	if v.keyColumns == nil {
		v.keyColumns = DefaultKeyColumns
	}
	if opts.CorrelationThreshold != nil {
		v.threshold = *opts.CorrelationThreshold
	}
	if v.tolerance == 0 {
		v.tolerance = DefaultIdentityTolerance
	}
	if v.maxExamples == 0 {
		v.maxExamples = DefaultMaxMissingExamples
	}
	if v.logger == nil {
		v.logger = zap.NewNop()
	}
	return v
}

// Run executes every check. It never returns an error: findings are
// reported as failed checks and warnings.
func (v *Validator) Run(in Input) *Report {
	r := &Report{}

	v.checkDateCoverage(in, r)
	v.checkMissingValues(in, r)
	v.checkCorrelation(in, r)
	v.checkProfitIdentity(in, r)
	v.checkAllocationBalance(in, r)
	v.checkRowCoverage(in, r)
	v.noteDegenerateMonths(in, r)
	v.summarize(in, r)

	for _, w := range r.Warnings {
		v.logger.Warn("validation warning", zap.String("check", w.Check), zap.String("message", w.Message))
	}
	return r
}

func (v *Validator) checkDateCoverage(in Input, r *Report) {
	present := make(map[time.Time]struct{})
	for _, rec := range in.Records {
		present[rec.Date] = struct{}{}
	}

	expected := in.Horizon.Months()
	var missing []time.Time
	for _, m := range expected {
		if _, ok := present[m]; !ok {
			missing = append(missing, m)
		}
	}

	r.MissingDateCount = len(missing)
	if len(missing) > v.maxExamples {
		r.MissingDates = missing[:v.maxExamples]
	} else {
		r.MissingDates = missing
	}

	pass := len(missing) == 0
	r.Checks = append(r.Checks, Check{
		Name:      CheckDateCoverage,
		Threshold: "0 missing months",
		Actual:    fmt.Sprintf("%d of %d months missing", len(missing), len(expected)),
		Pass:      pass,
	})
	if pass {
		r.Narrative = append(r.Narrative, fmt.Sprintf("Date coverage is complete: %d months from %s to %s.",
			len(expected), domain.FormatDate(in.Horizon.Start), domain.FormatDate(in.Horizon.End)))
		return
	}
	examples := make([]string, len(r.MissingDates))
	for i, d := range r.MissingDates {
		examples[i] = domain.FormatDate(d)
	}
	msg := fmt.Sprintf("%d missing months, first: %s", len(missing), strings.Join(examples, ", "))
	r.warn(CheckDateCoverage, msg)
	r.Narrative = append(r.Narrative, "Date coverage is incomplete: "+msg+".")
}

func (v *Validator) checkMissingValues(in Input, r *Report) {
	total := 0
	for _, name := range v.keyColumns {
		col, ok := financialColumn(name)
		if !ok {
			r.warn(CheckMissingValues, fmt.Sprintf("unknown key column %q", name))
			continue
		}
		count := 0
		for i := range in.Records {
			x := col.Value(&in.Records[i])
			if math.IsNaN(x) || math.IsInf(x, 0) {
				count++
			}
		}
		r.MissingValues = append(r.MissingValues, ColumnCount{Column: name, Count: count})
		total += count
		if count > 0 {
			r.warn(CheckMissingValues, fmt.Sprintf("column %s has %d missing values", name, count))
		}
	}

	r.Checks = append(r.Checks, Check{
		Name:      CheckMissingValues,
		Threshold: "0 missing values",
		Actual:    fmt.Sprintf("%d missing values", total),
		Pass:      total == 0,
	})
	if total == 0 {
		r.Narrative = append(r.Narrative, "No missing values in key columns.")
	} else {
		r.Narrative = append(r.Narrative, fmt.Sprintf("%d missing values found in key columns.", total))
	}
}

func (v *Validator) checkCorrelation(in Input, r *Report) {
	prices := make([]float64, len(in.Records))
	revenues := make([]float64, len(in.Records))
	for i, rec := range in.Records {
		prices[i] = rec.LocalPrice
		revenues[i] = rec.Revenue
	}

	corr := metrics.Pearson(prices, revenues)
	r.Correlation = corr

	pass := !math.IsNaN(corr) && corr > v.threshold
	actual := "undefined"
	if !math.IsNaN(corr) {
		actual = fmt.Sprintf("r = %.2f", corr)
	}
	r.Checks = append(r.Checks, Check{
		Name:      CheckCorrelation,
		Threshold: fmt.Sprintf("r > %.2f", v.threshold),
		Actual:    actual,
		Pass:      pass,
	})

	switch {
	case pass:
		r.Narrative = append(r.Narrative, fmt.Sprintf("Price and revenue move together as expected (%s).", actual))
	case math.IsNaN(corr):
		r.warn(CheckCorrelation, "correlation between local price and revenue is undefined")
		r.Narrative = append(r.Narrative, "Price/revenue correlation is undefined; review the generated data.")
	default:
		r.warn(CheckCorrelation, fmt.Sprintf("low correlation between local price and revenue (%s)", actual))
		r.Narrative = append(r.Narrative, fmt.Sprintf("Price/revenue correlation is low (%s); review the generated data.", actual))
	}
}

func (v *Validator) checkProfitIdentity(in Input, r *Report) {
	scale := make(map[time.Time]float64)
	for _, rec := range in.Records {
		scale[rec.Date] += math.Abs(rec.Revenue) + math.Abs(rec.OperationalCost) + math.Abs(rec.GeneralCost)
	}

	deltas := metrics.ProfitIdentityDelta(in.Aggregates, in.Records)
	worst := 0.0
	var failing []time.Time
	for _, a := range in.Aggregates {
		d := deltas[a.Date]
		if d > worst {
			worst = d
		}
		if d > v.tolerance*math.Max(1, scale[a.Date]) {
			failing = append(failing, a.Date)
		}
	}

	pass := len(failing) == 0
	r.Checks = append(r.Checks, Check{
		Name:      CheckProfitIdentity,
		Threshold: fmt.Sprintf("abs(aggregate - sum(field)) <= %g relative", v.tolerance),
		Actual:    fmt.Sprintf("max delta %.6g", worst),
		Pass:      pass,
	})
	if !pass {
		r.warn(CheckProfitIdentity, fmt.Sprintf("%d months where aggregate net profit differs from field sum, first %s",
			len(failing), domain.FormatDate(failing[0])))
	}
}

func (v *Validator) checkAllocationBalance(in Input, r *Report) {
	type sums struct{ admin, maint, logi float64 }
	byMonth := make(map[time.Time]*sums)
	for _, rec := range in.Records {
		s, ok := byMonth[rec.Date]
		if !ok {
			s = &sums{}
			byMonth[rec.Date] = s
		}
		s.admin += rec.AdminShare
		s.maint += rec.MaintenanceShare
		s.logi += rec.LogisticsShare
	}
	degenerate := make(map[time.Time]struct{}, len(in.Degenerate))
	for _, d := range in.Degenerate {
		degenerate[d.Date] = struct{}{}
	}

	var failing []time.Time
	worst := 0.0
	for _, c := range in.Costs {
		s, ok := byMonth[c.Date]
		if !ok {
			continue
		}
		want := [3]float64{c.AdminCost, c.MaintenanceCost, c.LogisticsCost}
		if _, deg := degenerate[c.Date]; deg {
			want = [3]float64{}
		}
		got := [3]float64{s.admin, s.maint, s.logi}
		bad := false
		for i := range want {
			d := math.Abs(got[i] - want[i])
			if d > worst {
				worst = d
			}
			if d > v.tolerance*math.Max(1, math.Abs(want[i])) {
				bad = true
			}
		}
		if bad {
			failing = append(failing, c.Date)
		}
	}
	sort.Slice(failing, func(i, j int) bool { return failing[i].Before(failing[j]) })

	pass := len(failing) == 0
	r.Checks = append(r.Checks, Check{
		Name:      CheckAllocationBalance,
		Threshold: fmt.Sprintf("sum(shares) = cost component within %g relative", v.tolerance),
		Actual:    fmt.Sprintf("max delta %.6g", worst),
		Pass:      pass,
	})
	if !pass {
		r.warn(CheckAllocationBalance, fmt.Sprintf("%d months where allocated shares do not sum to general cost, first %s",
			len(failing), domain.FormatDate(failing[0])))
	}
}

func (v *Validator) checkRowCoverage(in Input, r *Report) {
	type fieldMonth struct {
		field int64
		month time.Time
	}
	seen := make(map[fieldMonth]struct{}, len(in.Records))
	duplicates := 0
	for _, rec := range in.Records {
		k := fieldMonth{rec.FieldID, rec.Date}
		if _, dup := seen[k]; dup {
			duplicates++
			continue
		}
		seen[k] = struct{}{}
	}

	expected := in.FieldCount * in.Horizon.Len()
	pass := duplicates == 0 && len(in.Records) == expected
	r.Checks = append(r.Checks, Check{
		Name:      CheckRowCoverage,
		Threshold: fmt.Sprintf("%d rows (%d fields x %d months), no duplicates", expected, in.FieldCount, in.Horizon.Len()),
		Actual:    fmt.Sprintf("%d rows, %d duplicates", len(in.Records), duplicates),
		Pass:      pass,
	})
	if !pass {
		r.warn(CheckRowCoverage, fmt.Sprintf("expected %d rows, found %d with %d duplicates", expected, len(in.Records), duplicates))
	}
}

func (v *Validator) noteDegenerateMonths(in Input, r *Report) {
	if len(in.Degenerate) == 0 {
		return
	}
	total := 0.0
	for _, d := range in.Degenerate {
		total += d.Unallocated
	}
	r.warn("allocation_degenerate", fmt.Sprintf("%d months without production; %.2f of general cost left unallocated (first %s)",
		len(in.Degenerate), total, domain.FormatDate(in.Degenerate[0].Date)))
	r.Narrative = append(r.Narrative, fmt.Sprintf(
		"%d months had no production, so their general cost was not allocated to any field.", len(in.Degenerate)))
}

func (v *Validator) summarize(in Input, r *Report) {
	s := Summary{
		RecordCount:    len(in.Records),
		AggregateCount: len(in.Aggregates),
		Columns:        TableColumns(),
	}
	for i, rec := range in.Records {
		if i == 0 || rec.Date.Before(s.Start) {
			s.Start = rec.Date
		}
		if i == 0 || rec.Date.After(s.End) {
			s.End = rec.Date
		}
	}

	for _, col := range AggregateColumns {
		values := make([]float64, len(in.Aggregates))
		for i := range in.Aggregates {
			values[i] = col.Value(&in.Aggregates[i])
		}
		s.Aggregates = append(s.Aggregates, ColumnSummary{Column: col.Name, Stats: metrics.Describe(values)})
	}
	s.Profile = metrics.ComputeProfitProfile(in.Aggregates)
	r.Summary = s
}
