package allocation

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/lookup"
)

// Engine turns production records into financial records.
type Engine struct {
	policy CostPolicy
	logger *zap.Logger
}

// Options contains configuration for creating an Engine.
type Options struct {
	Policy CostPolicy
	Logger *zap.Logger
}

// NewEngine creates an allocation engine. The policy is validated.
func NewEngine(opts Options) (*Engine, error) {
	if err := opts.Policy.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{policy: opts.Policy, logger: logger}, nil
}

// Result holds the engine output.
type Result struct {
	Records          []domain.FinancialRecord // sorted by (date, field_id)
	DegenerateMonths []DegenerateMonth        // date ASC
}

// Apply costs every production record.
// Steps:
//  1. Group production by month, rejecting duplicate (field, month) rows
//  2. Look up the month's general cost (missing month fails the run)
//  3. Allocate general cost by volume share
//  4. Add operational cost and derive net profit
//
// The input slice is not modified.
func (e *Engine) Apply(production []domain.ProductionRecord, costs *lookup.CostIndex) (*Result, error) {
	if costs == nil {
		return nil, fmt.Errorf("apply costs: %w", lookup.ErrNoCostData)
	}

	// 1. Group by month.
	byMonth := make(map[time.Time][]domain.ProductionRecord)
	type fieldMonth struct {
		field int64
		month time.Time
	}
	seen := make(map[fieldMonth]struct{}, len(production))
	for _, r := range production {
		k := fieldMonth{r.FieldID, r.Date}
		if _, dup := seen[k]; dup {
			return nil, &domain.DataContractError{
				Kind:    domain.KindDuplicateField,
				Table:   domain.TableProduction,
				Date:    r.Date,
				FieldID: r.FieldID,
				Detail:  "more than one production record for field-month",
			}
		}
		seen[k] = struct{}{}
		byMonth[r.Date] = append(byMonth[r.Date], r)
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	result := &Result{Records: make([]domain.FinancialRecord, 0, len(production))}
	for _, m := range months {
		records := byMonth[m]
		sort.Slice(records, func(i, j int) bool { return records[i].FieldID < records[j].FieldID })

		// 2. Cost lookup.
		cost, err := costs.At(m)
		if err != nil {
			return nil, err
		}

		// 3. Allocation.
		shares, degenerate, err := AllocateMonth(records, cost)
		if err != nil {
			return nil, err
		}
		if degenerate {
			result.DegenerateMonths = append(result.DegenerateMonths, DegenerateMonth{Date: m, Unallocated: cost.Total()})
			e.logger.Warn("no production to allocate general cost",
				zap.String("month", domain.FormatDate(m)),
				zap.Float64("unallocated", cost.Total()),
			)
		}

		// 4. Operational cost and profit.
		for i, r := range records {
			result.Records = append(result.Records, e.financialRecord(r, shares[i]))
		}
	}

	e.logger.Debug("costs allocated",
		zap.Int("records", len(result.Records)),
		zap.Int("months", len(months)),
		zap.Int("degenerate_months", len(result.DegenerateMonths)),
	)
	return result, nil
}

func (e *Engine) financialRecord(r domain.ProductionRecord, share domain.AllocatedCostRecord) domain.FinancialRecord {
	variable := e.policy.VariableCost(r.ProductionVolume)
	fixed := e.policy.FixedCost(r.ProductionVolume)
	operational := variable + fixed
	general := share.Total()

	return domain.FinancialRecord{
		ProductionRecord: r,
		VariableCost:     variable,
		FixedCost:        fixed,
		OperationalCost:  operational,
		AdminShare:       share.AdminShare,
		MaintenanceShare: share.MaintenanceShare,
		LogisticsShare:   share.LogisticsShare,
		GeneralCost:      general,
		NetProfit:        r.Revenue - operational - general,
	}
}
