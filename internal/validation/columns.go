package validation

import "oilfield-finance-lab/internal/domain"

// Column is a numeric column of the production/financial table.
type Column struct {
	Name  string
	Value func(r *domain.FinancialRecord) float64
}

// FinancialColumns lists every numeric column of the production/financial table.
var FinancialColumns = []Column{
	{"production_volume", func(r *domain.FinancialRecord) float64 { return r.ProductionVolume }},
	{"local_price", func(r *domain.FinancialRecord) float64 { return r.LocalPrice }},
	{"revenue", func(r *domain.FinancialRecord) float64 { return r.Revenue }},
	{"variable_cost", func(r *domain.FinancialRecord) float64 { return r.VariableCost }},
	{"fixed_cost", func(r *domain.FinancialRecord) float64 { return r.FixedCost }},
	{"operational_cost", func(r *domain.FinancialRecord) float64 { return r.OperationalCost }},
	{"admin_share", func(r *domain.FinancialRecord) float64 { return r.AdminShare }},
	{"maintenance_share", func(r *domain.FinancialRecord) float64 { return r.MaintenanceShare }},
	{"logistics_share", func(r *domain.FinancialRecord) float64 { return r.LogisticsShare }},
	{"general_cost", func(r *domain.FinancialRecord) float64 { return r.GeneralCost }},
	{"net_profit", func(r *domain.FinancialRecord) float64 { return r.NetProfit }},
}

// AggregateColumn is a numeric column of the monthly aggregate table.
type AggregateColumn struct {
	Name  string
	Value func(a *domain.MonthlyAggregate) float64
}

// AggregateColumns lists every numeric column of the monthly aggregate table.
var AggregateColumns = []AggregateColumn{
	{"active_fields", func(a *domain.MonthlyAggregate) float64 { return float64(a.ActiveFields) }},
	{"production_volume", func(a *domain.MonthlyAggregate) float64 { return a.ProductionVolume }},
	{"revenue", func(a *domain.MonthlyAggregate) float64 { return a.Revenue }},
	{"operational_cost", func(a *domain.MonthlyAggregate) float64 { return a.OperationalCost }},
	{"general_cost", func(a *domain.MonthlyAggregate) float64 { return a.GeneralCost }},
	{"net_profit", func(a *domain.MonthlyAggregate) float64 { return a.NetProfit }},
	{"unallocated_general_cost", func(a *domain.MonthlyAggregate) float64 { return a.UnallocatedGeneralCost }},
}

// DefaultKeyColumns are checked for missing values unless overridden.
var DefaultKeyColumns = []string{
	"production_volume",
	"local_price",
	"revenue",
	"operational_cost",
	"general_cost",
	"net_profit",
}

// TableColumns returns the full column list of the production/financial table.
func TableColumns() []string {
	cols := []string{"field_id", "date"}
	for _, c := range FinancialColumns {
		cols = append(cols, c.Name)
	}
	return cols
}

func financialColumn(name string) (Column, bool) {
	for _, c := range FinancialColumns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
