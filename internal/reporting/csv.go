package reporting

import (
	"strconv"
	"strings"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/validation"
)

// Output file names.
const (
	FinancialsFile = "production_financials.csv"
	AggregatesFile = "monthly_aggregates.csv"
	ReportFile     = "VALIDATION_REPORT.md"
)

// RenderFinancialsCSV renders one row per (field, month) in input order.
func RenderFinancialsCSV(records []domain.FinancialRecord) string {
	var sb strings.Builder

	sb.WriteString(strings.Join(validation.TableColumns(), ","))
	sb.WriteString("\n")

	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.FieldID, 10),
			domain.FormatDate(r.Date),
			formatVolume(r.ProductionVolume),
			formatPrice(r.LocalPrice),
			formatMoney(r.Revenue),
			formatMoney(r.VariableCost),
			formatMoney(r.FixedCost),
			formatMoney(r.OperationalCost),
			formatMoney(r.AdminShare),
			formatMoney(r.MaintenanceShare),
			formatMoney(r.LogisticsShare),
			formatMoney(r.GeneralCost),
			formatMoney(r.NetProfit),
		}
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}

	return sb.String()
}

// AggregateHeader is the column list of monthly_aggregates.csv.
func AggregateHeader() []string {
	cols := []string{"date"}
	for _, c := range validation.AggregateColumns {
		cols = append(cols, c.Name)
	}
	return cols
}

// RenderAggregatesCSV renders one row per month in input order (date ASC
// when produced by consolidation).
func RenderAggregatesCSV(aggregates []domain.MonthlyAggregate) string {
	var sb strings.Builder

	sb.WriteString(strings.Join(AggregateHeader(), ","))
	sb.WriteString("\n")

	for _, a := range aggregates {
		row := []string{
			domain.FormatDate(a.Date),
			strconv.Itoa(a.ActiveFields),
			formatVolume(a.ProductionVolume),
			formatMoney(a.Revenue),
			formatMoney(a.OperationalCost),
			formatMoney(a.GeneralCost),
			formatMoney(a.NetProfit),
			formatMoney(a.UnallocatedGeneralCost),
		}
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}

	return sb.String()
}
