package reporting

import (
	"fmt"
	"strings"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder
	v := r.Validation

	// Header
	sb.WriteString("# Validation Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Seed: %d | Horizon: %s | Fields: %d | Data version: %s\n\n",
		r.RunID, r.Seed, r.Horizon, r.FieldCount, r.DataVersion))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Records | %d |\n", v.Summary.RecordCount))
	sb.WriteString(fmt.Sprintf("| Aggregate Months | %d |\n", v.Summary.AggregateCount))
	if v.Summary.RecordCount > 0 {
		sb.WriteString(fmt.Sprintf("| Period | %s to %s |\n",
			domain.FormatDate(v.Summary.Start), domain.FormatDate(v.Summary.End)))
	}
	sb.WriteString(fmt.Sprintf("| Columns | %s |\n", strings.Join(v.Summary.Columns, ", ")))
	sb.WriteString("\n")

	// Checks
	sb.WriteString("## Checks\n\n")
	sb.WriteString("| Check | Threshold | Actual | Status |\n")
	sb.WriteString("|-------|-----------|--------|--------|\n")
	for _, c := range v.Checks {
		status := "FAIL"
		if c.Pass {
			status = "PASS"
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escapeCell(c.Name), escapeCell(c.Threshold), escapeCell(c.Actual), status))
	}
	sb.WriteString("\n")
	if v.Passed() {
		sb.WriteString("**All checks passed.**\n\n")
	} else {
		sb.WriteString("**Some checks failed.** See warnings below.\n\n")
	}

	// Date coverage
	if v.MissingDateCount > 0 {
		sb.WriteString("### Missing Dates\n\n")
		sb.WriteString(fmt.Sprintf("%d months missing. First:\n\n", v.MissingDateCount))
		for _, d := range v.MissingDates {
			sb.WriteString(fmt.Sprintf("- %s\n", domain.FormatDate(d)))
		}
		sb.WriteString("\n")
	}

	// Missing values
	sb.WriteString("### Missing Values\n\n")
	sb.WriteString("| Column | Missing |\n")
	sb.WriteString("|--------|---------|\n")
	for _, mv := range v.MissingValues {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", escapeCell(mv.Column), mv.Count))
	}
	sb.WriteString("\n")

	// Warnings
	sb.WriteString("## Warnings\n\n")
	if len(v.Warnings) > 0 {
		for _, w := range v.Warnings {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", w.Check, w.Message))
		}
	} else {
		sb.WriteString("No warnings.\n")
	}
	sb.WriteString("\n")

	// Aggregate statistics
	sb.WriteString("## Monthly Aggregate Statistics\n\n")
	if len(v.Summary.Aggregates) > 0 && v.Summary.AggregateCount > 0 {
		sb.WriteString("| Column | Count | Mean | Std | Min | 25% | 50% | 75% | Max |\n")
		sb.WriteString("|--------|-------|------|-----|-----|-----|-----|-----|-----|\n")
		for _, cs := range v.Summary.Aggregates {
			s := cs.Stats
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
				cs.Column, s.Count,
				formatStat(s.Mean), formatStat(s.Stddev), formatStat(s.Min),
				formatStat(s.P25), formatStat(s.Median), formatStat(s.P75), formatStat(s.Max)))
		}
	} else {
		sb.WriteString("No aggregates available.\n")
	}
	sb.WriteString("\n")

	// Profit profile
	p := v.Summary.Profile
	sb.WriteString("## Profit Profile\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Cumulative Net Profit | %s |\n", formatMoney(p.CumulativeNetProfit)))
	sb.WriteString(fmt.Sprintf("| Loss Months | %d |\n", p.LossMonths))
	sb.WriteString(fmt.Sprintf("| Max Consecutive Loss Months | %d |\n", p.MaxConsecutiveLossMonths))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | %s |\n", formatMoney(p.MaxDrawdown)))
	sb.WriteString("\n")

	// Narrative
	sb.WriteString("## Interpretation\n\n")
	for _, line := range v.Narrative {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// escapeCell keeps free text inside a single table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
