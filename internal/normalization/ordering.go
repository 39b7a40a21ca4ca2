package normalization

import (
	"sort"

	"oilfield-finance-lab/internal/domain"
)

// SortFields orders fields by id ASC.
func SortFields(fields []domain.Field) {
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].ID < fields[j].ID
	})
}

// SortProductionRecords orders records by (date ASC, field_id ASC).
func SortProductionRecords(records []domain.ProductionRecord) {
	sort.Slice(records, func(i, j int) bool {
		return compareFieldMonth(records[i].Date.Unix(), records[i].FieldID,
			records[j].Date.Unix(), records[j].FieldID) < 0
	})
}

// SortFinancialRecords orders records by (date ASC, field_id ASC).
func SortFinancialRecords(records []domain.FinancialRecord) {
	sort.Slice(records, func(i, j int) bool {
		return compareFieldMonth(records[i].Date.Unix(), records[i].FieldID,
			records[j].Date.Unix(), records[j].FieldID) < 0
	})
}

// compareFieldMonth returns:
//   - negative if a < b
//   - zero if a == b
//   - positive if a > b
func compareFieldMonth(aDate, aField, bDate, bField int64) int {
	if aDate != bDate {
		if aDate < bDate {
			return -1
		}
		return 1
	}
	if aField != bField {
		if aField < bField {
			return -1
		}
		return 1
	}
	return 0
}
