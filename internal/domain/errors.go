package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDataContract matches every DataContractError via errors.Is.
var ErrDataContract = errors.New("data contract violation")

// ContractKind classifies a data contract violation.
type ContractKind string

// Contract violation kinds.
const (
	KindMissingDate    ContractKind = "missing_date"
	KindDuplicateDate  ContractKind = "duplicate_date"
	KindUnexpectedDate ContractKind = "unexpected_date"
	KindMissingPrice   ContractKind = "missing_price"
	KindMissingCost    ContractKind = "missing_cost"
	KindUnknownField   ContractKind = "unknown_field"
	KindDuplicateField ContractKind = "duplicate_field"
	KindInvalidValue   ContractKind = "invalid_value"
	KindMissingColumn  ContractKind = "missing_column"
)

// Table names used in error messages and schemas.
const (
	TableFields      = "fields"
	TableOilPrice    = "oil_price"
	TableFXRate      = "fx_rate"
	TableGeneralCost = "general_cost"
	TableProduction  = "production"
)

// DataContractError is a fatal input violation. The run aborts rather than
// producing partial output.
type DataContractError struct {
	Kind    ContractKind
	Table   string
	Column  string
	Date    time.Time // zero if not month-specific
	FieldID int64     // zero if not field-specific
	Detail  string
}

// Error names the offending table, month, field and column.
func (e *DataContractError) Error() string {
	parts := []string{string(e.Kind)}
	if e.Table != "" {
		parts = append(parts, "table="+e.Table)
	}
	if !e.Date.IsZero() {
		parts = append(parts, "date="+FormatDate(e.Date))
	}
	if e.FieldID != 0 {
		parts = append(parts, fmt.Sprintf("field=%d", e.FieldID))
	}
	if e.Column != "" {
		parts = append(parts, "column="+e.Column)
	}
	msg := "data contract: " + strings.Join(parts, " ")
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap lets errors.Is(err, ErrDataContract) succeed.
func (e *DataContractError) Unwrap() error {
	return ErrDataContract
}
