package domain

import (
	"fmt"
	"time"
)

// Region is the fixed set of state codes a field can be located in.
type Region string

// Region constants.
const (
	RegionRJ Region = "RJ"
	RegionES Region = "ES"
	RegionBA Region = "BA"
	RegionRN Region = "RN"
)

// Regions lists all valid regions in a stable order.
var Regions = []Region{RegionRJ, RegionES, RegionBA, RegionRN}

// Valid reports whether r is a known region code.
func (r Region) Valid() bool {
	switch r {
	case RegionRJ, RegionES, RegionBA, RegionRN:
		return true
	default:
		return false
	}
}

// OilType classifies crude by density.
type OilType string

// OilType constants.
const (
	OilTypeLight  OilType = "light"
	OilTypeMedium OilType = "medium"
	OilTypeHeavy  OilType = "heavy"
)

// OilTypes lists all valid oil types in a stable order.
var OilTypes = []OilType{OilTypeLight, OilTypeMedium, OilTypeHeavy}

// Valid reports whether t is a known oil type.
func (t OilType) Valid() bool {
	switch t {
	case OilTypeLight, OilTypeMedium, OilTypeHeavy:
		return true
	default:
		return false
	}
}

// Field is a producing asset from the field registry.
// Fields are immutable once loaded.
type Field struct {
	ID        int64     // unique field identifier
	Name      string    // display name
	Region    Region    // location code
	OilType   OilType   // light | medium | heavy
	Capacity  float64   // nameplate capacity in barrels/day
	StartDate time.Time // first month of production eligibility
}

// Validate checks static field invariants.
func (f *Field) Validate() error {
	if f.ID <= 0 {
		return &DataContractError{Kind: KindInvalidValue, Table: TableFields, Column: "id", FieldID: f.ID,
			Detail: "id must be positive"}
	}
	if !f.Region.Valid() {
		return &DataContractError{Kind: KindInvalidValue, Table: TableFields, Column: "region", FieldID: f.ID,
			Detail: fmt.Sprintf("unknown region %q", f.Region)}
	}
	if !f.OilType.Valid() {
		return &DataContractError{Kind: KindInvalidValue, Table: TableFields, Column: "oil_type", FieldID: f.ID,
			Detail: fmt.Sprintf("unknown oil type %q", f.OilType)}
	}
	if !(f.Capacity > 0) {
		return &DataContractError{Kind: KindInvalidValue, Table: TableFields, Column: "capacity", FieldID: f.ID,
			Detail: fmt.Sprintf("capacity must be positive, got %v", f.Capacity)}
	}
	if !IsMonthStart(f.StartDate) {
		return &DataContractError{Kind: KindInvalidValue, Table: TableFields, Column: "start_date", FieldID: f.ID,
			Detail: "start_date must be the first day of a month"}
	}
	return nil
}
