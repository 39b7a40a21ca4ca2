package domain

import "time"

// ProductionRecord is the simulated output of one field in one month.
// Records are never mutated after creation.
type ProductionRecord struct {
	FieldID          int64
	Date             time.Time
	ProductionVolume float64 // barrels produced in the month, >= 0
	LocalPrice       float64 // usd_price * fx_rate for the month
	Revenue          float64 // ProductionVolume * LocalPrice
}

// AllocatedCostRecord is one field's share of the month's general costs.
type AllocatedCostRecord struct {
	FieldID          int64
	Date             time.Time
	AdminShare       float64
	MaintenanceShare float64
	LogisticsShare   float64
}

// Total returns the sum of all allocated shares.
func (a AllocatedCostRecord) Total() float64 {
	return a.AdminShare + a.MaintenanceShare + a.LogisticsShare
}

// FinancialRecord extends a ProductionRecord with costs and profit.
type FinancialRecord struct {
	ProductionRecord

	VariableCost    float64 // volume * unit variable cost
	FixedCost       float64 // flat monthly charge, only when volume > 0
	OperationalCost float64 // VariableCost + FixedCost

	AdminShare       float64
	MaintenanceShare float64
	LogisticsShare   float64
	GeneralCost      float64 // sum of allocated shares

	NetProfit float64 // Revenue - OperationalCost - GeneralCost
}

// MonthlyAggregate is the company-wide total for one month.
type MonthlyAggregate struct {
	Date             time.Time
	ActiveFields     int // fields with volume > 0
	ProductionVolume float64
	Revenue          float64
	OperationalCost  float64
	GeneralCost      float64
	NetProfit        float64

	// UnallocatedGeneralCost is overhead that could not be attributed to any
	// field because nothing was produced. It is not part of NetProfit.
	UnallocatedGeneralCost float64
}
