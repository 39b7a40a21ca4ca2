package allocation

import (
	"errors"
	"fmt"
	"math"
)

// Default operational cost parameters, in local currency.
const (
	DefaultUnitVariableCost  = 50.0   // per barrel
	DefaultFixedCostPerField = 5000.0 // per producing field per month
)

// ErrInvalidPolicy is returned when a CostPolicy has negative or non-finite values.
var ErrInvalidPolicy = errors.New("invalid cost policy")

// CostPolicy prices the operational cost of one field-month.
type CostPolicy struct {
	UnitVariableCost  float64
	FixedCostPerField float64
}

// DefaultCostPolicy returns the 50/bbl + 5000/month policy.
func DefaultCostPolicy() CostPolicy {
	return CostPolicy{
		UnitVariableCost:  DefaultUnitVariableCost,
		FixedCostPerField: DefaultFixedCostPerField,
	}
}

// Validate checks that both parameters are finite and non-negative.
func (p CostPolicy) Validate() error {
	params := []struct {
		name  string
		value float64
	}{
		{"unit_variable_cost", p.UnitVariableCost},
		{"fixed_cost_per_field", p.FixedCostPerField},
	}
	for _, param := range params {
		if math.IsNaN(param.value) || math.IsInf(param.value, 0) || param.value < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidPolicy, param.name, param.value)
		}
	}
	return nil
}

// VariableCost returns volume * unit cost.
func (p CostPolicy) VariableCost(volume float64) float64 {
	return volume * p.UnitVariableCost
}

// FixedCost returns the monthly fixed charge, only for producing fields.
func (p CostPolicy) FixedCost(volume float64) float64 {
	if volume > 0 {
		return p.FixedCostPerField
	}
	return 0
}
