package allocation

import (
	"fmt"
	"math"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// DegenerateMonth is a month with zero total production. Its general cost
// could not be attributed to any field.
type DegenerateMonth struct {
	Date        time.Time
	Unallocated float64
}

// AllocateMonth splits one month's general cost across fields in proportion
// to production volume: share_c = volume / total * cost_c.
//
// When total volume is zero every share is zero and degenerate is true;
// no division is performed. Records dated outside cost.Date are rejected.
// Output order follows the input order.
func AllocateMonth(records []domain.ProductionRecord, cost domain.GeneralCostPoint) ([]domain.AllocatedCostRecord, bool, error) {
	var total float64
	for _, r := range records {
		if !r.Date.Equal(cost.Date) {
			return nil, false, &domain.DataContractError{
				Kind:    domain.KindUnexpectedDate,
				Table:   domain.TableProduction,
				Date:    r.Date,
				FieldID: r.FieldID,
				Detail:  fmt.Sprintf("record allocated against cost month %s", domain.FormatDate(cost.Date)),
			}
		}
		if math.IsNaN(r.ProductionVolume) || math.IsInf(r.ProductionVolume, 0) || r.ProductionVolume < 0 {
			return nil, false, &domain.DataContractError{
				Kind:    domain.KindInvalidValue,
				Table:   domain.TableProduction,
				Column:  "production_volume",
				Date:    r.Date,
				FieldID: r.FieldID,
				Detail:  fmt.Sprintf("volume must be finite and >= 0, got %v", r.ProductionVolume),
			}
		}
		total += r.ProductionVolume
	}

	out := make([]domain.AllocatedCostRecord, len(records))
	degenerate := total == 0
	for i, r := range records {
		out[i] = domain.AllocatedCostRecord{FieldID: r.FieldID, Date: r.Date}
		if degenerate {
			continue
		}
		share := r.ProductionVolume / total
		out[i].AdminShare = share * cost.AdminCost
		out[i].MaintenanceShare = share * cost.MaintenanceCost
		out[i].LogisticsShare = share * cost.LogisticsCost
	}
	return out, degenerate, nil
}
