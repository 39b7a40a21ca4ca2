package lookup

import (
	"errors"
	"sort"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// Errors returned by index constructors.
var (
	ErrNoPriceData = errors.New("no price data available")
	ErrNoCostData  = errors.New("no general cost data available")
)

// PriceIndex resolves the joined price/FX point for an exact month.
// There is no nearest-month fallback: a missing month is a data contract violation.
type PriceIndex struct {
	byMonth map[time.Time]domain.PricePoint
	points  []domain.PricePoint
}

// NewPriceIndex builds an index over joined price points.
// Duplicate months are rejected.
func NewPriceIndex(points []domain.PricePoint) (*PriceIndex, error) {
	if len(points) == 0 {
		return nil, ErrNoPriceData
	}

	idx := &PriceIndex{
		byMonth: make(map[time.Time]domain.PricePoint, len(points)),
		points:  make([]domain.PricePoint, len(points)),
	}
	copy(idx.points, points)
	sort.Slice(idx.points, func(i, j int) bool { return idx.points[i].Date.Before(idx.points[j].Date) })

	for _, p := range idx.points {
		key := domain.MonthStart(p.Date)
		if _, ok := idx.byMonth[key]; ok {
			return nil, &domain.DataContractError{
				Kind:   domain.KindDuplicateDate,
				Table:  domain.TableOilPrice,
				Date:   key,
				Detail: "price month appears more than once",
			}
		}
		idx.byMonth[key] = p
	}
	return idx, nil
}

// At returns the price point for month.
// Returns a DataContractError (missing_price) naming the month if absent.
func (idx *PriceIndex) At(month time.Time) (domain.PricePoint, error) {
	key := domain.MonthStart(month)
	p, ok := idx.byMonth[key]
	if !ok {
		return domain.PricePoint{}, &domain.DataContractError{
			Kind:   domain.KindMissingPrice,
			Table:  domain.TableOilPrice,
			Date:   key,
			Detail: "no price/fx point for month",
		}
	}
	return p, nil
}

// LocalPriceAt returns usd_price * fx_rate for month.
func (idx *PriceIndex) LocalPriceAt(month time.Time) (float64, error) {
	p, err := idx.At(month)
	if err != nil {
		return 0, err
	}
	return p.LocalPrice(), nil
}

// Points returns a copy of the indexed points, date ascending.
func (idx *PriceIndex) Points() []domain.PricePoint {
	out := make([]domain.PricePoint, len(idx.points))
	copy(out, idx.points)
	return out
}

// Len returns the number of indexed months.
func (idx *PriceIndex) Len() int {
	return len(idx.points)
}

// CostIndex resolves the general cost point for an exact month.
type CostIndex struct {
	byMonth map[time.Time]domain.GeneralCostPoint
	points  []domain.GeneralCostPoint
}

// NewCostIndex builds an index over general cost points.
func NewCostIndex(points []domain.GeneralCostPoint) (*CostIndex, error) {
	if len(points) == 0 {
		return nil, ErrNoCostData
	}

	idx := &CostIndex{
		byMonth: make(map[time.Time]domain.GeneralCostPoint, len(points)),
		points:  make([]domain.GeneralCostPoint, len(points)),
	}
	copy(idx.points, points)
	sort.Slice(idx.points, func(i, j int) bool { return idx.points[i].Date.Before(idx.points[j].Date) })

	for _, c := range idx.points {
		key := domain.MonthStart(c.Date)
		if _, ok := idx.byMonth[key]; ok {
			return nil, &domain.DataContractError{
				Kind:   domain.KindDuplicateDate,
				Table:  domain.TableGeneralCost,
				Date:   key,
				Detail: "cost month appears more than once",
			}
		}
		idx.byMonth[key] = c
	}
	return idx, nil
}

// At returns the general cost point for month.
// Returns a DataContractError (missing_cost) if absent.
func (idx *CostIndex) At(month time.Time) (domain.GeneralCostPoint, error) {
	key := domain.MonthStart(month)
	c, ok := idx.byMonth[key]
	if !ok {
		return domain.GeneralCostPoint{}, &domain.DataContractError{
			Kind:   domain.KindMissingCost,
			Table:  domain.TableGeneralCost,
			Date:   key,
			Detail: "no general cost point for month",
		}
	}
	return c, nil
}

// Points returns a copy of the indexed points, date ascending.
func (idx *CostIndex) Points() []domain.GeneralCostPoint {
	out := make([]domain.GeneralCostPoint, len(idx.points))
	copy(out, idx.points)
	return out
}
