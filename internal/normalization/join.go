package normalization

import (
	"sort"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// JoinPriceFX inner-joins the price and FX series on date.
// Every date must be present in both series; a date in only one of them
// is a DataContractError naming the table it is missing from.
func JoinPriceFX(prices []domain.USDPricePoint, fx []domain.FXRatePoint) ([]domain.PricePoint, error) {
	fxByMonth := make(map[time.Time]float64, len(fx))
	for _, r := range fx {
		if _, dup := fxByMonth[r.Date]; dup {
			return nil, &domain.DataContractError{
				Kind:  domain.KindDuplicateDate,
				Table: domain.TableFXRate,
				Date:  r.Date,
			}
		}
		fxByMonth[r.Date] = r.FXRate
	}

	joined := make([]domain.PricePoint, 0, len(prices))
	seen := make(map[time.Time]struct{}, len(prices))
	for _, p := range prices {
		if _, dup := seen[p.Date]; dup {
			return nil, &domain.DataContractError{
				Kind:  domain.KindDuplicateDate,
				Table: domain.TableOilPrice,
				Date:  p.Date,
			}
		}
		seen[p.Date] = struct{}{}

		rate, ok := fxByMonth[p.Date]
		if !ok {
			return nil, &domain.DataContractError{
				Kind:   domain.KindMissingDate,
				Table:  domain.TableFXRate,
				Date:   p.Date,
				Detail: "price month has no fx rate",
			}
		}
		joined = append(joined, domain.PricePoint{Date: p.Date, USDPrice: p.USDPrice, FXRate: rate})
	}

	for _, r := range fx {
		if _, ok := seen[r.Date]; !ok {
			return nil, &domain.DataContractError{
				Kind:   domain.KindMissingDate,
				Table:  domain.TableOilPrice,
				Date:   r.Date,
				Detail: "fx month has no oil price",
			}
		}
	}

	sort.Slice(joined, func(i, j int) bool { return joined[i].Date.Before(joined[j].Date) })
	return joined, nil
}
