package ingestion

import (
	"strings"

	"oilfield-finance-lab/internal/domain"
)

// Schema declares the required columns of one input table.
// Extra columns are ignored.
type Schema struct {
	Table    string
	FileName string
	Columns  []string
}

// Static input schemas.
var (
	FieldsSchema = Schema{
		Table:    domain.TableFields,
		FileName: "fields.csv",
		Columns:  []string{"id", "name", "region", "oil_type", "capacity", "start_date"},
	}
	OilPriceSchema = Schema{
		Table:    domain.TableOilPrice,
		FileName: "oil_price.csv",
		Columns:  []string{"date", "usd_price"},
	}
	FXRateSchema = Schema{
		Table:    domain.TableFXRate,
		FileName: "fx_rate.csv",
		Columns:  []string{"date", "fx_rate"},
	}
	GeneralCostSchema = Schema{
		Table:    domain.TableGeneralCost,
		FileName: "general_cost.csv",
		Columns:  []string{"date", "admin_cost", "maintenance_cost", "logistics_cost"},
	}
)

// Bind checks header against the schema and returns the column positions
// in schema order. A missing column is a DataContractError.
func (s Schema) Bind(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	idx := make([]int, len(s.Columns))
	for i, col := range s.Columns {
		p, ok := pos[col]
		if !ok {
			return nil, &domain.DataContractError{
				Kind:   domain.KindMissingColumn,
				Table:  s.Table,
				Column: col,
				Detail: "required column not present in header",
			}
		}
		idx[i] = p
	}
	return idx, nil
}

// Tables is the raw content of every input table, as loaded.
// Nothing is validated beyond column presence and value parsing.
type Tables struct {
	Fields       []domain.Field
	USDPrices    []domain.USDPricePoint
	FXRates      []domain.FXRatePoint
	GeneralCosts []domain.GeneralCostPoint
}
