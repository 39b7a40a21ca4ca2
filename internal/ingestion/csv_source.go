package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// CSVSource reads the input tables from CSV files in a directory.
type CSVSource struct {
	dir string
}

// NewCSVSource creates a source reading <dir>/fields.csv, oil_price.csv,
// fx_rate.csv and general_cost.csv.
func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

// Load reads and parses all four tables.
func (s *CSVSource) Load(ctx context.Context) (*Tables, error) {
	var t Tables
	var err error

	if t.Fields, err = loadFile(ctx, s.dir, FieldsSchema, parseField); err != nil {
		return nil, err
	}
	if t.USDPrices, err = loadFile(ctx, s.dir, OilPriceSchema, parseUSDPrice); err != nil {
		return nil, err
	}
	if t.FXRates, err = loadFile(ctx, s.dir, FXRateSchema, parseFXRate); err != nil {
		return nil, err
	}
	if t.GeneralCosts, err = loadFile(ctx, s.dir, GeneralCostSchema, parseGeneralCost); err != nil {
		return nil, err
	}
	return &t, nil
}

// RowParser converts one record (already projected to schema order) into T.
type RowParser[T any] func(schema Schema, values []string) (T, error)

func loadFile[T any](ctx context.Context, dir string, schema Schema, parse RowParser[T]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, schema.FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadTable(f, schema, parse)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// ReadTable parses a CSV stream against schema.
func ReadTable[T any](r io.Reader, schema Schema, parse RowParser[T]) ([]T, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.DataContractError{
			Kind:   domain.KindMissingColumn,
			Table:  schema.Table,
			Detail: "empty file, no header",
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := schema.Bind(header)
	if err != nil {
		return nil, err
	}

	var out []T
	projected := make([]string, len(idx))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for i, p := range idx {
			projected[i] = strings.TrimSpace(record[p])
		}
		row, err := parse(schema, projected)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func invalid(schema Schema, column, value string, date time.Time, fieldID int64, reason string) error {
	return &domain.DataContractError{
		Kind:    domain.KindInvalidValue,
		Table:   schema.Table,
		Column:  column,
		Date:    date,
		FieldID: fieldID,
		Detail:  fmt.Sprintf("%q: %s", value, reason),
	}
}

func parseDate(schema Schema, value string) (time.Time, error) {
	d, err := domain.ParseMonth(value)
	if err != nil {
		return time.Time{}, invalid(schema, "date", value, time.Time{}, 0, "not a first-of-month date")
	}
	return d, nil
}

// parseNumber parses a finite float. NaN and Inf are rejected at the boundary.
func parseNumber(schema Schema, column, value string, date time.Time, fieldID int64) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, invalid(schema, column, value, date, fieldID, "not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(schema, column, value, date, fieldID, "not finite")
	}
	return v, nil
}

func parseField(schema Schema, v []string) (domain.Field, error) {
	id, err := strconv.ParseInt(v[0], 10, 64)
	if err != nil {
		return domain.Field{}, invalid(schema, "id", v[0], time.Time{}, 0, "not an integer")
	}
	capacity, err := parseNumber(schema, "capacity", v[4], time.Time{}, id)
	if err != nil {
		return domain.Field{}, err
	}
	start, err := domain.ParseMonth(v[5])
	if err != nil {
		return domain.Field{}, invalid(schema, "start_date", v[5], time.Time{}, id, "not a first-of-month date")
	}
	return domain.Field{
		ID:        id,
		Name:      v[1],
		Region:    domain.Region(strings.ToUpper(v[2])),
		OilType:   domain.OilType(strings.ToLower(v[3])),
		Capacity:  capacity,
		StartDate: start,
	}, nil
}

func parseUSDPrice(schema Schema, v []string) (domain.USDPricePoint, error) {
	d, err := parseDate(schema, v[0])
	if err != nil {
		return domain.USDPricePoint{}, err
	}
	price, err := parseNumber(schema, "usd_price", v[1], d, 0)
	if err != nil {
		return domain.USDPricePoint{}, err
	}
	return domain.USDPricePoint{Date: d, USDPrice: price}, nil
}

func parseFXRate(schema Schema, v []string) (domain.FXRatePoint, error) {
	d, err := parseDate(schema, v[0])
	if err != nil {
		return domain.FXRatePoint{}, err
	}
	rate, err := parseNumber(schema, "fx_rate", v[1], d, 0)
	if err != nil {
		return domain.FXRatePoint{}, err
	}
	return domain.FXRatePoint{Date: d, FXRate: rate}, nil
}

func parseGeneralCost(schema Schema, v []string) (domain.GeneralCostPoint, error) {
	d, err := parseDate(schema, v[0])
	if err != nil {
		return domain.GeneralCostPoint{}, err
	}
	p := domain.GeneralCostPoint{Date: d}
	if p.AdminCost, err = parseNumber(schema, "admin_cost", v[1], d, 0); err != nil {
		return p, err
	}
	if p.MaintenanceCost, err = parseNumber(schema, "maintenance_cost", v[2], d, 0); err != nil {
		return p, err
	}
	if p.LogisticsCost, err = parseNumber(schema, "logistics_cost", v[3], d, 0); err != nil {
		return p, err
	}
	return p, nil
}
