package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"oilfield-finance-lab/internal/domain"
)

// WriteTables writes all four tables as CSV into dir, one file per schema.
func WriteTables(dir string, t *Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	writers := []struct {
		schema Schema
		write  func(io.Writer) error
	}{
		{FieldsSchema, func(w io.Writer) error { return WriteFields(w, t.Fields) }},
		{OilPriceSchema, func(w io.Writer) error { return WriteUSDPrices(w, t.USDPrices) }},
		{FXRateSchema, func(w io.Writer) error { return WriteFXRates(w, t.FXRates) }},
		{GeneralCostSchema, func(w io.Writer) error { return WriteGeneralCosts(w, t.GeneralCosts) }},
	}

	for _, w := range writers {
		path := filepath.Join(dir, w.schema.FileName)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := w.write(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeRows(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteFields writes the field registry in FieldsSchema column order.
func WriteFields(w io.Writer, fields []domain.Field) error {
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			string(f.Region),
			string(f.OilType),
			num(f.Capacity),
			domain.FormatDate(f.StartDate),
		}
	}
	return writeRows(w, FieldsSchema.Columns, rows)
}

// WriteUSDPrices writes the oil price series.
func WriteUSDPrices(w io.Writer, points []domain.USDPricePoint) error {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{domain.FormatDate(p.Date), num(p.USDPrice)}
	}
	return writeRows(w, OilPriceSchema.Columns, rows)
}

// WriteFXRates writes the FX series.
func WriteFXRates(w io.Writer, points []domain.FXRatePoint) error {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{domain.FormatDate(p.Date), num(p.FXRate)}
	}
	return writeRows(w, FXRateSchema.Columns, rows)
}

// WriteGeneralCosts writes the general cost series.
func WriteGeneralCosts(w io.Writer, points []domain.GeneralCostPoint) error {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			domain.FormatDate(p.Date),
			num(p.AdminCost),
			num(p.MaintenanceCost),
			num(p.LogisticsCost),
		}
	}
	return writeRows(w, GeneralCostSchema.Columns, rows)
}
