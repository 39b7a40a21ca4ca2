package clickhouse

import (
	"context"
	"fmt"
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

// MergeTree does not enforce uniqueness, so every store checks the batch
// against itself and against existing rows before inserting.

// checkBatchDates rejects intra-batch duplicates, non-month-start dates and
// dates already present in table. Returns the batch min and max dates.
func checkBatchDates(ctx context.Context, conn *Conn, table string, dates []time.Time) error {
	seen := make(map[time.Time]struct{}, len(dates))
	minDate, maxDate := dates[0], dates[0]
	for _, d := range dates {
		if !domain.IsMonthStart(d) {
			return storage.ErrInvalidInput
		}
		if _, exists := seen[d]; exists {
			return storage.ErrDuplicateKey
		}
		seen[d] = struct{}{}
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	existing, err := existingDates(ctx, conn, table, minDate, maxDate)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	for _, d := range existing {
		if _, clash := seen[d]; clash {
			return storage.ErrDuplicateKey
		}
	}
	return nil
}

func existingDates(ctx context.Context, conn *Conn, table string, start, end time.Time) ([]time.Time, error) {
	query := fmt.Sprintf(`SELECT date FROM %s WHERE date >= ? AND date <= ?`, table)

	rows, err := conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, domain.MonthStart(d))
	}
	return dates, rows.Err()
}

// OilPriceStore implements storage.OilPriceStore using ClickHouse.
type OilPriceStore struct {
	conn *Conn
}

// NewOilPriceStore creates a new OilPriceStore.
func NewOilPriceStore(conn *Conn) *OilPriceStore {
	return &OilPriceStore{conn: conn}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate date.
func (s *OilPriceStore) InsertBulk(ctx context.Context, points []domain.USDPricePoint) error {
	if len(points) == 0 {
		return nil
	}

	dates := make([]time.Time, len(points))
	for i, p := range points {
		dates[i] = p.Date
	}
	if err := checkBatchDates(ctx, s.conn, domain.TableOilPrice, dates); err != nil {
		return err
	}

	batch, err := s.conn.PrepareBatch(ctx, `INSERT INTO oil_price (date, usd_price)`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, p := range points {
		if err := batch.Append(p.Date, p.USDPrice); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByDateRange retrieves points within [start, end] (inclusive), ordered by date ASC.
func (s *OilPriceStore) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.USDPricePoint, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT date, usd_price
		FROM oil_price
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query oil price by date range: %w", err)
	}
	defer rows.Close()

	return scanUSDPrices(rows)
}

func scanUSDPrices(rows chRows) ([]domain.USDPricePoint, error) {
	var points []domain.USDPricePoint
	for rows.Next() {
		var p domain.USDPricePoint
		if err := rows.Scan(&p.Date, &p.USDPrice); err != nil {
			return nil, fmt.Errorf("scan oil price row: %w", err)
		}
		p.Date = domain.MonthStart(p.Date)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate oil price rows: %w", err)
	}
	return points, nil
}

// FXRateStore implements storage.FXRateStore using ClickHouse.
type FXRateStore struct {
	conn *Conn
}

// NewFXRateStore creates a new FXRateStore.
func NewFXRateStore(conn *Conn) *FXRateStore {
	return &FXRateStore{conn: conn}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate date.
func (s *FXRateStore) InsertBulk(ctx context.Context, points []domain.FXRatePoint) error {
	if len(points) == 0 {
		return nil
	}

	dates := make([]time.Time, len(points))
	for i, p := range points {
		dates[i] = p.Date
	}
	if err := checkBatchDates(ctx, s.conn, domain.TableFXRate, dates); err != nil {
		return err
	}

	batch, err := s.conn.PrepareBatch(ctx, `INSERT INTO fx_rate (date, fx_rate)`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, p := range points {
		if err := batch.Append(p.Date, p.FXRate); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByDateRange retrieves points within [start, end] (inclusive), ordered by date ASC.
func (s *FXRateStore) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.FXRatePoint, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT date, fx_rate
		FROM fx_rate
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query fx rate by date range: %w", err)
	}
	defer rows.Close()

	var points []domain.FXRatePoint
	for rows.Next() {
		var p domain.FXRatePoint
		if err := rows.Scan(&p.Date, &p.FXRate); err != nil {
			return nil, fmt.Errorf("scan fx rate row: %w", err)
		}
		p.Date = domain.MonthStart(p.Date)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fx rate rows: %w", err)
	}
	return points, nil
}

// GeneralCostStore implements storage.GeneralCostStore using ClickHouse.
type GeneralCostStore struct {
	conn *Conn
}

// NewGeneralCostStore creates a new GeneralCostStore.
func NewGeneralCostStore(conn *Conn) *GeneralCostStore {
	return &GeneralCostStore{conn: conn}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate date.
func (s *GeneralCostStore) InsertBulk(ctx context.Context, points []domain.GeneralCostPoint) error {
	if len(points) == 0 {
		return nil
	}

	dates := make([]time.Time, len(points))
	for i, p := range points {
		dates[i] = p.Date
	}
	if err := checkBatchDates(ctx, s.conn, domain.TableGeneralCost, dates); err != nil {
		return err
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO general_cost (
			date, admin_cost, maintenance_cost, logistics_cost
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, p := range points {
		if err := batch.Append(p.Date, p.AdminCost, p.MaintenanceCost, p.LogisticsCost); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByDateRange retrieves points within [start, end] (inclusive), ordered by date ASC.
func (s *GeneralCostStore) GetByDateRange(ctx context.Context, start, end time.Time) ([]domain.GeneralCostPoint, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT date, admin_cost, maintenance_cost, logistics_cost
		FROM general_cost
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("query general cost by date range: %w", err)
	}
	defer rows.Close()

	var points []domain.GeneralCostPoint
	for rows.Next() {
		var p domain.GeneralCostPoint
		if err := rows.Scan(&p.Date, &p.AdminCost, &p.MaintenanceCost, &p.LogisticsCost); err != nil {
			return nil, fmt.Errorf("scan general cost row: %w", err)
		}
		p.Date = domain.MonthStart(p.Date)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate general cost rows: %w", err)
	}
	return points, nil
}

// Compile-time interface checks.
var (
	_ storage.OilPriceStore    = (*OilPriceStore)(nil)
	_ storage.FXRateStore      = (*FXRateStore)(nil)
	_ storage.GeneralCostStore = (*GeneralCostStore)(nil)
)
