package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

// FieldStore implements storage.FieldStore using PostgreSQL.
type FieldStore struct {
	pool *Pool
}

// NewFieldStore creates a new FieldStore.
func NewFieldStore(pool *Pool) *FieldStore {
	return &FieldStore{pool: pool}
}

// Compile-time interface check.
var _ storage.FieldStore = (*FieldStore)(nil)

// InsertBulk adds multiple fields atomically. Fails entire batch on any duplicate.
func (s *FieldStore) InsertBulk(ctx context.Context, fields []domain.Field) error {
	if len(fields) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO fields (
			id, name, region, oil_type, capacity, start_date
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, f := range fields {
		_, err := tx.Exec(ctx, query,
			f.ID,
			f.Name,
			string(f.Region),
			string(f.OilType),
			f.Capacity,
			f.StartDate,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			if isCheckViolation(err) {
				return fmt.Errorf("insert field %d: %w", f.ID, storage.ErrInvalidInput)
			}
			return fmt.Errorf("insert field in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a field by its ID. Returns ErrNotFound if not exists.
func (s *FieldStore) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	query := `
		SELECT id, name, region, oil_type, capacity, start_date
		FROM fields
		WHERE id = $1
	`

	f, err := scanField(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get field by id: %w", err)
	}
	return f, nil
}

// GetAll retrieves every field, ordered by id ASC.
func (s *FieldStore) GetAll(ctx context.Context) ([]domain.Field, error) {
	query := `
		SELECT id, name, region, oil_type, capacity, start_date
		FROM fields
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all fields: %w", err)
	}
	defer rows.Close()

	var result []domain.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		result = append(result, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fields: %w", err)
	}
	return result, nil
}

// scanField scans a single row into a Field.
func scanField(row pgx.Row) (*domain.Field, error) {
	var f domain.Field
	var region, oilType string

	err := row.Scan(
		&f.ID,
		&f.Name,
		&region,
		&oilType,
		&f.Capacity,
		&f.StartDate,
	)
	if err != nil {
		return nil, err
	}

	f.Region = domain.Region(region)
	f.OilType = domain.OilType(oilType)
	f.StartDate = domain.MonthStart(f.StartDate)
	return &f, nil
}
