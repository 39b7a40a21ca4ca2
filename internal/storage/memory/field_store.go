package memory

import (
	"context"
	"sort"
	"sync"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

// FieldStore is an in-memory implementation of storage.FieldStore.
type FieldStore struct {
	mu   sync.RWMutex
	data map[int64]domain.Field
}

// NewFieldStore creates a new in-memory field store.
func NewFieldStore() *FieldStore {
	return &FieldStore{
		data: make(map[int64]domain.Field),
	}
}

// InsertBulk adds multiple fields. Fails entire batch on duplicate.
func (s *FieldStore) InsertBulk(_ context.Context, fields []domain.Field) error {
	if len(fields) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[int64]struct{}, len(fields))

	// First pass: check for duplicates (existing + intra-batch)
	for _, f := range fields {
		if f.ID <= 0 {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[f.ID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[f.ID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[f.ID] = struct{}{}
	}

	for _, f := range fields {
		s.data[f.ID] = f
	}
	return nil
}

// GetByID retrieves a field by its ID.
func (s *FieldStore) GetByID(_ context.Context, id int64) (*domain.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.data[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &f, nil
}

// GetAll retrieves every field, ordered by id ASC.
func (s *FieldStore) GetAll(_ context.Context) ([]domain.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Field, 0, len(s.data))
	for _, f := range s.data {
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

var _ storage.FieldStore = (*FieldStore)(nil)
