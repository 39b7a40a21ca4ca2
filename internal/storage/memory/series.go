package memory

import (
	"sort"
	"sync"
	"time"

	"oilfield-finance-lab/internal/domain"
	"oilfield-finance-lab/internal/storage"
)

// monthlySeries holds one point per month keyed by month start.
// Shared by the price, FX and general cost stores.
type monthlySeries[T any] struct {
	mu     sync.RWMutex
	data   map[time.Time]T
	dateOf func(T) time.Time
}

func newMonthlySeries[T any](dateOf func(T) time.Time) *monthlySeries[T] {
	return &monthlySeries[T]{
		data:   make(map[time.Time]T),
		dateOf: dateOf,
	}
}

func (s *monthlySeries[T]) insertBulk(points []T) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[time.Time]struct{}, len(points))
	for _, p := range points {
		d := s.dateOf(p)
		if !domain.IsMonthStart(d) {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[d]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[d]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[d] = struct{}{}
	}

	for _, p := range points {
		s.data[s.dateOf(p)] = p
	}
	return nil
}

func (s *monthlySeries[T]) getByDateRange(start, end time.Time) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []T
	for d, p := range s.data {
		if !d.Before(start) && !d.After(end) {
			result = append(result, p)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return s.dateOf(result[i]).Before(s.dateOf(result[j]))
	})
	return result
}
