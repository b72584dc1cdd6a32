package history

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"dirok/internal/inference/models"
	"dirok/pkg/platform/sentinel"
)

// InMemoryStore keeps history in process memory. Safe for concurrent use.
type InMemoryStore struct {
	mu      sync.RWMutex
	limit   int
	records []*models.Record // newest first
}

// NewInMemory constructs an empty store holding at most limit entries.
func NewInMemory(limit int) *InMemoryStore {
	return &InMemoryStore{limit: normalizeLimit(limit)}
}

// Save prepends rec and evicts the oldest entries beyond the limit.
func (s *InMemoryStore) Save(_ context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Insert(s.records, 0, rec)
	if len(s.records) > s.limit {
		clear(s.records[s.limit:])
		s.records = s.records[:s.limit]
	}
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id models.DiagnosisID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("diagnosis %s: %w", id, sentinel.ErrNotFound)
}

// List returns entries newest first.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records), nil
}

func (s *InMemoryStore) Delete(_ context.Context, id models.DiagnosisID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.records, func(rec *models.Record) bool { return rec.ID == id })
	if i < 0 {
		return fmt.Errorf("diagnosis %s: %w", id, sentinel.ErrNotFound)
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
