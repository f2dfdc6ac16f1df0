package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps records in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record), now: time.Now}
}

func (s *MemoryStore) Create(ctx context.Context, rec *Record) error {
	if err := prepare(rec, s.now()); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byName(rec.Name) != nil {
		return conflict(rec.Name)
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, notFound(id)
	}
	return &rec, nil
}

func (s *MemoryStore) GetByName(ctx context.Context, name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.byName(name)
	if rec == nil {
		return nil, notFound(name)
	}
	out := *rec
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	slices.SortFunc(recs, func(a, b Record) int { return cmp.Compare(a.Name, b.Name) })
	return recs, nil
}

func (s *MemoryStore) Update(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.records[rec.ID]
	if !ok {
		return notFound(rec.ID)
	}
	if other := s.byName(rec.Name); other != nil && other.ID != rec.ID {
		return conflict(rec.Name)
	}
	rec.CreatedAt = old.CreatedAt
	if err := prepare(rec, s.now()); err != nil {
		return err
	}
	s.records[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

// byName must be called with the lock held.
func (s *MemoryStore) byName(name string) *Record {
	for _, rec := range s.records {
		if rec.Name == name {
			return &rec
		}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
