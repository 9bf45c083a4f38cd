package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps charts in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]*Chart
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]*Chart)}
}

func (s *MemoryStore) Save(_ context.Context, c *Chart) error {
	if err := ValidateID(c.ID); err != nil {
		return err
	}
	cp := *c
	s.mu.Lock()
	s.charts[c.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.charts[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Chart, error) {
	s.mu.RLock()
	out := make([]*Chart, 0, len(s.charts))
	for _, c := range s.charts {
		cp := *c
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sortNewestFirst(out)
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charts[id]; !ok {
		return notFound(id)
	}
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// sortNewestFirst orders charts by creation time, breaking ties by ID so
// listings are stable.
func sortNewestFirst(charts []*Chart) {
	slices.SortFunc(charts, func(a, b *Chart) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

var _ Store = (*MemoryStore)(nil)
