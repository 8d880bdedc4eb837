package state

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps the record in process memory. It is lost on restart.
type MemoryStore struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]struct{})}
}

func (s *MemoryStore) IsNotified(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok, nil
}

func (s *MemoryStore) MarkNotified(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
	return nil
}

func (s *MemoryStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.ids)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

func (*MemoryStore) Ping(context.Context) error { return nil }

func (*MemoryStore) Close() error { return nil }
