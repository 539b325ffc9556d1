package paramstore

import (
	"context"
	"net/url"
	"sync"

	"taskboard/internal/core/ports"
)

// MemoryStore keeps one view's parameters in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values url.Values
}

var _ ports.ParamStore = (*MemoryStore)(nil)

func NewMemoryStore(initial url.Values) *MemoryStore {
	return &MemoryStore{values: cloneValues(initial)}
}

func (s *MemoryStore) Values(context.Context) (url.Values, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValues(s.values), nil
}

func (s *MemoryStore) Apply(_ context.Context, set map[string]string, remove []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range set {
		s.values.Set(key, value)
	}
	for _, key := range remove {
		s.values.Del(key)
	}
	return nil
}

func (s *MemoryStore) Touch(context.Context) error {
	return nil
}

func (s *MemoryStore) Drop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = url.Values{}
	return nil
}

func cloneValues(values url.Values) url.Values {
	out := url.Values{}
	for key, list := range values {
		out[key] = append([]string(nil), list...)
	}
	return out
}

func NewMemoryFactory() ports.ParamStoreFactory {
	return func(_ context.Context, _ string, initial url.Values) (ports.ParamStore, error) {
		return NewMemoryStore(initial), nil
	}
}
