package kv

import "sync"

// Memory is an in-memory Store with an optional byte budget. It is safe for
// concurrent use. The zero budget means unlimited.
type Memory struct {
	mu     sync.RWMutex
	m      map[string]string
	budget int64
}

// NewMemory returns an empty in-memory store with the given budget in
// bytes. Pass 0 for no budget.
func NewMemory(budget int64) *Memory {
	return &Memory{m: make(map[string]string), budget: budget}
}

func (s *Memory) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.budget > 0 {
		var total int64
		for k, v := range s.m {
			if k == key {
				continue
			}
			total += cost(v)
		}
		if total+cost(value) > s.budget {
			return ErrQuotaExceeded
		}
	}
	s.m[key] = value
	return nil
}

func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *Memory) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ Store = (*Memory)(nil)
