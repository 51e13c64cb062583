package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the in-process fallback cache used when no Redis is
// configured. Same tagging semantics as RedisStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	domains map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		domains: make(map[string]map[string]struct{}),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration, domains ...string) error {
	if len(domains) == 0 {
		domains = []string{DomainDefault}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = entry
	for _, domain := range domains {
		if s.domains[domain] == nil {
			s.domains[domain] = make(map[string]struct{})
		}
		s.domains[domain][key] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, domains ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, domain := range domains {
		for key := range s.domains[domain] {
			delete(s.entries, key)
		}
		delete(s.domains, domain)
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
