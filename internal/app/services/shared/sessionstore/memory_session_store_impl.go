package sessionstore

import (
	"context"
	"maps"
	"medportal-service/internal/app/contracts"
	"sync"
	"time"
)

type memoryNamespace struct {
	values    map[string]string
	expiresAt time.Time
}

type memorySessionStore struct {
	mu         sync.RWMutex
	namespaces map[string]*memoryNamespace
	ttl        time.Duration
	now        func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) contracts.SessionStore {
	return &memorySessionStore{
		namespaces: make(map[string]*memoryNamespace),
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *memorySessionStore) Load(_ context.Context, namespace string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.namespaces[namespace]
	if !ok || s.expired(entry) {
		return map[string]string{}, nil
	}
	return maps.Clone(entry.values), nil
}

func (s *memorySessionStore) Set(_ context.Context, namespace, key, value string) error {
	if err := validateKeys(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.namespaces[namespace]
	if !ok || s.expired(entry) {
		entry = &memoryNamespace{values: make(map[string]string)}
		s.namespaces[namespace] = entry
	}
	entry.values[key] = value
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, namespace string, keys ...string) error {
	if err := validateKeys(keys...); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.namespaces[namespace]
	if !ok {
		return nil
	}
	for _, key := range keys {
		delete(entry.values, key)
	}
	if len(entry.values) == 0 {
		delete(s.namespaces, namespace)
	}
	return nil
}

func (s *memorySessionStore) Clear(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.namespaces, namespace)
	return nil
}

func (s *memorySessionStore) expired(entry *memoryNamespace) bool {
	return !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt)
}
