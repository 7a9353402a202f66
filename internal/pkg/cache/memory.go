package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jcmexdev/digital-storefront/internal/pkg/clock"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memoryCache is the in-process Cache used when no Redis address is set.
type memoryCache struct {
	mu          sync.Mutex
	clock       clock.Clock
	serviceName string
	entries     map[string]memoryEntry
}

func NewMemoryCache(c clock.Clock, serviceName string) Cache {
	return &memoryCache{
		clock:       c,
		serviceName: serviceName,
		entries:     make(map[string]memoryEntry),
	}
}

func (m *memoryCache) SetNX(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(key); ok {
		return false, nil
	}
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.clock.Now().Add(ttl)
	}
	m.entries[key] = entry
	return true, nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, _ := m.lookup(key)
	return val, nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryCache) GenerateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", m.serviceName, operation, key)
}

// lookup must be called with mu held. Expired entries are dropped.
func (m *memoryCache) lookup(key string) (string, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && !m.clock.Now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return entry.value, true
}
