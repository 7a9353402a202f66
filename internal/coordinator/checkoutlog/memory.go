package checkoutlog

import (
	"context"
	"sync"
)

// MemoryRepository keeps the log in process memory.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Save(_ context.Context, entry *Entry) error {
	m.mu.Lock()
	m.entries = append(m.entries, *entry)
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepository) List(_ context.Context, checkoutID string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Entry
	for _, e := range m.entries {
		if e.CheckoutID == checkoutID {
			out = append(out, e)
		}
	}
	return out, nil
}
