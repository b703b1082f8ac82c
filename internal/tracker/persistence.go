package tracker

import (
	"context"
	"sync"
)

// Persistence stores the full record collection. Save always replaces what
// was stored before.
type Persistence interface {
	Load(ctx context.Context) ([]TimeRecord, error)
	Save(ctx context.Context, records []TimeRecord) error
	Close() error
}

// MemoryPersistence keeps the last saved snapshot in process memory.
type MemoryPersistence struct {
	mu      sync.RWMutex
	records []TimeRecord
	saves   int
}

// NewMemoryPersistence creates an empty in-memory persistence.
func NewMemoryPersistence(initial ...TimeRecord) *MemoryPersistence {
	records := make([]TimeRecord, len(initial))
	copy(records, initial)
	return &MemoryPersistence{records: records}
}

func (m *MemoryPersistence) Load(ctx context.Context) ([]TimeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]TimeRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryPersistence) Save(ctx context.Context, records []TimeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make([]TimeRecord, len(records))
	copy(m.records, records)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryPersistence) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

func (m *MemoryPersistence) Close() error {
	return nil
}
