package slot

import (
	"context"
	"sync"
)

// Memory is an in-process Slot. Values do not survive the process.
type Memory struct {
	values map[string][]byte
	mu     sync.RWMutex
}

// NewMemory creates an empty in-memory slot store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, name string) ([]byte, bool, error) {
	if err := validateName(name); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	m.values[name] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }
