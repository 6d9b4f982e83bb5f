package store

import (
	"bytes"
	"slices"
	"strings"
	"sync"
)

// memoryKV keeps everything in a map; used when nothing should be
// persisted.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func newMemory() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = bytes.Clone(value)
	return nil
}

func (m *memoryKV) get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (m *memoryKV) scan(prefix []byte, fn func(key, value []byte) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := fn([]byte(k), m.data[k]); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryKV) close() error { return nil }
