package storage

import (
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore is a map-backed store. SaveErr, when set, makes every Save fail.
type MemoryStore struct {
	SaveErr error

	values map[string]int
	saves  int
	mutex  sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

func (m *MemoryStore) Load(key string) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	v, ok := m.values[key]
	if !ok {
		return 0, errors.Wrap(ErrNotFound, key)
	}
	return v, nil
}

func (m *MemoryStore) Save(key string, value int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.values[key] = value
	return nil
}

// Saves counts Save calls, failed ones included
func (m *MemoryStore) Saves() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.saves
}
