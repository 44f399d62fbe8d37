package jsonstore

import "maps"

// Memory is a KV that lives only as long as the process.
type Memory struct {
	data map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// Entries returns a copy of everything stored.
func (m *Memory) Entries() map[string]string {
	return maps.Clone(m.data)
}
