package kv

// Memory is a map-backed Storage for tests and throwaway sessions
type Memory struct {
	entries map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{entries: map[string]string{}}
}

// Get implements Storage.Get
func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set implements Storage.Set
func (m *Memory) Set(key, value string) error {
	m.entries[key] = value
	return nil
}

// Close implements Storage.Close
func (m *Memory) Close() error {
	return nil
}
