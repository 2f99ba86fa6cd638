package store

import "sync"

// MemoryStore is an in-memory Store for testing. GetErr and SetErr, when
// set, are returned by every call. Writes are counted in Sets.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	GetErr error
	SetErr error
	Sets   int
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func memKey(appID, key string) string {
	return appID + "\x00" + key
}

// Get implements Store.Get
func (m *MemoryStore) Get(appID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[memKey(appID, key)]
	return v, ok, nil
}

// Set implements Store.Set
func (m *MemoryStore) Set(appID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[memKey(appID, key)] = value
	m.Sets++
	return nil
}
