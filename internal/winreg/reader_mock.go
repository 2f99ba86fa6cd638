package winreg

import "sync"

// MockReader is an in-memory Reader for testing. Values are keyed by
// Location(root, subkey, value). Every lookup is recorded in Calls.
type MockReader struct {
	mu     sync.Mutex
	Values map[string]string
	Err    error
	Calls  []string
}

// NewMockReader creates an empty MockReader.
func NewMockReader() *MockReader {
	return &MockReader{Values: make(map[string]string)}
}

// Put stores a value.
func (m *MockReader) Put(root Root, subkey, value, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Values == nil {
		m.Values = make(map[string]string)
	}
	m.Values[Location(root, subkey, value)] = data
}

// ReadString implements Reader.ReadString
func (m *MockReader) ReadString(root Root, subkey, value string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc := Location(root, subkey, value)
	m.Calls = append(m.Calls, loc)
	if m.Err != nil {
		return "", m.Err
	}
	data, ok := m.Values[loc]
	if !ok {
		return "", ErrNotFound
	}
	return data, nil
}
