package ui

import "sync"

// MockDialog is a scripted Dialog for tests. Unset funcs answer "no" and
// "nothing selected".
type MockDialog struct {
	ConfirmFunc       func(title, text string) bool
	PickFileFunc      func(title string, exts []string) (string, bool)
	PickDirectoryFunc func(title string) (string, bool)

	mu    sync.Mutex
	Calls []string
	// Alerts holds the text of every Alert call
	Alerts []string
}

func (m *MockDialog) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockDialog) Alert(title, text string) {
	m.record("alert")
	m.mu.Lock()
	m.Alerts = append(m.Alerts, text)
	m.mu.Unlock()
}

func (m *MockDialog) Confirm(title, text string) bool {
	m.record("confirm")
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(title, text)
	}
	return false
}

func (m *MockDialog) PickFile(title string, exts []string) (string, bool) {
	m.record("pick_file")
	if m.PickFileFunc != nil {
		return m.PickFileFunc(title, exts)
	}
	return "", false
}

func (m *MockDialog) PickDirectory(title string) (string, bool) {
	m.record("pick_directory")
	if m.PickDirectoryFunc != nil {
		return m.PickDirectoryFunc(title)
	}
	return "", false
}

// AlertCount returns the number of alerts shown so far.
func (m *MockDialog) AlertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Alerts)
}
