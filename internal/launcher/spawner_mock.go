package launcher

// MockSpawner is a mock implementation of Spawner for testing.
// Without a ShellOpenFunc every open succeeds.
type MockSpawner struct {
	SpawnFunc     func(path string, hidden bool) error
	ShellOpenFunc func(path string, hidden bool) int
}

// Spawn implements Spawner.Spawn
func (m *MockSpawner) Spawn(path string, hidden bool) error {
	if m.SpawnFunc != nil {
		return m.SpawnFunc(path, hidden)
	}
	return nil
}

// ShellOpen implements Spawner.ShellOpen
func (m *MockSpawner) ShellOpen(path string, hidden bool) int {
	if m.ShellOpenFunc != nil {
		return m.ShellOpenFunc(path, hidden)
	}
	return ShellOpenOK
}
