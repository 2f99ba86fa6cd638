//go:build !windows

package store

// RegistryStore is unavailable outside Windows.
type RegistryStore struct{}

// NewRegistryStore always fails with ErrUnsupported.
func NewRegistryStore() (*RegistryStore, error) {
	return nil, ErrUnsupported
}

// Get implements Store.Get
func (RegistryStore) Get(_, _ string) (string, bool, error) {
	return "", false, ErrUnsupported
}

// Set implements Store.Set
func (RegistryStore) Set(_, _, _ string) error {
	return ErrUnsupported
}
