//go:build windows

package store

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// RegistryStore keeps settings under HKEY_CURRENT_USER\Software\<appID>.
type RegistryStore struct{}

// NewRegistryStore creates a registry-backed store.
func NewRegistryStore() (*RegistryStore, error) {
	return &RegistryStore{}, nil
}

func subkey(appID string) string {
	return `Software\` + appID
}

// Get implements Store.Get
func (RegistryStore) Get(appID, key string) (string, bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, subkey(appID), registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open HKEY_CURRENT_USER\\%s: %w", subkey(appID), err)
	}
	defer k.Close()

	value, _, err := k.GetStringValue(key)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements Store.Set
func (RegistryStore) Set(appID, key, value string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, subkey(appID), registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("create HKEY_CURRENT_USER\\%s: %w", subkey(appID), err)
	}
	defer k.Close()

	if err := k.SetStringValue(key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
