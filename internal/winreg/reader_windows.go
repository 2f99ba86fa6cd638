//go:build windows

package winreg

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// SystemReader reads the live registry.
type SystemReader struct{}

// NewSystemReader creates a reader backed by the Windows registry.
func NewSystemReader() *SystemReader {
	return &SystemReader{}
}

// ReadString reads a REG_SZ or REG_EXPAND_SZ value. Expandable values have
// their environment references resolved.
func (SystemReader) ReadString(root Root, subkey, value string) (string, error) {
	hive, err := predefined(root)
	if err != nil {
		return "", err
	}

	key, err := registry.OpenKey(hive, subkey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("open %s\\%s: %w", root, subkey, err)
	}
	defer key.Close()

	raw, valType, err := key.GetStringValue(value)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read %s: %w", Location(root, subkey, value), err)
	}

	if valType == registry.EXPAND_SZ {
		expanded, err := registry.ExpandString(raw)
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", Location(root, subkey, value), err)
		}
		return expanded, nil
	}

	return raw, nil
}

func predefined(root Root) (registry.Key, error) {
	switch root {
	case CurrentUser:
		return registry.CURRENT_USER, nil
	case LocalMachine:
		return registry.LOCAL_MACHINE, nil
	default:
		return 0, fmt.Errorf("unknown registry root %d", int(root))
	}
}
