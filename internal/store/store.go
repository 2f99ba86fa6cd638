// Package store persists small per-user string settings, such as the
// override path of the target executable, scoped by an application identity.
package store

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/quantmind-br/qlaunch/internal/config"
	"github.com/quantmind-br/qlaunch/internal/paths"
)

// ErrUnsupported is returned by backends that do not exist on this platform.
var ErrUnsupported = errors.New("store backend not supported on this platform")

// Store is a get/set string store scoped by application identity.
// A missing value is reported as ("", false, nil): absence is the normal
// first-run state, not an error.
type Store interface {
	Get(appID, key string) (string, bool, error)
	Set(appID, key, value string) error
}

// Closer is implemented by stores holding OS resources.
type Closer interface {
	Close() error
}

// Open returns the store selected by cfg.Store.Backend. "auto" uses the
// registry on Windows and sqlite elsewhere.
func Open(cfg *config.Config) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if backend == "" || backend == "auto" {
		backend = "sqlite"
		if runtime.GOOS == "windows" {
			backend = "registry"
		}
	}

	switch backend {
	case "registry":
		s, err := NewRegistryStore()
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := NewSQLiteStore(paths.NewResolver(cfg).DBFile())
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Close releases s when it holds resources.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
