package resolver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/qlaunch/internal/fsops"
	"github.com/quantmind-br/qlaunch/internal/security"
	"github.com/quantmind-br/qlaunch/internal/store"
	"github.com/quantmind-br/qlaunch/internal/winreg"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Source is one named strategy for producing a candidate executable path.
// Probe must verify the path against the filesystem at call time.
type Source interface {
	// Describe returns the human-readable label listed in diagnostics
	Describe() string

	// Probe returns a verified path, or false when this source has nothing
	Probe() (string, bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc struct {
	Label string
	Fn    func() (string, bool)
}

// Describe implements Source.Describe
func (s SourceFunc) Describe() string { return s.Label }

// Probe implements Source.Probe
func (s SourceFunc) Probe() (string, bool) { return s.Fn() }

type overrideSource struct {
	store store.Store
	appID string
	key   string
	fs    afero.Fs
	log   *zerolog.Logger
}

// OverrideSource reads the persisted override. A stored value is trusted as
// long as it still names a regular file; a stale value is skipped and left
// in place.
func OverrideSource(st store.Store, appID, key string, fs afero.Fs, log *zerolog.Logger) Source {
	return &overrideSource{store: st, appID: appID, key: key, fs: fs, log: log}
}

func (s *overrideSource) Describe() string {
	return fmt.Sprintf(`launcher override: %s\%s`, s.appID, s.key)
}

func (s *overrideSource) Probe() (string, bool) {
	if s.store == nil {
		return "", false
	}
	raw, ok, err := s.store.Get(s.appID, s.key)
	if err != nil {
		if s.log != nil {
			s.log.Warn().Err(err).Str("app_id", s.appID).Msg("cannot read override, ignoring")
		}
		return "", false
	}
	if !ok {
		return "", false
	}

	path := strings.TrimSpace(raw)
	if path == "" || security.ValidatePath(path) != nil {
		return "", false
	}
	if !fsops.IsFile(s.fs, path) {
		if s.log != nil {
			s.log.Debug().Str("path", path).Msg("stale override, continuing search")
		}
		return "", false
	}
	return path, true
}

type registrySource struct {
	reader   winreg.Reader
	root     winreg.Root
	subkey   string
	value    string
	exeNames []string
	fs       afero.Fs
}

// RegistrySource probes a registry value. The value may name the executable
// itself, or the install directory, in which case each of exeNames is tried
// in order.
func RegistrySource(reader winreg.Reader, root winreg.Root, subkey, value string, exeNames []string, fs afero.Fs) Source {
	return &registrySource{
		reader:   reader,
		root:     root,
		subkey:   subkey,
		value:    value,
		exeNames: exeNames,
		fs:       fs,
	}
}

func (s *registrySource) Describe() string {
	return "registry: " + winreg.Location(s.root, s.subkey, s.value)
}

func (s *registrySource) Probe() (string, bool) {
	raw, err := s.reader.ReadString(s.root, s.subkey, s.value)
	if err != nil {
		return "", false
	}
	return resolveInstallPath(s.fs, raw, s.exeNames)
}

// resolveInstallPath turns a registry-provided location into an executable:
// either the location is an .exe file, or it is a directory containing one
// of the conventional executable names.
func resolveInstallPath(fs afero.Fs, raw string, exeNames []string) (string, bool) {
	base := strings.TrimSpace(raw)
	if base == "" || security.ValidatePath(base) != nil {
		return "", false
	}

	if fsops.IsFile(fs, base) && security.HasExtension(base, ".exe") {
		return base, true
	}

	for _, name := range exeNames {
		candidate := filepath.Join(base, name)
		if fsops.IsFile(fs, candidate) {
			return candidate, true
		}
	}
	return "", false
}

type installDirSource struct {
	root string
	rel  string
	path string
	fs   afero.Fs
}

// InstallDirSource checks a well-known install location. path is the
// already joined candidate; it is empty when the root variable is unset.
func InstallDirSource(root, rel, path string, fs afero.Fs) Source {
	return &installDirSource{root: root, rel: rel, path: path, fs: fs}
}

func (s *installDirSource) Describe() string {
	return fmt.Sprintf(`install dir: %%%s%%\%s`, s.root, s.rel)
}

func (s *installDirSource) Probe() (string, bool) {
	if s.path == "" {
		return "", false
	}
	if !fsops.IsFile(s.fs, s.path) {
		return "", false
	}
	return s.path, true
}
