// Package resolver locates the target executable by walking a fixed,
// ordered list of candidate sources and remembers manual picks in the
// override store.
package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quantmind-br/qlaunch/internal/config"
	"github.com/quantmind-br/qlaunch/internal/fsops"
	"github.com/quantmind-br/qlaunch/internal/paths"
	"github.com/quantmind-br/qlaunch/internal/security"
	"github.com/quantmind-br/qlaunch/internal/store"
	"github.com/quantmind-br/qlaunch/internal/winreg"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

var (
	// ErrInvalidManualPath is returned by Remember when the path is not an
	// existing regular file.
	ErrInvalidManualPath = errors.New("path is not an existing file")

	// ErrPersist wraps store write failures. The resolved path is still
	// usable for the current run.
	ErrPersist = errors.New("cannot save override")
)

// Attempt records one resolution run.
type Attempt struct {
	// Tried lists every probed source, in probe order.
	Tried []string
	// Result is the resolved path, empty on a miss.
	Result string
}

// Found reports whether a source produced a path.
func (a *Attempt) Found() bool {
	return a.Result != ""
}

// Options configures a Resolver.
type Options struct {
	Store  store.Store
	AppID  string
	Key    string
	Fs     afero.Fs
	Logger *zerolog.Logger
}

// Resolver walks its sources in order.
type Resolver struct {
	sources []Source
	store   store.Store
	appID   string
	key     string
	fs      afero.Fs
	log     *zerolog.Logger
}

// New creates a Resolver over sources. The order of sources is the search
// priority and never changes.
func New(opts Options, sources ...Source) *Resolver {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Resolver{
		sources: sources,
		store:   opts.Store,
		appID:   opts.AppID,
		key:     opts.Key,
		fs:      fs,
		log:     log,
	}
}

// NewDefault builds the standard search order for cfg.Target:
// override, current-user registry values, install directories, then
// machine-wide registry keys.
func NewDefault(cfg *config.Config, st store.Store, reader winreg.Reader, pr *paths.Resolver, fs afero.Fs, log *zerolog.Logger) *Resolver {
	opts := Options{
		Store:  st,
		AppID:  cfg.Target.AppID,
		Key:    cfg.Target.OverrideKey,
		Fs:     fs,
		Logger: log,
	}
	r := New(opts)
	r.sources = DefaultSources(cfg, st, reader, pr, r.fs, r.log)
	return r
}

// DefaultSources returns the standard ordered source list.
func DefaultSources(cfg *config.Config, st store.Store, reader winreg.Reader, pr *paths.Resolver, fs afero.Fs, log *zerolog.Logger) []Source {
	t := cfg.Target
	sources := []Source{OverrideSource(st, t.AppID, t.OverrideKey, fs, log)}

	for _, value := range t.PrimaryValues {
		sources = append(sources, RegistrySource(reader, winreg.CurrentUser, t.PrimaryKey, value, t.ExeNames, fs))
	}

	if pr != nil {
		for _, c := range pr.InstallCandidates() {
			sources = append(sources, InstallDirSource(c.Root, c.Rel, c.Path, fs))
		}
	}

	for _, mk := range t.MachineKeys {
		sources = append(sources, RegistrySource(reader, winreg.LocalMachine, mk.Key, mk.Value, t.ExeNames, fs))
	}

	return sources
}

// Sources returns the search order.
func (r *Resolver) Sources() []Source {
	return r.sources
}

// Resolve probes each source in order and stops at the first hit. Sources
// after the hit are not probed.
func (r *Resolver) Resolve() (string, *Attempt) {
	attempt := &Attempt{}

	for _, src := range r.sources {
		desc := src.Describe()
		attempt.Tried = append(attempt.Tried, desc)

		path, ok := src.Probe()
		if !ok {
			r.log.Debug().Str("source", desc).Msg("no candidate")
			continue
		}

		attempt.Result = path
		r.log.Info().Str("source", desc).Str("path", path).Msg("target resolved")
		return path, attempt
	}

	r.log.Warn().Int("tried", len(attempt.Tried)).Msg("target not found by any source")
	return "", attempt
}

// Verify reports whether path still names a regular file.
func (r *Resolver) Verify(path string) bool {
	return fsops.IsFile(r.fs, path)
}

// Remember accepts a manually supplied path. It must name an existing
// regular file, otherwise ErrInvalidManualPath is returned and nothing is
// written. On success the path is saved as the override so the next run
// stops at the first source. A failed write returns the cleaned path
// together with an error wrapping ErrPersist.
func (r *Resolver) Remember(raw string) (string, error) {
	path := security.SanitizePath(raw)
	if err := security.ValidatePath(path); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidManualPath, err)
	}
	if !fsops.IsFile(r.fs, path) {
		return "", fmt.Errorf("%w: %s", ErrInvalidManualPath, path)
	}

	if r.store == nil {
		return path, fmt.Errorf("%w: no store configured", ErrPersist)
	}
	if err := r.store.Set(r.appID, r.key, path); err != nil {
		r.log.Warn().Err(err).Str("path", path).Msg("override not saved")
		return path, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	r.log.Info().Str("path", path).Str("app_id", r.appID).Msg("override saved")
	return path, nil
}

// FailureMessage builds the diagnostic shown after a miss: every source
// tried, one per line, in probe order.
func FailureMessage(target string, attempt *Attempt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Automatic search could not find the %s install path.\n", target)
	b.WriteString("Tried the following locations:\n")
	for _, tried := range attempt.Tried {
		fmt.Fprintf(&b, "  %s\n", tried)
	}
	return b.String()
}
