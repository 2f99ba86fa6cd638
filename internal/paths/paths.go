package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/qlaunch/internal/config"
)

// Resolver centralizes the launcher's well-known locations. Windows install
// roots come from environment variables (ProgramFiles, LOCALAPPDATA, ...),
// read through an injectable lookup so tests can fake them.
type Resolver struct {
	getenv func(string) string
	cfg    *config.Config
}

// InstallCandidate is a fully built install location for the target.
type InstallCandidate struct {
	Root string // environment variable name
	Rel  string // path relative to the root
	Path string // absolute candidate path, empty when the root is unset
}

// NewResolver creates a Resolver reading the process environment.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{
		getenv: os.Getenv,
		cfg:    cfg,
	}
}

// NewResolverWithEnv creates a Resolver with an explicit lookup (useful for tests).
func NewResolverWithEnv(cfg *config.Config, getenv func(string) string) *Resolver {
	return &Resolver{
		getenv: getenv,
		cfg:    cfg,
	}
}

// Root returns the trimmed value of the environment variable name.
func (r *Resolver) Root(name string) string {
	return strings.TrimSpace(r.getenv(name))
}

// InstallCandidates combines every configured install dir with its root, in
// configuration order. Candidates whose root is unset keep an empty Path so
// callers can still report them.
func (r *Resolver) InstallCandidates() []InstallCandidate {
	if r.cfg == nil {
		return nil
	}

	candidates := make([]InstallCandidate, 0, len(r.cfg.Target.InstallDirs))
	for _, dir := range r.cfg.Target.InstallDirs {
		c := InstallCandidate{Root: dir.Root, Rel: dir.Path}
		if root := r.Root(dir.Root); root != "" {
			c.Path = filepath.Join(root, filepath.FromSlash(dir.Path))
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// DataDir returns the directory holding the settings database and logs.
func (r *Resolver) DataDir() string {
	if r.cfg != nil && r.cfg.Paths.DataDir != "" {
		return r.cfg.Paths.DataDir
	}
	if dir := r.Root("LOCALAPPDATA"); dir != "" {
		return filepath.Join(dir, "qlaunch")
	}
	return filepath.Join(os.TempDir(), "qlaunch")
}

// DBFile returns the sqlite settings file.
func (r *Resolver) DBFile() string {
	if r.cfg != nil && r.cfg.Paths.DBFile != "" {
		return r.cfg.Paths.DBFile
	}
	return filepath.Join(r.DataDir(), "settings.db")
}
