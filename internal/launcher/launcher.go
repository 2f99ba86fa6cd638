// Package launcher starts the resolved target: one executable a fixed
// number of times, or every shortcut of a directory concurrently.
package launcher

import (
	"fmt"

	"github.com/quantmind-br/qlaunch/internal/fsops"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
)

// DefaultExtension marks indirect launch targets.
const DefaultExtension = ".lnk"

// Options configures a Launcher.
type Options struct {
	// Hidden starts targets without a visible console window (repeat mode)
	// or in the SW_HIDE state (batch mode).
	Hidden bool
	// MaxWorkers caps concurrent shell opens in batch mode; 0 means one
	// worker per shortcut with no cap.
	MaxWorkers int
	// Extension selects shortcut files, DefaultExtension when empty.
	Extension     string
	CaseSensitive bool

	Fs     afero.Fs
	Logger *zerolog.Logger

	// OnSpawnError is called once per failed launch in repeat mode.
	OnSpawnError func(path string, err error)
	// OnOutcome is called once per finished shortcut in batch mode. It runs
	// on worker goroutines and must be safe for concurrent use.
	OnOutcome func(Outcome)
}

// Launcher starts processes through a Spawner.
type Launcher struct {
	spawner Spawner
	opts    Options
	fs      afero.Fs
	log     *zerolog.Logger
}

// New creates a Launcher.
func New(spawner Spawner, opts Options) *Launcher {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Launcher{spawner: spawner, opts: opts, fs: fs, log: log}
}

// LaunchRepeated starts path count times, one after another. Every failure
// is reported and returned; none stops the loop.
func (l *Launcher) LaunchRepeated(path string, count int) []error {
	var errs []error

	for i := 0; i < count; i++ {
		if err := l.spawner.Spawn(path, l.opts.Hidden); err != nil {
			err = fmt.Errorf("launch %d/%d: %w", i+1, count, err)
			errs = append(errs, err)
			l.log.Error().Err(err).Str("path", path).Msg("launch failed")
			if l.opts.OnSpawnError != nil {
				l.opts.OnSpawnError(path, err)
			}
			continue
		}
		l.log.Debug().Str("path", path).Int("n", i+1).Msg("launched")
	}

	l.log.Info().Str("path", path).Int("count", count).Int("failed", len(errs)).Msg("repeat launch finished")
	return errs
}

// Shortcuts lists the launchable shortcut files directly inside dir.
func (l *Launcher) Shortcuts(dir string) ([]string, error) {
	return fsops.ListFiles(l.fs, dir, l.opts.Extension, l.opts.CaseSensitive)
}

// LaunchAll opens every shortcut in dir concurrently and waits for all of
// them. The returned error only reports that dir could not be read.
func (l *Launcher) LaunchAll(dir string) ([]Outcome, error) {
	files, err := l.Shortcuts(dir)
	if err != nil {
		return nil, fmt.Errorf("list shortcuts in %s: %w", dir, err)
	}

	l.log.Info().Str("dir", dir).Int("shortcuts", len(files)).Msg("batch launch")
	return l.LaunchFiles(files), nil
}

// LaunchFiles opens every file concurrently and waits for all of them. A
// failed open never affects its siblings. A worker that panics is dropped
// from the result without failing the batch.
func (l *Launcher) LaunchFiles(files []string) []Outcome {

	// Each worker owns one slot; nothing else is shared.
	slots := make([]*Outcome, len(files))

	p := pool.New()
	if l.opts.MaxWorkers > 0 {
		p = p.WithMaxGoroutines(l.opts.MaxWorkers)
	}

	for i, file := range files {
		p.Go(func() {
			defer l.recoverWorker(file)

			outcome := NewOutcome(file, l.spawner.ShellOpen(file, l.opts.Hidden))
			slots[i] = &outcome

			if !outcome.OK() {
				l.log.Error().
					Str("file", file).
					Int("code", outcome.Code).
					Str("reason", string(outcome.Reason)).
					Msg("shortcut failed")
			}
			if l.opts.OnOutcome != nil {
				l.opts.OnOutcome(outcome)
			}
		})
	}
	p.Wait()

	outcomes := make([]Outcome, 0, len(slots))
	for _, o := range slots {
		if o != nil {
			outcomes = append(outcomes, *o)
		}
	}
	return outcomes
}

func (l *Launcher) recoverWorker(file string) {
	if r := recover(); r != nil {
		l.log.Warn().Str("file", file).Interface("panic", r).Msg("shortcut worker stopped unexpectedly")
	}
}
