package cmd

import (
	"github.com/quantmind-br/qlaunch/internal/config"
	"github.com/quantmind-br/qlaunch/internal/launcher"
	"github.com/quantmind-br/qlaunch/internal/paths"
	"github.com/quantmind-br/qlaunch/internal/store"
	"github.com/quantmind-br/qlaunch/internal/ui"
	"github.com/quantmind-br/qlaunch/internal/winreg"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Env holds the collaborators commands run against. Tests swap them for
// mocks; NewEnv wires the real ones.
type Env struct {
	Config   *config.Config
	Log      *zerolog.Logger
	Fs       afero.Fs
	Registry winreg.Reader
	Paths    *paths.Resolver
	Dialog   ui.Dialog
	Spawner  launcher.Spawner
	// Console is set when the dialog prompts on a terminal rather than in
	// native windows.
	Console bool

	// OpenStore is called at most once, on first use.
	OpenStore func() (store.Store, error)

	st     store.Store
	opened bool
}

// NewEnv wires the platform collaborators for cfg.
func NewEnv(cfg *config.Config, log *zerolog.Logger) *Env {
	return &Env{
		Config:    cfg,
		Log:       log,
		Fs:        afero.NewOsFs(),
		Registry:  winreg.NewSystemReader(),
		Paths:     paths.NewResolver(cfg),
		Dialog:    ui.NewDialog(cfg.UI.Mode, log),
		Spawner:   launcher.NewOSSpawner(),
		Console:   ConsoleMode(cfg.UI.Mode),
		OpenStore: func() (store.Store, error) { return store.Open(cfg) },
	}
}

// ConsoleMode reports whether mode resolves to terminal prompts.
func ConsoleMode(mode string) bool {
	return mode == ui.ModeConsole || !ui.Native()
}

// Store returns the persisted settings store, or nil when it cannot be
// opened. A missing store degrades to "nothing persisted".
func (e *Env) Store() store.Store {
	if e.opened {
		return e.st
	}
	e.opened = true

	if e.OpenStore == nil {
		return nil
	}
	st, err := e.OpenStore()
	if err != nil {
		e.Log.Warn().Err(err).Str("backend", e.Config.Store.Backend).Msg("settings store unavailable")
		return nil
	}
	e.st = st
	return st
}

// Close releases the store if one was opened.
func (e *Env) Close() {
	if e.st == nil {
		return
	}
	if err := store.Close(e.st); err != nil {
		e.Log.Debug().Err(err).Msg("close store")
	}
}
