//go:build !windows

package ui

import "github.com/rs/zerolog"

// NewNativeDialog falls back to the console where no native dialogs exist.
func NewNativeDialog(log *zerolog.Logger) Dialog {
	return NewConsoleDialog(log)
}

// Native reports whether NewNativeDialog shows windowed dialogs.
func Native() bool {
	return false
}
