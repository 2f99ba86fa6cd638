//go:build !windows

package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Spawn implements Spawner.Spawn
func (OSSpawner) Spawn(path string, _ bool) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	return cmd.Process.Release()
}

// ShellOpen implements Spawner.ShellOpen with the desktop opener
// (xdg-open, or open on macOS) and maps failures onto the ShellExecute
// code scheme.
func (OSSpawner) ShellOpen(path string, _ bool) int {
	if _, err := os.Stat(path); err != nil {
		return 2
	}

	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	if _, err := exec.LookPath(opener); err != nil {
		return 27
	}

	cmd := exec.Command(opener, path)
	if err := cmd.Start(); err != nil {
		return 27
	}
	_ = cmd.Process.Release()
	return ShellOpenOK
}
