//go:build windows

package launcher

import (
	"fmt"
	"os/exec"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	shell32           = windows.NewLazySystemDLL("shell32.dll")
	procShellExecuteW = shell32.NewProc("ShellExecuteW")
)

// Spawn implements Spawner.Spawn
func (OSSpawner) Spawn(path string, hidden bool) error {
	cmd := exec.Command(path)
	if hidden {
		cmd.SysProcAttr = &syscall.SysProcAttr{
			CreationFlags: windows.CREATE_NO_WINDOW,
		}
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	// The launcher never waits for the target.
	return cmd.Process.Release()
}

// ShellOpen implements Spawner.ShellOpen via ShellExecuteW. The raw return
// value is kept because x/sys/windows.ShellExecute folds it into an errno.
func (OSSpawner) ShellOpen(path string, hidden bool) int {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return 0
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return int(windows.ERROR_FILE_NOT_FOUND)
	}

	show := uintptr(windows.SW_SHOWNORMAL)
	if hidden {
		show = uintptr(windows.SW_HIDE)
	}

	ret, _, _ := procShellExecuteW.Call(
		0,
		uintptr(unsafe.Pointer(verb)),
		uintptr(unsafe.Pointer(file)),
		0,
		0,
		show,
	)
	return int(ret)
}
