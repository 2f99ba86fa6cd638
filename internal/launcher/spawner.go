package launcher

// Spawner starts external programs. OSSpawner is the real implementation;
// tests use MockSpawner.
type Spawner interface {
	// Spawn starts the executable at path without waiting for it to exit.
	// hidden suppresses the console window of console-subsystem targets.
	Spawn(path string, hidden bool) error

	// ShellOpen asks the shell to "open" path (typically a .lnk shortcut)
	// and returns the ShellExecute result code: values <= FailureThreshold
	// are failures.
	ShellOpen(path string, hidden bool) int
}

// ShellOpenOK is a representative success code for ShellOpen.
const ShellOpenOK = FailureThreshold + 1

// OSSpawner is the default Spawner for the current platform.
type OSSpawner struct{}

// NewOSSpawner creates a new OSSpawner instance
func NewOSSpawner() *OSSpawner {
	return &OSSpawner{}
}
