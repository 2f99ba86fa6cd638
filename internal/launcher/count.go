package launcher

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	MinRepeat     = 1
	MaxRepeat     = 10
	DefaultRepeat = 2
)

// ClampRepeat returns n when it lies in [MinRepeat, MaxRepeat] and
// DefaultRepeat otherwise.
func ClampRepeat(n int) int {
	if n < MinRepeat || n > MaxRepeat {
		return DefaultRepeat
	}
	return n
}

// RepeatCount derives the launch count from an executable file name:
// "3.exe" launches three times. The stem must be a plain decimal number in
// range; anything else yields DefaultRepeat.
func RepeatCount(name string) int {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	n, err := strconv.ParseUint(stem, 10, 32)
	if err != nil {
		return DefaultRepeat
	}
	if n > MaxRepeat {
		return DefaultRepeat
	}
	return ClampRepeat(int(n))
}

// ExecutableRepeatCount applies RepeatCount to the running program.
func ExecutableRepeatCount() int {
	exe, err := os.Executable()
	if err != nil {
		return DefaultRepeat
	}
	return RepeatCount(exe)
}
