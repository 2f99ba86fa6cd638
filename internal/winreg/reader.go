// Package winreg reads string values from the Windows registry. Candidate
// sources depend on the Reader interface so the search order can be tested
// on any platform.
package winreg

import "errors"

// ErrNotFound is returned when the key or value does not exist, and on
// platforms without a registry.
var ErrNotFound = errors.New("registry value not found")

// Root is a predefined registry hive.
type Root int

const (
	CurrentUser Root = iota
	LocalMachine
)

func (r Root) String() string {
	switch r {
	case CurrentUser:
		return "HKEY_CURRENT_USER"
	case LocalMachine:
		return "HKEY_LOCAL_MACHINE"
	default:
		return "HKEY_UNKNOWN"
	}
}

// Reader reads a single string value.
type Reader interface {
	ReadString(root Root, subkey, value string) (string, error)
}

// Location formats root, subkey and value the way regedit shows them.
func Location(root Root, subkey, value string) string {
	return root.String() + `\` + subkey + `\` + value
}
