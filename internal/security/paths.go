package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxPathLength bounds any path accepted from the user or the store.
// Long-path aware Windows APIs accept up to 32767 UTF-16 units.
const MaxPathLength = 32767

// ValidatePath performs general path validation
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes: %q", path)
	}

	if len(path) > MaxPathLength {
		return fmt.Errorf("path too long: %d characters", len(path))
	}

	return nil
}

// SanitizePath cleans a path typed or pasted by the user. Surrounding
// whitespace and the double quotes Explorer adds on "Copy as path" are
// removed before cleaning.
func SanitizePath(path string) string {
	cleaned := strings.TrimSpace(path)
	if len(cleaned) >= 2 && cleaned[0] == '"' && cleaned[len(cleaned)-1] == '"' {
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}
	if cleaned == "" {
		return ""
	}

	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	return filepath.Clean(cleaned)
}

// HasExtension reports whether path ends in ext, ignoring ASCII case.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
