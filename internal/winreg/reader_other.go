//go:build !windows

package winreg

// SystemReader reports every value as missing on platforms without a registry.
type SystemReader struct{}

// NewSystemReader creates a reader that never finds anything.
func NewSystemReader() *SystemReader {
	return &SystemReader{}
}

// ReadString always returns ErrNotFound.
func (SystemReader) ReadString(_ Root, _, _ string) (string, error) {
	return "", ErrNotFound
}
