package security

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid", `C:\Program Files\Tencent\WeChat\WeChat.exe`, false},
		{"empty", "", true},
		{"null byte", "C:\\a\x00b.exe", true},
		{"too long", strings.Repeat("a", MaxPathLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims spaces", "  /opt/app/bin  ", filepath.Clean("/opt/app/bin")},
		{"strips quotes", `"/opt/app/bin"`, filepath.Clean("/opt/app/bin")},
		{"strips quotes and inner spaces", `" /opt/app "`, filepath.Clean("/opt/app")},
		{"cleans dots", "/opt/app/../app/bin", filepath.Clean("/opt/app/bin")},
		{"empty", "   ", ""},
		{"only quotes", `""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizePath(tt.input))
		})
	}
}

func TestHasExtension(t *testing.T) {
	assert.True(t, HasExtension("WeChat.exe", ".exe"))
	assert.True(t, HasExtension("WECHAT.EXE", ".exe"))
	assert.False(t, HasExtension("WeChat.exe.txt", ".exe"))
	assert.False(t, HasExtension("WeChat", ".exe"))
}
