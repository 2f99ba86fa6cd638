package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates logger with console writer", func(t *testing.T) {
		logger := NewLogger(Config{Level: "info", NoColor: true})
		assert.NotNil(t, logger)
	})

	t.Run("creates logger with file writer", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "qlaunch.log")

		logger := NewLogger(Config{Level: "info", LogFile: logFile, Quiet: true})
		require.NotNil(t, logger)

		logger.Info().Msg("test")

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "test")
	})

	t.Run("quiet without file discards", func(t *testing.T) {
		logger := NewLogger(Config{Level: "debug", Quiet: true})
		require.NotNil(t, logger)
		logger.Debug().Msg("dropped")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"invalid", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input).String())
		})
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Info().Str("source", "override").Msg("probe hit")

	assert.Contains(t, buf.String(), "probe hit")
	assert.Contains(t, buf.String(), "override")
}
