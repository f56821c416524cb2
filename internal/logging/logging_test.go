package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		hasError bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, "/tmp/state/skritter/skritter.log", DefaultPath())
}

func TestNewStderrJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&Config{Level: slog.LevelInfo, Format: FormatJSON, RunID: "run-1"}, &buf)
	require.NoError(t, err)
	defer l.Close()

	l.Debug("hidden")
	l.Info("Pausing test...", "state", "test")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Pausing test...", rec["msg"])
	assert.Equal(t, "run-1", rec["run_id"])
	assert.Equal(t, "test", rec["state"])
}

func TestNewGeneratesRunID(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&Config{Format: FormatText}, &buf)
	require.NoError(t, err)
	assert.Len(t, l.RunID, 36)

	l.Info("hello")
	assert.Contains(t, buf.String(), "run_id="+l.RunID)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "skritter.log")
	l, err := New(&Config{Output: OutputFile, FilePath: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, path, l.Path)

	l.Info("Shutting down...")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Shutting down...")
}

func TestNewUnknownOutput(t *testing.T) {
	_, err := New(&Config{Output: "syslog"}, nil)
	assert.EqualError(t, err, `unknown log output "syslog"`)
}
