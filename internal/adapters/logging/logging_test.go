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

func TestNewRenamesCoreKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Info("stake submitted", slog.String("kind", "stake"))
	logger.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stake submitted", entry["message"])
	assert.Equal(t, "INFO", entry["severity"])
	assert.Equal(t, "stk", entry["service"])
	assert.Equal(t, "stake", entry["kind"])
	assert.Contains(t, entry, "timestamp")
	assert.NotContains(t, entry, "msg")
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "stk.log")
	logger, closeFn, err := Setup(Options{Path: path, Level: "debug"})
	require.NoError(t, err)

	logger.Debug("resync applied")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"resync applied"`)
	assert.Contains(t, string(data), `"severity":"DEBUG"`)
}

func TestSetupWithoutPathDiscards(t *testing.T) {
	t.Parallel()

	logger, closeFn, err := Setup(Options{})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closeFn())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{raw: "", want: slog.LevelInfo},
		{raw: "DEBUG", want: slog.LevelDebug},
		{raw: "warning", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "loud", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseLevel(tc.raw)
		if tc.wantErr {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}
