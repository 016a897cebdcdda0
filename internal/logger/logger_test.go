package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	tests := map[string]struct {
		verbose   bool
		wantDebug bool
	}{
		"quiet drops debug":   {verbose: false, wantDebug: false},
		"verbose keeps debug": {verbose: true, wantDebug: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tc.verbose)

			l.Infof("decoded %d bookmarks", 3)
			l.Warn("missing root")
			l.Errorf("encode failed: %v", "disk full")
			l.Debugf("node %s", "dl")

			out := buf.String()
			assert.Contains(t, out, "INFO:  ")
			assert.Contains(t, out, "decoded 3 bookmarks")
			assert.Contains(t, out, "WARN:  ")
			assert.Contains(t, out, "missing root")
			assert.Contains(t, out, "ERROR: ")
			assert.Contains(t, out, "encode failed: disk full")
			assert.Equal(t, tc.wantDebug, bytes.Contains(buf.Bytes(), []byte("node dl")))
		})
	}
}

func TestNewLoggerWritesFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "bookmark.log")

	var console bytes.Buffer
	l, err := NewLogger(logPath, &console, false)
	require.NoError(t, err)

	l.Info("conversion started")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "conversion started")
	assert.Contains(t, console.String(), "conversion started")
}

func TestNoop(t *testing.T) {
	l := Noop()
	l.Error("ignored")
	assert.NoError(t, l.Close())
}
