package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"none", None, false},
		{"error", Error, false},
		{"warn", Warning, false},
		{"warning", Warning, false},
		{"info", Info, false},
		{"DEBUG", Debug, false},
		{"trace", Info, true},
		{"", Info, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			assert.NoError(t, err, "input %q", tt.in)
		}
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestFileLogger_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l := NewFileLogger(filepath.Join(dir, "logs"), Error)
	fixed := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	l.Errorf("request failed: %s", "boom")
	l.Errorf("second entry")
	require.NoError(t, l.Close())

	content, err := os.ReadFile(filepath.Join(dir, "logs", "log_2024-03-15.log"))
	require.NoError(t, err)
	assert.Equal(t,
		"[2024-03-15T10:30:00Z] ERROR: request failed: boom\n"+
			"[2024-03-15T10:30:00Z] ERROR: second entry\n",
		string(content))
}

func TestFileLogger_LazyOpen(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	l := NewFileLogger(logDir, Info)

	// Non-error levels never touch the filesystem.
	l.Infof("hello")
	l.Warnf("careful")
	l.Debugf("details")
	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "log dir should not exist before first error")
}

func TestFileLogger_SwallowsOpenFailure(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the log directory should be makes MkdirAll fail.
	blocker := filepath.Join(dir, "logs")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	l := NewFileLogger(blocker, Error)
	assert.NotPanics(t, func() {
		l.Errorf("this must not crash the run")
		l.Errorf("neither must this")
	})
	assert.NoError(t, l.Close())
}

func TestNop(t *testing.T) {
	var l Logger = Nop{}
	assert.NotPanics(t, func() {
		l.Errorf("a")
		l.Warnf("b")
		l.Infof("c")
		l.Debugf("d")
	})
}
