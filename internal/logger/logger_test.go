package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerBeforeInitDiscards(t *testing.T) {
	l := NewLogger("early")
	assert.NotPanics(t, func() {
		l.Info("nothing to see", zap.String("k", "v"))
		l.Warn("still nothing")
		l.Error("and again")
	})
	assert.Equal(t, "early", l.Tag())
}

func TestManagerWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	m, err := newManager(false, dir, nil, now)
	require.NoError(t, err)

	l := &Logger{tag: "api client", base: m.base.Named("api client")}
	l.Info("upload finished", zap.String("doc_id", "42"))
	require.NoError(t, m.base.Sync())
	require.NoError(t, m.logFile.Close())

	data, err := os.ReadFile(filepath.Join(dir, "docask_log_20240506_070809.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"upload finished"`)
	assert.Contains(t, string(data), `"doc_id":"42"`)
	assert.Contains(t, string(data), `"logger":"api client"`)
}

func TestManagerDevViewColorsLevels(t *testing.T) {
	var view bytes.Buffer

	m, err := newManager(true, "", &view, time.Now())
	require.NoError(t, err)

	l := &Logger{tag: "views", base: m.base.Named("views")}
	l.Warn("slow response")
	l.Error("boom")
	require.NoError(t, m.base.Sync())

	out := view.String()
	assert.Contains(t, out, "[yellow]WARN[-]")
	assert.Contains(t, out, "[red]ERROR[-]")
	assert.Contains(t, out, "slow response")
}

func TestManagerWithoutSinksIsNop(t *testing.T) {
	m, err := newManager(true, "", nil, time.Now())
	require.NoError(t, err)
	assert.Nil(t, m.logFile)
	assert.NotNil(t, m.base)
}

func TestManagerBadLogPath(t *testing.T) {
	_, err := newManager(false, filepath.Join(t.TempDir(), "missing", "dir"), nil, time.Now())
	assert.Error(t, err)
}
