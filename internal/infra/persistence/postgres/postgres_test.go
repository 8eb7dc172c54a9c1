package postgres

import (
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"toolbox/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolWaitReport(t *testing.T) {
	prev := sql.DBStats{WaitCount: 10, WaitDuration: time.Second}

	t.Run("no new waits", func(t *testing.T) {
		_, _, waited := poolWaitReport(prev, prev)
		assert.False(t, waited)
	})

	t.Run("short waits are debug", func(t *testing.T) {
		cur := sql.DBStats{WaitCount: 12, WaitDuration: time.Second + 10*time.Millisecond, InUse: 4}

		level, attrs, waited := poolWaitReport(prev, cur)
		require.True(t, waited)
		assert.Equal(t, slog.LevelDebug, level)
		assert.Contains(t, attrs, slog.Duration("avgWait", 5*time.Millisecond))
		assert.Contains(t, attrs, slog.Int("inUseConns", 4))
	})

	t.Run("long waits warn", func(t *testing.T) {
		cur := sql.DBStats{WaitCount: 11, WaitDuration: time.Second + dbPoolWarnDurationThreshold}

		level, _, waited := poolWaitReport(prev, cur)
		require.True(t, waited)
		assert.Equal(t, slog.LevelWarn, level)
	})
}

func TestOpen_RequiresPostgresConfig(t *testing.T) {
	_, err := Open(&config.Config{}, slog.Default())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres configuration is missing")
}
