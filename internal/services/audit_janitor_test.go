package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/subsidyhub/backend/internal/infrastructure/audit"
)

func openJanitorStore(t *testing.T) *audit.Store {
	t.Helper()

	store, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewAuditJanitor_SchedulesForAnyInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
	}{
		{name: "zero uses default", interval: 0},
		{name: "sub-second floors to one second", interval: 100 * time.Millisecond},
		{name: "regular interval", interval: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewAuditJanitor(openJanitorStore(t), zaptest.NewLogger(t), JanitorConfig{
				Interval: tt.interval,
			})

			assert.Len(t, j.cron.Entries(), 1, "prune job must be scheduled")
			assert.GreaterOrEqual(t, j.cfg.Interval, time.Second)
		})
	}
}

func TestAuditJanitor_PrunesOldEntries(t *testing.T) {
	store := openJanitorStore(t)

	require.NoError(t, store.Append(audit.Entry{
		ApplicationID: 1,
		Action:        audit.ActionFraudCheck,
		At:            time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, store.Append(audit.Entry{
		ApplicationID: 2,
		Action:        audit.ActionFraudCheck,
	}))

	j := NewAuditJanitor(store, zaptest.NewLogger(t), JanitorConfig{
		Interval:  time.Hour,
		Retention: 24 * time.Hour,
	})
	j.prune()

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ApplicationID)
}
