package evil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordCommand(t *testing.T) {
	m := NewMetrics()
	m.RecordCommand("delete", 2*time.Millisecond, false)
	m.RecordCommand("delete", 4*time.Millisecond, true)
	m.RecordCommand("yank", time.Millisecond, false)

	stats := m.CommandStats("delete")
	require.NotNil(t, stats)
	assert.Equal(t, uint64(2), stats.Count)
	assert.Equal(t, uint64(1), stats.ErrorCount)
	assert.Equal(t, 2*time.Millisecond, stats.MinDuration)
	assert.Equal(t, 4*time.Millisecond, stats.MaxDuration)
	assert.Equal(t, 3*time.Millisecond, stats.Average())
	assert.InDelta(t, 50.0, stats.ErrorRate(), 0.001)

	assert.Nil(t, m.CommandStats("change"))

	snap := m.Snapshot()
	assert.Equal(t, uint64(3), snap.Commands)
	assert.Equal(t, uint64(1), snap.Errors)
	assert.Equal(t, 2, snap.CommandCount)
	assert.Equal(t, 7*time.Millisecond/3, snap.AverageDuration)
}

func TestMetricsTopCommands(t *testing.T) {
	m := NewMetrics()
	for range 3 {
		m.RecordCommand("move.wordForward", 0, false)
	}
	m.RecordCommand("yank", 0, false)
	m.RecordCommand("delete", 0, false)

	top := m.TopCommands(2)
	require.Len(t, top, 2)
	assert.Equal(t, "move.wordForward", top[0].Name)
	assert.Equal(t, "delete", top[1].Name, "ties sort by name")

	assert.Len(t, m.TopCommands(10), 3)
	assert.Empty(t, m.TopCommands(-1))
}

func TestMetricsKeysAndReset(t *testing.T) {
	m := NewMetrics()
	m.RecordKey(false)
	m.RecordKey(true)
	m.RecordCommand("x", time.Millisecond, false)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.Keys)
	assert.Equal(t, uint64(1), snap.Passthrough)

	m.Reset()
	snap = m.Snapshot()
	assert.Zero(t, snap.Keys)
	assert.Zero(t, snap.Commands)
	assert.Zero(t, snap.AverageDuration)
	assert.Empty(t, m.TopCommands(5))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "handled", Handled.String())
	assert.Equal(t, "passthrough", PassThrough.String())
}
