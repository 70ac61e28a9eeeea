package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestWatcher_Watch(t *testing.T) {
	tmpDir := t.TempDir()
	w := New()

	require.NoError(t, w.Watch(filepath.Join(tmpDir, "b.toml")))
	require.NoError(t, w.Watch(filepath.Join(tmpDir, "a.toml")))

	files := w.WatchedFiles()
	require.Len(t, files, 2)
	assert.Equal(t, "a.toml", filepath.Base(files[0]))

	require.NoError(t, w.Unwatch(filepath.Join(tmpDir, "a.toml")))
	assert.Len(t, w.WatchedFiles(), 1)
}

func TestWatcher_QueueEventCoalesces(t *testing.T) {
	w := New()
	base := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpRemove, Time: base})
	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: base.Add(time.Millisecond)})
	w.queueEvent(Event{Path: "/b", Op: OpCreate, Time: base})
	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: base.Add(time.Millisecond)})
	w.queueEvent(Event{Path: "/c", Op: OpWrite, Time: base})
	w.queueEvent(Event{Path: "/c", Op: OpRemove, Time: base.Add(time.Millisecond)})

	var got []Event
	w.OnChange(func(e Event) { got = append(got, e) })

	w.flush(base)
	require.Empty(t, got, "flushed before debounce")

	w.flush(base.Add(time.Second))
	ops := make(map[string]Operation)
	for _, e := range got {
		ops[e.Path] = e.Op
	}
	assert.Equal(t, map[string]Operation{"/a": OpWrite, "/b": OpCreate, "/c": OpRemove}, ops)
	assert.Len(t, got, 3)
}

func TestWatcher_HandlerPanic(t *testing.T) {
	w := New(WithDebounce(0))

	called := false
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(Event) { called = true })

	w.emitEvent(Event{Path: "/a", Op: OpWrite})
	assert.True(t, called, "second handler not called after panic")
}

func TestWatcher_StartStop(t *testing.T) {
	w := New()
	require.NoError(t, w.Watch(filepath.Join(t.TempDir(), "missing", "config.toml")))

	require.NoError(t, w.Start())
	require.NoError(t, w.Start(), "second Start")
	assert.True(t, w.IsRunning())

	w.Stop()
	w.Stop()
	assert.False(t, w.IsRunning())
}

func TestWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	other := filepath.Join(tmpDir, "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o644))

	w := New(WithDebounce(20 * time.Millisecond))
	events := make(chan Event, 16)
	w.OnChange(func(e Event) { events <- e })
	require.NoError(t, w.Watch(path))
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0o644))

	select {
	case e := <-events:
		assert.Equal(t, "config.toml", filepath.Base(e.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("no event within timeout")
	}
}
