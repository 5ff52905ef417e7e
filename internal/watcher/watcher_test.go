package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "promptHistory.json")

	events := make(chan Event, 8)
	w, err := New(target, func(ev Event) { events <- ev })
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(target, []byte(`[]`), 0600))

	select {
	case ev := <-events:
		assert.Equal(t, Changed, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for write")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "promptHistory.json")

	events := make(chan Event, 8)
	w, err := New(target, func(ev Event) { events <- ev })
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0600))

	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v", ev)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MissingParent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "slot.json"), nil)
	require.NoError(t, err)
	assert.Error(t, w.Start())
	assert.NoError(t, w.Stop())
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "slot.json"), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "changed", Changed.String())
	assert.Equal(t, "deleted", Deleted.String())
}
