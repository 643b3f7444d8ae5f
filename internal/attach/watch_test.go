package attach

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_RegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	a := attachment(dir, "Cfg", "cfg.json", "")
	require.NoError(t, os.WriteFile(a.Source, []byte(`{"data": "one"}`), 0o644))

	d := NewDriver(nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 4)
	done := make(chan error, 1)

	go func() {
		done <- d.Watch(ctx, []Attachment{a}, 20*time.Millisecond, func(r Result) { results <- r })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(a.Source, []byte(`{"data": "two", "count": 2}`), 0o644))

	select {
	case r := <-results:
		require.True(t, r.Diagnostics.IsValid(), r.Diagnostics.All())
		assert.Equal(t, []string{a.Output}, r.Written)
	case <-time.After(5 * time.Second):
		t.Fatal("no regeneration after change")
	}

	src, err := os.ReadFile(a.Output)
	require.NoError(t, err)
	assert.Contains(t, string(src), `"two"`)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
