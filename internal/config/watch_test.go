package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "gap_size: 4\n")

	res, err := LoadFromPath(path)
	require.NoError(t, err)

	w, err := NewWatcher(path, res)
	require.NoError(t, err)
	defer w.Close()

	changes := make(chan *LoadResult, 4)
	w.OnChange(func(r *LoadResult) { changes <- r })

	require.NoError(t, os.WriteFile(path, []byte("gap_size: 6\n"), 0644))

	select {
	case r := <-changes:
		assert.Equal(t, 6, r.Config.GapSize)
	case err := <-w.Errors():
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "gap_size: 4\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	called := make(chan struct{}, 1)
	w.OnChange(func(*LoadResult) { called <- struct{}{} })

	require.NoError(t, os.WriteFile(path, []byte("gap_size: -3\n"), 0644))

	select {
	case err := <-w.Errors():
		assert.Contains(t, err.Error(), "gap_size")
	case <-called:
		t.Fatal("invalid config must not be delivered")
	case <-time.After(3 * time.Second):
		t.Fatal("no error after invalid write")
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "gap_size: 4\n")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	called := make(chan struct{}, 1)
	w.OnChange(func(*LoadResult) { called <- struct{}{} })

	writeFile(t, filepath.Join(dir, "notes.txt"), "hello")

	select {
	case <-called:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
