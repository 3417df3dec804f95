package daemon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/bounce/internal/config"
	"github.com/1broseidon/bounce/internal/engine"
	"github.com/1broseidon/bounce/internal/tiling"
)

type fakeTiler struct {
	applied []engine.Options
}

func (f *fakeTiler) Reconfigure(opts engine.Options) {
	f.applied = append(f.applied, opts)
}

type fakeKeys struct {
	calls      []string
	failRetile bool
}

func (f *fakeKeys) Unregister() { f.calls = append(f.calls, "unregister") }

func (f *fakeKeys) RegisterToggle(seq string) error {
	f.calls = append(f.calls, "toggle:"+seq)
	return nil
}

func (f *fakeKeys) RegisterRetile(seq string) error {
	f.calls = append(f.calls, "retile:"+seq)
	if f.failRetile {
		return errors.New("grab failed")
	}
	return nil
}

func (f *fakeKeys) RegisterCenter(seq string) error {
	f.calls = append(f.calls, "center:"+seq)
	return nil
}

type fakeLevel struct {
	levels []log.Level
}

func (f *fakeLevel) SetLevel(l log.Level) { f.levels = append(f.levels, l) }

func newTestReloader(current *config.Config) (*Reloader, *fakeTiler, *fakeKeys, *fakeLevel) {
	tiler, keys, level := &fakeTiler{}, &fakeKeys{}, &fakeLevel{}
	r := NewReloader(ReloaderConfig{
		Current: current,
		Tiler:   tiler,
		Keys:    keys,
		Level:   level,
	})
	return r, tiler, keys, level
}

func TestApply_ReconfiguresEngine(t *testing.T) {
	r, tiler, keys, level := newTestReloader(config.DefaultConfig())

	next := config.DefaultConfig()
	next.GapSize = 3
	next.ReclaimPolicy = "single"
	next.LogLevel = "debug"
	require.NoError(t, r.Apply(next))

	require.Len(t, tiler.applied, 1)
	assert.Equal(t, 3, tiler.applied[0].Padding)
	assert.Equal(t, tiling.MatchSingleNeighbor, tiler.applied[0].ReclaimPolicy)
	assert.NotNil(t, tiler.applied[0].Logger)
	assert.Empty(t, keys.calls, "hotkeys unchanged")
	assert.Equal(t, []log.Level{log.DebugLevel}, level.levels)
	assert.Same(t, next, r.Current())
}

func TestApply_RebindsChangedHotkeys(t *testing.T) {
	r, _, keys, _ := newTestReloader(config.DefaultConfig())

	next := config.DefaultConfig()
	next.RetileHotkey = "Mod4-r"
	require.NoError(t, r.Apply(next))

	assert.Equal(t, []string{
		"unregister",
		"toggle:" + next.ToggleHotkey,
		"retile:Mod4-r",
		"center:" + config.DefaultCenterHotkey,
	}, keys.calls)
}

func TestApply_RebindsChangedCenterHotkey(t *testing.T) {
	r, _, keys, _ := newTestReloader(config.DefaultConfig())

	next := config.DefaultConfig()
	next.CenterHotkey = ""
	require.NoError(t, r.Apply(next))

	assert.Equal(t, []string{"unregister", "toggle:" + next.ToggleHotkey}, keys.calls)
}

func TestApply_BindFailureStillApplies(t *testing.T) {
	r, tiler, keys, _ := newTestReloader(config.DefaultConfig())
	keys.failRetile = true

	next := config.DefaultConfig()
	next.RetileHotkey = "Mod4-r"
	err := r.Apply(next)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mod4-r")
	assert.Len(t, tiler.applied, 1)
	assert.Same(t, next, r.Current())
}

func TestApply_InvalidConfigKeepsPrevious(t *testing.T) {
	prev := config.DefaultConfig()
	r, tiler, _, _ := newTestReloader(prev)

	bad := config.DefaultConfig()
	bad.GapSize = -1
	require.Error(t, r.Apply(bad))
	require.Error(t, r.Apply(nil))

	assert.Empty(t, tiler.applied)
	assert.Same(t, prev, r.Current())
}

func TestApply_ForceDebugPinsLevel(t *testing.T) {
	level := &fakeLevel{}
	r := NewReloader(ReloaderConfig{Current: config.DefaultConfig(), Level: level, ForceDebug: true})

	next := config.DefaultConfig()
	next.LogLevel = "error"
	require.NoError(t, r.Apply(next))
	assert.Empty(t, level.levels)
}

func TestReload_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gap_size: 12\n"), 0644))

	tiler := &fakeTiler{}
	r := NewReloader(ReloaderConfig{Path: path, Current: config.DefaultConfig(), Tiler: tiler})
	require.NoError(t, r.Reload())

	assert.Equal(t, 12, r.Current().GapSize)
	require.Len(t, tiler.applied, 1)
	assert.Equal(t, 12, tiler.applied[0].Padding)
}

func TestReload_BadFileKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gap_size: [\n"), 0644))

	prev := config.DefaultConfig()
	tiler := &fakeTiler{}
	r := NewReloader(ReloaderConfig{Path: path, Current: prev, Tiler: tiler})
	require.Error(t, r.Reload())

	assert.Same(t, prev, r.Current())
	assert.Empty(t, tiler.applied)
}

func TestBindHotkeys_SkipsEmptyRetile(t *testing.T) {
	keys := &fakeKeys{}
	require.NoError(t, BindHotkeys(keys, config.DefaultConfig()))
	assert.Equal(t, []string{
		"toggle:" + config.DefaultToggleHotkey,
		"center:" + config.DefaultCenterHotkey,
	}, keys.calls)
}
