package ipc

import (
	"bufio"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/bounce/internal/engine"
	"github.com/1broseidon/bounce/internal/platform"
)

type fakeEngine struct {
	mu      sync.Mutex
	enabled bool
	retiles int
	windows []engine.Placement
}

func (f *fakeEngine) Enable()  { f.mu.Lock(); f.enabled = true; f.mu.Unlock() }
func (f *fakeEngine) Disable() { f.mu.Lock(); f.enabled = false; f.mu.Unlock() }

func (f *fakeEngine) Toggle() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = !f.enabled
	return f.enabled
}

func (f *fakeEngine) IsEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

func (f *fakeEngine) Retile() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.enabled {
		return false
	}
	f.retiles++
	return true
}

func (f *fakeEngine) CenterAll() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = false
	return len(f.windows)
}

func (f *fakeEngine) PendingTasks() int { return 0 }

func (f *fakeEngine) Snapshot() engine.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return engine.Snapshot{
		Enabled:  f.enabled,
		Mode:     engine.Mode,
		WorkArea: platform.Rect{Width: 1000, Height: 600},
		Windows:  f.windows,
	}
}

func startServer(t *testing.T, eng Engine, reload func() error) (*Server, *Client) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "b.sock")
	srv, err := NewServer(ServerOptions{SocketPath: sock, Engine: eng, Reload: reload, ConfigPath: "/etc/bounce.yaml"})
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Stop)
	return srv, NewClientAt(sock)
}

func TestServer_StatusReportsInstance(t *testing.T) {
	eng := &fakeEngine{enabled: true, windows: []engine.Placement{{Window: 1}, {Window: 2}}}
	srv, client := startServer(t, eng, nil)

	status, err := client.GetStatus()
	require.NoError(t, err)

	assert.Equal(t, srv.InstanceID(), status.InstanceID)
	assert.NotEmpty(t, status.InstanceID)
	assert.True(t, status.Enabled)
	assert.Equal(t, "fibonacci", status.Mode)
	assert.Equal(t, 2, status.WindowCount)
	assert.Equal(t, "/etc/bounce.yaml", status.ConfigPath)
}

func TestServer_EnableDisableToggle(t *testing.T) {
	eng := &fakeEngine{}
	_, client := startServer(t, eng, nil)

	enabled, err := client.Enable()
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = client.Toggle()
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = client.SetEnabled(true)
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = client.Disable()
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.False(t, eng.IsEnabled())
}

func TestServer_Retile(t *testing.T) {
	eng := &fakeEngine{}
	_, client := startServer(t, eng, nil)

	retiled, err := client.Retile()
	require.NoError(t, err)
	assert.False(t, retiled, "disabled engine does not retile")

	eng.Enable()
	retiled, err = client.Retile()
	require.NoError(t, err)
	assert.True(t, retiled)
	assert.Equal(t, 1, eng.retiles)
}

func TestServer_Center(t *testing.T) {
	eng := &fakeEngine{enabled: true, windows: []engine.Placement{{Window: 1}, {Window: 2}}}
	_, client := startServer(t, eng, nil)

	data, err := client.Center()
	require.NoError(t, err)
	assert.Equal(t, &CenterData{Centered: 2, Enabled: false}, data)
	assert.False(t, eng.IsEnabled())
}

func TestServer_Regions(t *testing.T) {
	eng := &fakeEngine{enabled: true, windows: []engine.Placement{
		{Window: 7, Region: platform.Rect{X: 0, Y: 0, Width: 618, Height: 600}},
		{Window: 3, Region: platform.Rect{X: 618, Y: 0, Width: 382, Height: 600}},
	}}
	_, client := startServer(t, eng, nil)

	data, err := client.GetRegions()
	require.NoError(t, err)

	assert.Equal(t, Rect{Width: 1000, Height: 600}, data.WorkArea)
	assert.Equal(t, []Region{
		{Window: 7, Rect: Rect{X: 0, Y: 0, Width: 618, Height: 600}},
		{Window: 3, Rect: Rect{X: 618, Y: 0, Width: 382, Height: 600}},
	}, data.Regions)
}

func TestServer_Reload(t *testing.T) {
	calls := 0
	_, client := startServer(t, &fakeEngine{}, func() error {
		calls++
		if calls > 1 {
			return errors.New("gap_size: must be >= 0")
		}
		return nil
	})

	require.NoError(t, client.Reload())

	err := client.Reload()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gap_size")
}

func TestServer_ReloadUnsupported(t *testing.T) {
	_, client := startServer(t, &fakeEngine{}, nil)
	assert.Error(t, client.Reload())
}

func TestServer_UnknownAndMalformedRequests(t *testing.T) {
	srv, _ := startServer(t, &fakeEngine{}, nil)

	conn, err := net.Dial("unix", srv.SocketPath())
	require.NoError(t, err)
	defer conn.Close()
	reader := bufio.NewReader(conn)

	_, err = conn.Write([]byte(`{"id":"abc","command":"UNDO"}` + "\n"))
	require.NoError(t, err)
	line, err := reader.ReadBytes('\n')
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","status":"ERROR","error":"unknown command: UNDO"}`, string(line))

	// Same connection, next line.
	_, err = conn.Write([]byte("not json\n"))
	require.NoError(t, err)
	line, err = reader.ReadBytes('\n')
	require.NoError(t, err)
	assert.Contains(t, string(line), `"status":"ERROR"`)
	assert.Contains(t, string(line), "invalid request")
}

func TestClient_NoDaemon(t *testing.T) {
	client := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	err := client.Ping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is the daemon running?")
}

func TestNewRequest_UniqueIDs(t *testing.T) {
	a := NewRequest(CommandGetStatus)
	b := NewRequest(CommandGetStatus)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
}

func TestNewServer_Validation(t *testing.T) {
	_, err := NewServer(ServerOptions{Engine: &fakeEngine{}})
	assert.Error(t, err)
	_, err = NewServer(ServerOptions{SocketPath: "/tmp/x.sock"})
	assert.Error(t, err)
}
