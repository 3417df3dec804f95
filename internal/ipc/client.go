package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/bounce/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default daemon socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for the daemon listening on socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}

	if resp.Status == StatusError {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) call(cmd CommandType, out any) error {
	resp, err := c.sendRequest(NewRequest(cmd))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Enable turns tiling on and reports the resulting state.
func (c *Client) Enable() (bool, error) {
	return c.enabledCall(CommandEnable)
}

// Disable turns tiling off and reports the resulting state.
func (c *Client) Disable() (bool, error) {
	return c.enabledCall(CommandDisable)
}

// Toggle flips tiling and reports the new state.
func (c *Client) Toggle() (bool, error) {
	return c.enabledCall(CommandToggle)
}

func (c *Client) enabledCall(cmd CommandType) (bool, error) {
	var data EnabledData
	if err := c.call(cmd, &data); err != nil {
		return false, err
	}
	return data.Enabled, nil
}

// SetEnabled enables or disables tiling.
func (c *Client) SetEnabled(enabled bool) (bool, error) {
	if enabled {
		return c.Enable()
	}
	return c.Disable()
}

// Retile asks the daemon for a full re-partition.
func (c *Client) Retile() (bool, error) {
	var data RetileData
	if err := c.call(CommandRetile, &data); err != nil {
		return false, err
	}
	return data.Retiled, nil
}

// Center stacks every window in the middle of the screen, turning tiling
// off, and reports how many windows were moved.
func (c *Client) Center() (*CenterData, error) {
	var data CenterData
	if err := c.call(CommandCenter, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetRegions retrieves the tracked windows and their regions in order.
func (c *Client) GetRegions() (*RegionsData, error) {
	var data RegionsData
	if err := c.call(CommandGetRegions, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	return c.call(CommandReload, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
