package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandEnable     CommandType = "ENABLE"
	CommandDisable    CommandType = "DISABLE"
	CommandToggle     CommandType = "TOGGLE"
	CommandRetile     CommandType = "RETILE"
	CommandGetRegions CommandType = "GET_REGIONS"
	CommandReload     CommandType = "RELOAD"
	CommandCenter     CommandType = "CENTER"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Request represents an IPC request from client to server. ID is echoed in
// the response.
type Request struct {
	ID      string          `json:"id"`
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Rect is a screen rectangle on the wire.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	InstanceID    string `json:"instance_id"`
	Enabled       bool   `json:"enabled"`
	Mode          string `json:"mode"`
	WindowCount   int    `json:"window_count"`
	PendingTasks  int    `json:"pending_tasks"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	ConfigPath    string `json:"config_path,omitempty"`
}

// Region is one tracked window and the region it owns, in tiling order.
type Region struct {
	Window uint32 `json:"window"`
	Rect
}

// RegionsData represents the data returned by GET_REGIONS
type RegionsData struct {
	Enabled  bool     `json:"enabled"`
	Mode     string   `json:"mode"`
	WorkArea Rect     `json:"work_area"`
	Regions  []Region `json:"regions"`
}

// EnabledData is returned by ENABLE, DISABLE and TOGGLE.
type EnabledData struct {
	Enabled bool `json:"enabled"`
}

// RetileData is returned by RETILE. Retiled is false when tiling is off.
type RetileData struct {
	Retiled bool `json:"retiled"`
}

// CenterData is returned by CENTER. Tiling is off afterwards.
type CenterData struct {
	Centered int  `json:"centered"`
	Enabled  bool `json:"enabled"`
}

// NewRequest builds a request with a fresh ID.
func NewRequest(cmd CommandType) *Request {
	return &Request{ID: uuid.NewString(), Command: cmd}
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(id string, data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		ID:     id,
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(id string, errMsg string) *Response {
	return &Response{
		ID:     id,
		Status: StatusError,
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return &req, fmt.Errorf("request has no command")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
