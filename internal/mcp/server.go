package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/bounce/internal/ipc"
)

const (
	ServerName    = "bounce"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools need.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	SetEnabled(enabled bool) (bool, error)
	Retile() (bool, error)
	GetRegions() (*ipc.RegionsData, error)
}

// Server exposes the tiling daemon to MCP clients.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates an MCP server that forwards tool calls to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "tiling_status",
		Description: "Report whether the bounce daemon is running, whether tiling is enabled and how many windows it manages.",
	}, s.handleTilingStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_tiling",
		Description: "Enable or disable golden-ratio tiling. Enabling retiles every eligible window on the current desktop.",
	}, s.handleSetTiling)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "retile",
		Description: "Re-partition the work area among all tracked windows. Does nothing while tiling is disabled.",
	}, s.handleRetile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_regions",
		Description: "List the tracked windows in tiling order with the region each one occupies.",
	}, s.handleListRegions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview_layout",
		Description: "Compute the golden-ratio regions for a given number of windows without moving anything. Uses the daemon's work area when no size is given.",
	}, s.handlePreviewLayout)
}
