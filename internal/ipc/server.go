package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/bounce/internal/engine"
)

// Engine is the tiling engine surface the server exposes.
type Engine interface {
	Enable()
	Disable()
	Toggle() bool
	IsEnabled() bool
	Retile() bool
	CenterAll() int
	PendingTasks() int
	Snapshot() engine.Snapshot
}

// ServerOptions configures a Server. Reload is optional; without it RELOAD
// fails.
type ServerOptions struct {
	SocketPath string
	Engine     Engine
	Reload     func() error
	ConfigPath string
	Logger     *slog.Logger
}

// connTimeout bounds how long one client connection may stay open.
const connTimeout = 30 * time.Second

// Server handles IPC requests from clients
type Server struct {
	socketPath string
	engine     Engine
	reload     func() error
	configPath string
	logger     *slog.Logger
	instanceID string
	startTime  time.Time

	listener     net.Listener
	conns        sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.SocketPath == "" {
		return nil, fmt.Errorf("IPC socket path is empty")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("IPC server needs an engine")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		socketPath: opts.SocketPath,
		engine:     opts.Engine,
		reload:     opts.Reload,
		configPath: opts.ConfigPath,
		logger:     logger,
		instanceID: uuid.NewString(),
		startTime:  time.Now(),
	}, nil
}

// InstanceID identifies this daemon run in status replies.
func (s *Server) InstanceID() string {
	return s.instanceID
}

// SocketPath returns the socket the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove a stale socket left by a crashed daemon.
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath, "instance", s.instanceID)

	go s.acceptLoop()
	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.stopping() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) stopping() bool {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()
	return s.shuttingDown
}

// handleConnection answers newline-delimited requests until the client
// closes the connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connTimeout))

	reader := bufio.NewReader(conn)
	for {
		data, err := reader.ReadBytes('\n')
		if len(data) == 0 {
			if err != nil && err != io.EOF {
				s.logger.Debug("IPC read error", "error", err)
			}
			return
		}

		var resp *Response
		req, perr := ParseRequest(data)
		if perr != nil {
			id := ""
			if req != nil {
				id = req.ID
			}
			resp = NewErrorResponse(id, fmt.Sprintf("invalid request: %v", perr))
		} else {
			resp = s.handleCommand(req)
		}

		out, merr := resp.Marshal()
		if merr != nil {
			s.logger.Error("failed to marshal IPC response", "error", merr)
			return
		}
		if _, werr := conn.Write(append(out, '\n')); werr != nil {
			s.logger.Debug("failed to send IPC response", "error", werr)
			return
		}

		if err != nil {
			return
		}
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	s.logger.Debug("IPC request", "command", req.Command, "id", req.ID)

	switch req.Command {
	case CommandGetStatus:
		return s.ok(req.ID, s.status())
	case CommandEnable:
		s.engine.Enable()
		return s.ok(req.ID, EnabledData{Enabled: s.engine.IsEnabled()})
	case CommandDisable:
		s.engine.Disable()
		return s.ok(req.ID, EnabledData{Enabled: s.engine.IsEnabled()})
	case CommandToggle:
		return s.ok(req.ID, EnabledData{Enabled: s.engine.Toggle()})
	case CommandRetile:
		return s.ok(req.ID, RetileData{Retiled: s.engine.Retile()})
	case CommandGetRegions:
		return s.ok(req.ID, regionsFromSnapshot(s.engine.Snapshot()))
	case CommandReload:
		return s.handleReload(req.ID)
	case CommandCenter:
		n := s.engine.CenterAll()
		return s.ok(req.ID, CenterData{Centered: n, Enabled: s.engine.IsEnabled()})
	default:
		return NewErrorResponse(req.ID, fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleReload(id string) *Response {
	if s.reload == nil {
		return NewErrorResponse(id, "reload is not supported by this daemon")
	}
	if err := s.reload(); err != nil {
		return NewErrorResponse(id, fmt.Sprintf("failed to reload config: %v", err))
	}
	s.logger.Info("config reloaded via IPC")
	return s.ok(id, nil)
}

func (s *Server) status() StatusData {
	snap := s.engine.Snapshot()
	return StatusData{
		InstanceID:    s.instanceID,
		Enabled:       snap.Enabled,
		Mode:          snap.Mode,
		WindowCount:   len(snap.Windows),
		PendingTasks:  s.engine.PendingTasks(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		ConfigPath:    s.configPath,
	}
}

func (s *Server) ok(id string, data any) *Response {
	resp, err := NewOKResponse(id, data)
	if err != nil {
		return NewErrorResponse(id, err.Error())
	}
	return resp
}

func regionsFromSnapshot(snap engine.Snapshot) RegionsData {
	out := RegionsData{
		Enabled:  snap.Enabled,
		Mode:     snap.Mode,
		WorkArea: Rect(snap.WorkArea),
		Regions:  make([]Region, 0, len(snap.Windows)),
	}
	for _, p := range snap.Windows {
		out.Regions = append(out.Regions, Region{Window: uint32(p.Window), Rect: Rect(p.Region)})
	}
	return out
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.conns.Wait()
	os.Remove(s.socketPath)
}
