package mcp

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tilefit/internal/arrange"
	"github.com/1broseidon/tilefit/internal/config"
	"github.com/1broseidon/tilefit/internal/platform"
)

const (
	ServerName    = "tilefit"
	ServerVersion = "0.1.0"
)

var errNoBackend = errors.New("no window backend available (is DISPLAY set?)")

// Server is the MCP server exposing layout computation and window arrangement.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	backend   platform.Backend
	arranger  *arrange.Arranger
	logger    *log.Logger

	// mu serialises tool calls that touch the window system.
	mu sync.Mutex
}

// NewServer creates an MCP server. backend may be nil, in which case only
// compute_layout is usable.
func NewServer(cfg *config.Config, backend platform.Backend, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		config:  cfg,
		backend: backend,
		logger:  logger,
	}
	if backend != nil {
		s.arranger = arrange.New(backend, cfg, logger)
	}

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
		Name:        "compute_layout",
		Description: "Compute a uniform grid layout for a set of windows on a screen region. Returns the single target window size, which screen dimension constrained it, and the row-major top-left position of every cell. Pure computation; nothing is moved.",
	}, s.handleComputeLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List visible top-level application windows. By default only windows matching the configured titles are returned, in title order; set all to list every real window.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "arrange_windows",
		Description: "Arrange the configured windows into the configured grid on the primary display, once. With dry_run the computed placements are returned without moving anything. Per-window failures are reported without stopping the others.",
	}, s.handleArrangeWindows)
}
