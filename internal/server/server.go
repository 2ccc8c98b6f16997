package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/swatchkit/internal/config"
	"github.com/ironsheep/swatchkit/internal/imaging"
	"github.com/ironsheep/swatchkit/internal/logger"
)

const (
	serverName      = "swatch-mcp"
	protocolVersion = "2024-11-05"
)

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Server handles MCP protocol communication
type Server struct {
	cache    *imaging.ImageCache
	analyzer *imaging.Analyzer
	version  string
	log      *log.Logger
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server whose analysis cache is sized by cfg. version is
// reported to clients during the initialize handshake.
func New(cfg config.Config, version string) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cache := imaging.NewImageCache()
	analyzer, err := imaging.NewAnalyzer(cache, cfg.CacheSize, cfg.SampleSize, cfg.PaletteSize)
	if err != nil {
		return nil, err
	}

	return &Server{
		cache:    cache,
		analyzer: analyzer,
		version:  version,
		log:      logger.ForComponent("server"),
	}, nil
}

// Run serves requests from stdin and writes responses to stdout until stdin
// is closed or ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from r and writes one response per
// request to w. Notifications get no response.
//
// Serve returns nil when r is exhausted and ctx.Err() as soon as ctx is
// done, even while waiting for input. The reading goroutine stays blocked on
// r until r returns; callers that own r should close it.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(w)

	s.log.Info("Serving", "version", s.version)
	for {
		var line []byte
		var ok bool
		select {
		case <-ctx.Done():
			s.log.Info("Canceled, shutting down")
			return ctx.Err()
		case line, ok = <-lines:
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if !ok {
			if err := <-scanErr; err != nil {
				return fmt.Errorf("scanner error: %w", err)
			}
			s.log.Info("Input closed, shutting down")
			return nil
		}
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("Failed to parse request", "error", err)
			resp = s.errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(ctx, &req)
		}

		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.Error("Failed to encode response", "error", err)
			}
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.log.Debug("Request", "method", req.Method, "id", req.ID)

	switch {
	case req.Method == "initialize":
		return s.handleInitialize(req)
	case strings.HasPrefix(req.Method, "notifications/"):
		return nil
	case req.Method == "tools/list":
		return s.handleToolsList(req)
	case req.Method == "tools/call":
		return s.handleToolsCall(ctx, req)
	case req.Method == "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return s.errorResponse(req.ID, codeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    serverName,
				"version": s.version,
			},
		},
	}
}
