package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ironsheep/indic-infographic-mcp/internal/infographic"
	"github.com/ironsheep/indic-infographic-mcp/internal/logging"
	"github.com/ironsheep/indic-infographic-mcp/internal/ocr"
)

// ServerName is reported in the initialize handshake.
const ServerName = "indic-infographic-mcp"

// Server handles MCP protocol communication
type Server struct {
	generator *infographic.Generator
	verifier  *ocr.Verifier
	ocrInfo   ocr.Info
	outputDir string
	version   string
	log       *slog.Logger
}

// Options configures a Server.
type Options struct {
	// OutputDir receives infographics when a tool call sets "save".
	// Saving is refused when it is empty.
	OutputDir string

	// Version is reported in serverInfo.
	Version string

	// OCR backs the verify tool. Nil disables recognition; geometry checks
	// still run.
	OCR     ocr.Engine
	OCRInfo ocr.Info
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

// New creates a new MCP server instance
func New(gen *infographic.Generator, opts Options) *Server {
	s := &Server{
		generator: gen,
		ocrInfo:   opts.OCRInfo,
		outputDir: opts.OutputDir,
		version:   opts.Version,
		log:       logging.For(logging.ComponentMCP),
	}
	if s.version == "" {
		s.version = "dev"
	}
	if opts.OCR != nil {
		s.verifier = ocr.NewVerifier(opts.OCR, ocr.DefaultThreshold)
	}
	return s
}

// Run serves MCP on stdin and stdout until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from in and writes responses to
// out until in is exhausted or ctx is canceled.
//
// Reading happens on a separate goroutine so cancellation is noticed while a
// read is blocked. That goroutine exits once the pending read returns.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	lines, scanErr := s.readLines(ctx, in)
	encoder := json.NewEncoder(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			line []byte
			ok   bool
		)
		select {
		case <-ctx.Done():
			s.log.Info("shutting down", "reason", context.Cause(ctx))
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			// The reader stops early only on cancellation and then sends no
			// scan error.
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := <-scanErr; err != nil {
				return fmt.Errorf("scanner error: %w", err)
			}
			return nil
		}
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("failed to parse request", "error", err)
			if err := encoder.Encode(s.errorResponse(nil, -32700, "Parse error", err.Error())); err != nil {
				s.log.Error("failed to encode response", "error", err)
			}
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.Error("failed to encode response", "error", err)
			}
		}
	}
}

// readLines scans in on its own goroutine. The line channel is closed when
// in is exhausted, after the scan error (nil at EOF) has been sent.
func (s *Server) readLines(ctx context.Context, in io.Reader) (<-chan []byte, <-chan error) {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		// Rendered images travel back base64-encoded in verify calls.
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 32*1024*1024)

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

	return lines, scanErr
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.log.Debug("request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		},
	}
}
