package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/bananatools/nano-banana-mcp/internal/gemini"
	"github.com/bananatools/nano-banana-mcp/internal/imaging"
)

// Server hosts the Nano Banana nodes over the MCP protocol.
type Server struct {
	cache     *imaging.Cache
	generator *gemini.Client
	apiKey    string
	nodes     map[string]Node
	order     []string
}

// Config carries the server's environment-derived settings.
type Config struct {
	// APIKey is the default Gemini credential, used when a generate call
	// does not carry its own key.
	APIKey string

	// Generator overrides the production Gemini client; tests point it at
	// a local server. Nil means the production endpoint.
	Generator *gemini.Client
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

// New creates a server with all nodes registered.
func New(cfg Config) *Server {
	s := &Server{
		cache:     imaging.NewCache(),
		generator: cfg.Generator,
		apiKey:    cfg.APIKey,
	}
	if s.generator == nil {
		s.generator = gemini.NewClient()
	}
	s.nodes, s.order = buildRegistry()
	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout
func (s *Server) Run() error {
	scanner := bufio.NewScanner(os.Stdin)
	// Generate calls can carry whole images base64-encoded in their
	// arguments, so requests may run to several megabytes.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
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
				"name":    "nano-banana-mcp",
				"version": "0.1.0",
			},
		},
	}
}

// handleToolsList serves each registered node's metadata in registration order.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	tools := make([]map[string]interface{}, 0, len(s.order))
	for _, name := range s.order {
		n := s.nodes[name]
		tools = append(tools, map[string]interface{}{
			"name":        n.Name,
			"description": n.Description,
			"inputSchema": n.InputSchema,
			"category":    n.Category,
		})
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]interface{}{"tools": tools},
	}
}

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the node to invoke (e.g., "nano_banana_pad").
	Name string `json:"name"`

	// Arguments contains the node-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall dispatches a tools/call request through the node registry.
//
// The response wraps the node result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Node execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	node, ok := s.nodes[params.Name]
	if !ok {
		return s.errorResponse(req.ID, -32000, "Tool execution failed",
			fmt.Sprintf("unknown tool: %s", params.Name))
	}

	result, err := node.Handler(s, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
