// Package server hosts the Nano Banana plugin nodes over the MCP (Model
// Context Protocol).
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate registered nodes
//   - tools/call: Execute a node with arguments
//   - ping: Health check
//
// # Nodes
//
// Each node is a Node value: a name, a description, a display category, a
// typed JSON input schema, and an entry-point function. Nodes are registered
// in a plain map from identifier to implementation; tools/list reports them
// in registration order.
//
//   - nano_banana_pad: compute padding to the nearest supported output size
//   - nano_banana_pad_apply: pad an image file and return/save the result
//   - nano_banana_generate: image+prompt call to a Gemini image model
//   - nano_banana_supported_sizes: dump the supported dimension table
//   - image_dimensions: width/height of an image file
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images, keyed by path and
// reused across tool calls for the lifetime of the process. Generation API
// responses are never cached.
//
// # Error Handling
//
// Node execution errors are returned as JSON-RPC error responses with code
// -32000 (or standard JSON-RPC codes for protocol-level failures). Invalid
// aspect ratio or resolution labels are rejected before any network call.
package server
