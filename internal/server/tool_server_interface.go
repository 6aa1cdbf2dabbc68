// Package server exposes the summarization engine over MCP and HTTP.
package server

// ToolServer defines the lifecycle shared by the MCP tool server and the
// HTTP API server.
type ToolServer interface {
	// Initialize wires handlers and prepares the transport.
	Initialize() error

	// Start serves requests until the transport closes or Stop is called.
	Start() error

	// Stop gracefully shuts down the server.
	Stop() error
}
