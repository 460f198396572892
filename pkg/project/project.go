package project

// Project metadata, shared by the CLI and the MCP server handshake.
const (
	Name    = "pyref-mcp"
	Version = "0.1.0"
)
