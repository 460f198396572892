package tools

import (
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"go.lsp.dev/protocol"
)

// Tool names
const (
	ToolGetPythonReference         = "get_python_reference"
	ToolCopyPythonReference        = "copy_python_reference"
	ToolGetPythonReferenceByAnchor = "get_python_reference_by_anchor"
	ToolListSymbolsInFile          = "list_symbols_in_file"
)

// ResolvePath makes file paths absolute relative to the workspace root
func ResolvePath(filePath, workspaceRoot string) string {
	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath)
	}
	return filepath.Join(workspaceRoot, filePath)
}

// RelativePath converts an absolute path to a path relative to the workspace root
func RelativePath(absolutePath, workspaceRoot string) string {
	if rel, err := filepath.Rel(workspaceRoot, absolutePath); err == nil {
		return rel
	}
	return filepath.Base(absolutePath)
}

// GetPosition extracts a display position (1-indexed) from an MCP request
// and converts it to LSP coordinates (0-indexed)
func GetPosition(req mcp.CallToolRequest) (protocol.Position, error) {
	line := int(mcp.ParseFloat64(req, "line", 0))
	character := int(mcp.ParseFloat64(req, "character", 0))

	if line < 1 || character < 1 {
		return protocol.Position{}, fmt.Errorf("line and character are 1-indexed and must be positive, got %d:%d", line, character)
	}

	return protocol.Position{
		Line:      uint32(line - 1),
		Character: uint32(character - 1),
	}, nil
}
