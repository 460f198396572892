package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"go.lsp.dev/protocol"

	"github.com/pyrefs/pyref-mcp/internal/results"
	"github.com/pyrefs/pyref-mcp/pkg/types"
)

// ListSymbolsInFileTool handles list symbols in file requests
type ListSymbolsInFileTool struct {
	client types.Client
	config types.Config
}

// NewListSymbolsInFileTool creates a new list symbols in file tool
func NewListSymbolsInFileTool(client types.Client, config types.Config) *ListSymbolsInFileTool {
	return &ListSymbolsInFileTool{
		client: client,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *ListSymbolsInFileTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolListSymbolsInFile,
		mcp.WithDescription("List all symbols in a Python file, returning a list of symbols with hierarchical structure"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the Python file")),
	)
	return tool
}

// Handle processes the tool request
func (t *ListSymbolsInFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := mcp.ParseString(req, "file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path parameter is required"), nil
	}

	slog.Debug("MCP tool called", "tool", ToolListSymbolsInFile, "file_path", filePath)

	path := ResolvePath(filePath, t.config.WorkspaceRoot)
	documentSymbols, err := t.client.GetDocumentSymbols(ctx, path)
	if err != nil {
		slog.Error("Failed to get document symbols", "tool", ToolListSymbolsInFile, "file_path", filePath, "error", err)
		return mcp.NewToolResultError(
			fmt.Sprintf("Failed to get document symbols for file: %s: %v", filePath, err),
		), nil
	}

	relPath := RelativePath(path, t.config.WorkspaceRoot)
	toolResult := results.ListSymbolsInFileToolResult{
		FilePath:    filePath,
		FileSymbols: make([]results.FileSymbol, 0, len(documentSymbols)),
	}
	for _, docSym := range documentSymbols {
		toolResult.FileSymbols = append(toolResult.FileSymbols, convertDocumentSymbol(docSym, relPath))
	}
	if len(toolResult.FileSymbols) == 0 {
		toolResult.Message = "No symbols found in file. " +
			"This could mean that the file is missing, empty, or not a Python file."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d symbols in file.", len(toolResult.FileSymbols))
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// convertDocumentSymbol converts a DocumentSymbol to FileSymbol recursively
func convertDocumentSymbol(docSym protocol.DocumentSymbol, relPath string) results.FileSymbol {
	location := results.NewSymbolLocation(relPath, docSym.SelectionRange.Start)
	result := results.FileSymbol{
		Name:     docSym.Name,
		Kind:     results.NewSymbolKind(docSym.Kind),
		Location: location,
		Anchor:   location.ToAnchor(),
	}

	if len(docSym.Children) > 0 {
		result.Children = make([]results.FileSymbol, len(docSym.Children))
		for i, child := range docSym.Children {
			result.Children[i] = convertDocumentSymbol(child, relPath)
		}
	}

	return result
}
