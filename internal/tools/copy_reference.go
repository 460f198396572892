package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pyrefs/pyref-mcp/internal/clipboard"
	"github.com/pyrefs/pyref-mcp/internal/notify"
	"github.com/pyrefs/pyref-mcp/internal/reference"
	"github.com/pyrefs/pyref-mcp/internal/results"
	"github.com/pyrefs/pyref-mcp/pkg/types"
)

// CopyPythonReferenceTool handles copy python reference requests
type CopyPythonReferenceTool struct {
	client types.Client
	clip   clipboard.Writer
	config types.Config
}

// NewCopyPythonReferenceTool creates a new copy python reference tool
func NewCopyPythonReferenceTool(client types.Client, clip clipboard.Writer, config types.Config) *CopyPythonReferenceTool {
	return &CopyPythonReferenceTool{
		client: client,
		clip:   clip,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *CopyPythonReferenceTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolCopyPythonReference,
		mcp.WithDescription("Build the pytest-style reference path for the symbol at a cursor position in a Python file and copy it to the system clipboard"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the Python file")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Cursor line (1-indexed)")),
		mcp.WithNumber("character", mcp.Required(), mcp.Description("Cursor character (1-indexed)")),
	)
	return tool
}

// Handle processes the tool request
func (t *CopyPythonReferenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := mcp.ParseString(req, "file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path parameter is required"), nil
	}

	position, err := GetPosition(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	slog.Debug("MCP tool called",
		"tool", ToolCopyPythonReference,
		"file_path", filePath,
		"line", position.Line,
		"character", position.Character)

	recorder := &notify.Recorder{}
	builder := reference.NewBuilder(t.client, t.clip, recorder, t.config)

	result, err := builder.Copy(ctx, ResolvePath(filePath, t.config.WorkspaceRoot), position)
	if err != nil {
		slog.Error("Failed to copy reference", "tool", ToolCopyPythonReference, "file_path", filePath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to copy reference for %s: %v", filePath, err)), nil
	}

	toolResult := results.ReferenceResult{
		FilePath:  filePath,
		Line:      int(position.Line) + 1,
		Character: int(position.Character) + 1,
	}
	switch {
	case result == nil:
		toolResult.Message = noticeMessage(recorder, "No reference could be built.")
	case result.Copied:
		toolResult.Reference = result.Reference
		toolResult.Source = string(result.Source)
		toolResult.Copied = true
		toolResult.Message = fmt.Sprintf("Copied %q to the clipboard.", result.Reference)
	default:
		toolResult.Reference = result.Reference
		toolResult.Source = string(result.Source)
		toolResult.Message = noticeMessage(recorder, "Built the reference but could not write the clipboard.")
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
