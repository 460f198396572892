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

// GetPythonReferenceTool handles get python reference requests
type GetPythonReferenceTool struct {
	client types.Client
	config types.Config
}

// NewGetPythonReferenceTool creates a new get python reference tool
func NewGetPythonReferenceTool(client types.Client, config types.Config) *GetPythonReferenceTool {
	return &GetPythonReferenceTool{
		client: client,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *GetPythonReferenceTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolGetPythonReference,
		mcp.WithDescription("Build the pytest-style reference path (module::Class::method) for the symbol at a cursor position in a Python file, without copying it"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the Python file")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Cursor line (1-indexed)")),
		mcp.WithNumber("character", mcp.Required(), mcp.Description("Cursor character (1-indexed)")),
	)
	return tool
}

// Handle processes the tool request
func (t *GetPythonReferenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := mcp.ParseString(req, "file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path parameter is required"), nil
	}

	position, err := GetPosition(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	slog.Debug("MCP tool called",
		"tool", ToolGetPythonReference,
		"file_path", filePath,
		"line", position.Line,
		"character", position.Character)

	recorder := &notify.Recorder{}
	builder := reference.NewBuilder(t.client, &clipboard.Memory{}, recorder, t.config)

	result, err := builder.Build(ctx, ResolvePath(filePath, t.config.WorkspaceRoot), position)
	if err != nil {
		slog.Error("Failed to build reference", "tool", ToolGetPythonReference, "file_path", filePath, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build reference for %s: %v", filePath, err)), nil
	}

	toolResult := results.ReferenceResult{
		FilePath:  filePath,
		Line:      int(position.Line) + 1,
		Character: int(position.Character) + 1,
	}
	if result == nil {
		toolResult.Message = noticeMessage(recorder, "No reference could be built.")
	} else {
		toolResult.Reference = result.Reference
		toolResult.Source = string(result.Source)
		toolResult.Message = fmt.Sprintf("Built reference from the %s search.", result.Source)
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// noticeMessage prefers the builder's own notice over a generic fallback
func noticeMessage(recorder *notify.Recorder, fallback string) string {
	if notice, ok := recorder.Last(); ok {
		return notice.Message
	}
	return fallback
}
