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

// GetPythonReferenceByAnchorTool handles get python reference by anchor requests
type GetPythonReferenceByAnchorTool struct {
	client types.Client
	config types.Config
}

// NewGetPythonReferenceByAnchorTool creates a new get python reference by anchor tool
func NewGetPythonReferenceByAnchorTool(client types.Client, config types.Config) *GetPythonReferenceByAnchorTool {
	return &GetPythonReferenceByAnchorTool{
		client: client,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *GetPythonReferenceByAnchorTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolGetPythonReferenceByAnchor,
		mcp.WithDescription("Build the pytest-style reference path for a symbol identified by its anchor"),
		mcp.WithString(
			"symbol_anchor",
			mcp.Required(),
			mcp.Description("Symbol anchor, which is included in tool responses. Don't try to parse or generate this yourself."),
		),
	)
	return tool
}

// Handle processes the tool request
func (t *GetPythonReferenceByAnchorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	anchorStr := mcp.ParseString(req, "symbol_anchor", "")
	if anchorStr == "" {
		return mcp.NewToolResultError("symbol_anchor parameter is required"), nil
	}

	slog.Debug("MCP tool called", "tool", ToolGetPythonReferenceByAnchor, "symbol_anchor", anchorStr)

	anchor := results.SymbolAnchor(anchorStr)
	file, position, err := anchor.ToFilePosition()
	if err != nil {
		slog.Debug("Invalid anchor format",
			"tool", ToolGetPythonReferenceByAnchor,
			"symbol_anchor", anchorStr,
			"error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Invalid anchor format: %v", err)), nil
	}

	recorder := &notify.Recorder{}
	builder := reference.NewBuilder(t.client, &clipboard.Memory{}, recorder, t.config)

	result, err := builder.Build(ctx, ResolvePath(file, t.config.WorkspaceRoot), position)
	if err != nil {
		slog.Error("Failed to build reference",
			"tool", ToolGetPythonReferenceByAnchor,
			"symbol_anchor", anchorStr,
			"error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build reference for anchor %s: %v", anchorStr, err)), nil
	}

	toolResult := results.ReferenceResult{
		FilePath:  file,
		Line:      int(position.Line) + 1,
		Character: int(position.Character) + 1,
		Anchor:    anchorStr,
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
