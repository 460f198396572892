package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pyrefs/pyref-mcp/internal/client"
	"github.com/pyrefs/pyref-mcp/internal/clipboard"
	"github.com/pyrefs/pyref-mcp/internal/tools"
	"github.com/pyrefs/pyref-mcp/pkg/project"
	"github.com/pyrefs/pyref-mcp/pkg/types"
)

var _ types.Server = &PyrefServer{}

// PyrefServer serves the reference tools over MCP stdio, backed by
// a pylsp subprocess.
type PyrefServer struct {
	mcpServer   *server.MCPServer
	pylspClient *client.PylspClient
	config      types.Config
}

// NewPyrefServer creates a new Pyref MCP server
func NewPyrefServer(config types.Config) *PyrefServer {
	mcpServer := server.NewMCPServer(project.Name, project.Version)
	pylspClient := client.NewPylspClient(config.PylspPath, config.PylspArgs...)

	return &PyrefServer{
		mcpServer:   mcpServer,
		pylspClient: pylspClient,
		config:      config,
	}
}

// Serve starts the pylsp client and serves MCP requests over stdio
// until the client disconnects.
func (s *PyrefServer) Serve(ctx context.Context) error {
	slog.Info("Starting Pyref MCP server",
		"workspace_root", s.config.WorkspaceRoot,
		"pylsp_path", s.config.PylspPath)

	if err := s.pylspClient.Start(ctx, s.config.WorkspaceRoot); err != nil {
		return fmt.Errorf("failed to start pylsp client: %w", err)
	}

	s.registerTools()

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}

	return nil
}

func (s *PyrefServer) registerTools() {
	getRefTool := tools.NewGetPythonReferenceTool(s.pylspClient, s.config)
	s.mcpServer.AddTool(getRefTool.GetTool(), getRefTool.Handle)

	copyRefTool := tools.NewCopyPythonReferenceTool(s.pylspClient, clipboard.System{}, s.config)
	s.mcpServer.AddTool(copyRefTool.GetTool(), copyRefTool.Handle)

	anchorTool := tools.NewGetPythonReferenceByAnchorTool(s.pylspClient, s.config)
	s.mcpServer.AddTool(anchorTool.GetTool(), anchorTool.Handle)

	listSymbolsTool := tools.NewListSymbolsInFileTool(s.pylspClient, s.config)
	s.mcpServer.AddTool(listSymbolsTool.GetTool(), listSymbolsTool.Handle)
}

// Shutdown gracefully shuts down the server
func (s *PyrefServer) Shutdown(ctx context.Context) error {
	if err := s.pylspClient.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop pylsp client: %w", err)
	}

	return nil
}
