package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/pyrefs/pyref-mcp/pkg/project"
	"github.com/pyrefs/pyref-mcp/pkg/types"
)

const defaultPylspPath = "pylsp"

var _ types.Client = &PylspClient{}

// PylspClient implements the Client interface for the pylsp language server
type PylspClient struct {
	pylspPath string
	pylspArgs []string
	cmd       *exec.Cmd
	conn      *jsonrpc2.Conn
	mu        sync.Mutex
	opened    map[uri.URI]bool
}

// NewPylspClient creates a new pylsp client
func NewPylspClient(pylspPath string, pylspArgs ...string) *PylspClient {
	if pylspPath == "" {
		pylspPath = defaultPylspPath
	}

	slog.Debug("Creating new pylsp client", "pylsp_path", pylspPath)

	return &PylspClient{
		pylspPath: pylspPath,
		pylspArgs: pylspArgs,
		opened:    make(map[uri.URI]bool),
	}
}

// Start starts the pylsp subprocess and performs the LSP handshake
func (c *PylspClient) Start(ctx context.Context, workspaceRoot string) error {
	slog.Debug("Starting pylsp client", "pylsp_path", c.pylspPath, "workspace_root", workspaceRoot)

	c.cmd = exec.CommandContext(ctx, c.pylspPath, c.pylspArgs...)
	c.cmd.Dir = workspaceRoot

	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := c.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	stream := jsonrpc2.NewBufferedStream(&stdioPipe{reader: stdout, writer: stdin}, jsonrpc2.VSCodeObjectCodec{})
	c.conn = jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(handleServerRequest))

	go func() {
		_, _ = io.Copy(os.Stderr, stderr)
	}()

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start pylsp command: %w", err)
	}
	slog.Debug("pylsp process started successfully", "pid", c.cmd.Process.Pid)

	if err := c.initialize(ctx, workspaceRoot); err != nil {
		_ = c.cmd.Process.Kill()
		return fmt.Errorf("failed to initialize pylsp client: %w", err)
	}
	slog.Debug("pylsp client initialized successfully")

	return nil
}

func (c *PylspClient) initialize(ctx context.Context, workspaceRoot string) error {
	params := protocol.InitializeParams{
		ProcessID: int32(os.Getpid()),
		RootURI:   uri.File(workspaceRoot),
		ClientInfo: &protocol.ClientInfo{
			Name:    project.Name,
			Version: project.Version,
		},
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				DocumentSymbol: &protocol.DocumentSymbolClientCapabilities{
					HierarchicalDocumentSymbolSupport: true,
				},
			},
		},
	}

	var result protocol.InitializeResult
	if err := c.conn.Call(ctx, protocol.MethodInitialize, params, &result); err != nil {
		return fmt.Errorf("failed to send initialize request: %w", err)
	}

	if err := c.conn.Notify(ctx, protocol.MethodInitialized, &protocol.InitializedParams{}); err != nil {
		return fmt.Errorf("failed to send initialized notification: %w", err)
	}

	return nil
}

// Stop shuts down the pylsp subprocess
func (c *PylspClient) Stop(ctx context.Context) error {
	if c.conn != nil {
		if err := c.conn.Call(ctx, protocol.MethodShutdown, nil, nil); err != nil {
			slog.Debug("Shutdown request failed", "error", err)
		}
		if err := c.conn.Notify(ctx, protocol.MethodExit, nil); err != nil {
			slog.Debug("Exit notification failed", "error", err)
		}
		_ = c.conn.Close()
	}

	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		_, _ = c.cmd.Process.Wait()
	}

	return nil
}

// ensureOpen sends didOpen for path once per client lifetime. pylsp only
// serves documentSymbol requests for documents it has seen opened.
func (c *PylspClient) ensureOpen(ctx context.Context, path string) error {
	docURI := uri.File(path)

	c.mu.Lock()
	if c.opened[docURI] {
		c.mu.Unlock()
		return nil
	}
	c.opened[docURI] = true
	c.mu.Unlock()

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	params := protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        docURI,
			LanguageID: protocol.LanguageIdentifier("python"),
			Version:    1,
			Text:       string(text),
		},
	}
	if err := c.conn.Notify(ctx, protocol.MethodTextDocumentDidOpen, params); err != nil {
		return fmt.Errorf("failed to send didOpen notification: %w", err)
	}

	return nil
}

// GetDocumentSymbols requests the symbol tree for path
func (c *PylspClient) GetDocumentSymbols(ctx context.Context, path string) ([]protocol.DocumentSymbol, error) {
	slog.Debug("Getting document symbols", "path", path)

	if err := c.ensureOpen(ctx, path); err != nil {
		return nil, err
	}

	params := protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri.File(path)},
	}

	var raw json.RawMessage
	if err := c.conn.Call(ctx, protocol.MethodTextDocumentDocumentSymbol, params, &raw); err != nil {
		return nil, fmt.Errorf("failed to get document symbols: %w", err)
	}

	symbols, err := decodeDocumentSymbols(raw)
	if err != nil {
		return nil, err
	}

	slog.Debug("Found document symbols", "count", len(symbols), "path", path)
	return symbols, nil
}

// decodeDocumentSymbols handles the three shapes of a documentSymbol
// response: null, DocumentSymbol[], or SymbolInformation[].
func decodeDocumentSymbols(raw json.RawMessage) ([]protocol.DocumentSymbol, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []protocol.DocumentSymbol{}, nil
	}

	var probe []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document symbols response: %w", err)
	}
	if len(probe) == 0 {
		return []protocol.DocumentSymbol{}, nil
	}

	// The flat format carries a location field instead of range/children.
	if _, flat := probe[0]["location"]; flat {
		var infos []protocol.SymbolInformation
		if err := json.Unmarshal(raw, &infos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal flat document symbols response: %w", err)
		}
		symbols := make([]protocol.DocumentSymbol, len(infos))
		for i, info := range infos {
			symbols[i] = protocol.DocumentSymbol{
				Name:           info.Name,
				Kind:           info.Kind,
				Range:          info.Location.Range,
				SelectionRange: info.Location.Range,
			}
		}
		return symbols, nil
	}

	var symbols []protocol.DocumentSymbol
	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hierarchical document symbols response: %w", err)
	}
	return symbols, nil
}

// handleServerRequest answers requests that pylsp sends back to the client.
// Notifications such as publishDiagnostics are ignored.
func handleServerRequest(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	if req.Notif {
		return nil, nil
	}

	switch req.Method {
	case "workspace/configuration":
		return []any{}, nil
	default:
		return nil, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not handled: %s", req.Method),
		}
	}
}

// stdioPipe adapts the subprocess stdin/stdout pair to io.ReadWriteCloser
type stdioPipe struct {
	reader io.ReadCloser
	writer io.WriteCloser
}

func (p *stdioPipe) Read(b []byte) (int, error)  { return p.reader.Read(b) }
func (p *stdioPipe) Write(b []byte) (int, error) { return p.writer.Write(b) }

func (p *stdioPipe) Close() error {
	_ = p.reader.Close()
	return p.writer.Close()
}
