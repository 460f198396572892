package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"

	"github.com/pyrefs/pyref-mcp/internal/clipboard"
	"github.com/pyrefs/pyref-mcp/internal/results"
	"github.com/pyrefs/pyref-mcp/pkg/types"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name          string
		filePath      string
		workspaceRoot string
		expected      string
	}{
		{
			name:          "Absolute path",
			filePath:      "/ws/pkg/mod.py",
			workspaceRoot: "/ws",
			expected:      "/ws/pkg/mod.py",
		},
		{
			name:          "Relative path",
			filePath:      "pkg/mod.py",
			workspaceRoot: "/ws",
			expected:      "/ws/pkg/mod.py",
		},
		{
			name:          "Current directory relative",
			filePath:      "./mod.py",
			workspaceRoot: "/ws",
			expected:      "/ws/mod.py",
		},
		{
			name:          "Parent directory relative",
			filePath:      "../mod.py",
			workspaceRoot: "/ws",
			expected:      "/mod.py",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolvePath(tt.filePath, tt.workspaceRoot))
		})
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		name          string
		absolutePath  string
		workspaceRoot string
		expected      string
	}{
		{
			name:          "Inside workspace",
			absolutePath:  "/ws/pkg/mod.py",
			workspaceRoot: "/ws",
			expected:      "pkg/mod.py",
		},
		{
			name:          "Workspace root itself",
			absolutePath:  "/ws",
			workspaceRoot: "/ws",
			expected:      ".",
		},
		{
			name:          "Outside workspace",
			absolutePath:  "/tmp/scratch.py",
			workspaceRoot: "/ws",
			expected:      "../tmp/scratch.py",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RelativePath(tt.absolutePath, tt.workspaceRoot))
		})
	}
}

func TestGetPosition(t *testing.T) {
	tests := []struct {
		name        string
		arguments   map[string]any
		expected    protocol.Position
		expectError bool
	}{
		{
			name: "Valid position is converted to LSP coordinates",
			arguments: map[string]any{
				"line":      float64(10),
				"character": float64(5),
			},
			expected: protocol.Position{Line: 9, Character: 4},
		},
		{
			name: "First line and character",
			arguments: map[string]any{
				"line":      float64(1),
				"character": float64(1),
			},
			expected: protocol.Position{Line: 0, Character: 0},
		},
		{
			name: "Zero line is rejected",
			arguments: map[string]any{
				"line":      float64(0),
				"character": float64(5),
			},
			expectError: true,
		},
		{
			name:        "Missing arguments are rejected",
			arguments:   map[string]any{},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{}
			request.Params.Arguments = tt.arguments

			position, err := GetPosition(request)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, position)
		})
	}
}

// fakeClient serves a canned symbol tree instead of talking to pylsp
type fakeClient struct {
	symbols []protocol.DocumentSymbol
	err     error
}

func (f *fakeClient) Start(ctx context.Context, workspaceRoot string) error { return nil }
func (f *fakeClient) Stop(ctx context.Context) error                        { return nil }

func (f *fakeClient) GetDocumentSymbols(ctx context.Context, path string) ([]protocol.DocumentSymbol, error) {
	return f.symbols, f.err
}

func testModSymbols() []protocol.DocumentSymbol {
	mkRange := func(startLine, endLine uint32) protocol.Range {
		return protocol.Range{
			Start: protocol.Position{Line: startLine, Character: 0},
			End:   protocol.Position{Line: endLine, Character: 80},
		}
	}
	return []protocol.DocumentSymbol{
		{
			Name:           "TestThing",
			Kind:           protocol.SymbolKindClass,
			Range:          mkRange(0, 5),
			SelectionRange: mkRange(0, 0),
			Children: []protocol.DocumentSymbol{
				{Name: "test_it", Kind: protocol.SymbolKindMethod, Range: mkRange(1, 2), SelectionRange: mkRange(1, 1)},
				{Name: "test_other", Kind: protocol.SymbolKindMethod, Range: mkRange(4, 5), SelectionRange: mkRange(4, 4)},
			},
		},
		{Name: "helper", Kind: protocol.SymbolKindFunction, Range: mkRange(8, 9), SelectionRange: mkRange(8, 8)},
	}
}

func testConfig(t *testing.T) types.Config {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "pyws"))
	require.NoError(t, err)
	return types.Config{WorkspaceRoot: root}
}

// toolResultJSON extracts and unmarshals the text payload of a tool result
func toolResultJSON(t *testing.T, result *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(text.Text), v))
}

func TestGetPythonReferenceToolHandle(t *testing.T) {
	tool := NewGetPythonReferenceTool(&fakeClient{symbols: testModSymbols()}, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"file_path": "pkg/sub/test_mod.py",
		"line":      float64(3),
		"character": float64(9),
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)

	var refResult results.ReferenceResult
	toolResultJSON(t, result, &refResult)
	assert.Equal(t, "pkg/sub/test_mod::TestThing::test_it", refResult.Reference)
	assert.Equal(t, "hierarchy", refResult.Source)
	assert.False(t, refResult.Copied)
}

func TestGetPythonReferenceToolRequiresFilePath(t *testing.T) {
	tool := NewGetPythonReferenceTool(&fakeClient{}, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"line":      float64(1),
		"character": float64(1),
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestCopyPythonReferenceToolHandle(t *testing.T) {
	clip := &clipboard.Memory{}
	tool := NewCopyPythonReferenceTool(&fakeClient{symbols: testModSymbols()}, clip, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"file_path": "pkg/sub/test_mod.py",
		"line":      float64(3),
		"character": float64(9),
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)

	var refResult results.ReferenceResult
	toolResultJSON(t, result, &refResult)
	assert.Equal(t, "pkg/sub/test_mod::TestThing::test_it", refResult.Reference)
	assert.True(t, refResult.Copied)
	assert.Equal(t, refResult.Reference, clip.Text)
}

func TestCopyPythonReferenceToolNonPythonFile(t *testing.T) {
	clip := &clipboard.Memory{}
	tool := NewCopyPythonReferenceTool(&fakeClient{}, clip, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"file_path": "notes.txt",
		"line":      float64(1),
		"character": float64(1),
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)

	var refResult results.ReferenceResult
	toolResultJSON(t, result, &refResult)
	assert.Empty(t, refResult.Reference)
	assert.False(t, refResult.Copied)
	assert.Contains(t, refResult.Message, "not a Python file")
	assert.False(t, clip.Written)
}

func TestGetPythonReferenceByAnchorToolHandle(t *testing.T) {
	tool := NewGetPythonReferenceByAnchorTool(&fakeClient{symbols: testModSymbols()}, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"symbol_anchor": "py://pkg/sub/test_mod.py#2:9",
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)

	var refResult results.ReferenceResult
	toolResultJSON(t, result, &refResult)
	assert.Equal(t, "pkg/sub/test_mod::TestThing::test_it", refResult.Reference)
}

func TestGetPythonReferenceByAnchorToolInvalidAnchor(t *testing.T) {
	tool := NewGetPythonReferenceByAnchorTool(&fakeClient{}, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"symbol_anchor": "go://pkg/mod.py#1:1",
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListSymbolsInFileToolHandle(t *testing.T) {
	tool := NewListSymbolsInFileTool(&fakeClient{symbols: testModSymbols()}, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"file_path": "pkg/sub/test_mod.py",
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)

	var listResult results.ListSymbolsInFileToolResult
	toolResultJSON(t, result, &listResult)
	require.Len(t, listResult.FileSymbols, 2)
	assert.Equal(t, "TestThing", listResult.FileSymbols[0].Name)
	assert.Equal(t, results.SymbolKindClass, listResult.FileSymbols[0].Kind)
	require.Len(t, listResult.FileSymbols[0].Children, 2)
	assert.Equal(t, "test_it", listResult.FileSymbols[0].Children[0].Name)
	assert.Equal(t, results.SymbolAnchor("py://pkg/sub/test_mod.py#2:1"), listResult.FileSymbols[0].Children[0].Anchor)
}

func TestListSymbolsInFileToolEmpty(t *testing.T) {
	tool := NewListSymbolsInFileTool(&fakeClient{}, testConfig(t))

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]any{
		"file_path": "a/b.py",
	}

	result, err := tool.Handle(context.Background(), request)
	require.NoError(t, err)

	var listResult results.ListSymbolsInFileToolResult
	toolResultJSON(t, result, &listResult)
	assert.Empty(t, listResult.FileSymbols)
	assert.Contains(t, listResult.Message, "No symbols found")
}
