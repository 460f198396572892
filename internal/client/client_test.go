package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func TestNewPylspClientDefaultsPath(t *testing.T) {
	client := NewPylspClient("")
	assert.Equal(t, defaultPylspPath, client.pylspPath)

	client = NewPylspClient("/opt/venv/bin/pylsp", "--check-parent-process")
	assert.Equal(t, "/opt/venv/bin/pylsp", client.pylspPath)
	assert.Equal(t, []string{"--check-parent-process"}, client.pylspArgs)
}

func TestDecodeDocumentSymbols(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expectError bool
		expected    []protocol.DocumentSymbol
	}{
		{
			name:     "Null response",
			raw:      `null`,
			expected: []protocol.DocumentSymbol{},
		},
		{
			name:     "Empty array",
			raw:      `[]`,
			expected: []protocol.DocumentSymbol{},
		},
		{
			name: "Hierarchical format",
			raw: `[{
				"name": "TestThing",
				"kind": 5,
				"range": {"start": {"line": 0, "character": 0}, "end": {"line": 5, "character": 0}},
				"selectionRange": {"start": {"line": 0, "character": 6}, "end": {"line": 0, "character": 15}},
				"children": [{
					"name": "test_it",
					"kind": 6,
					"range": {"start": {"line": 1, "character": 4}, "end": {"line": 2, "character": 0}},
					"selectionRange": {"start": {"line": 1, "character": 8}, "end": {"line": 1, "character": 15}}
				}]
			}]`,
			expected: []protocol.DocumentSymbol{
				{
					Name: "TestThing",
					Kind: protocol.SymbolKindClass,
					Range: protocol.Range{
						Start: protocol.Position{Line: 0, Character: 0},
						End:   protocol.Position{Line: 5, Character: 0},
					},
					SelectionRange: protocol.Range{
						Start: protocol.Position{Line: 0, Character: 6},
						End:   protocol.Position{Line: 0, Character: 15},
					},
					Children: []protocol.DocumentSymbol{
						{
							Name: "test_it",
							Kind: protocol.SymbolKindMethod,
							Range: protocol.Range{
								Start: protocol.Position{Line: 1, Character: 4},
								End:   protocol.Position{Line: 2, Character: 0},
							},
							SelectionRange: protocol.Range{
								Start: protocol.Position{Line: 1, Character: 8},
								End:   protocol.Position{Line: 1, Character: 15},
							},
						},
					},
				},
			},
		},
		{
			name: "Flat format is converted",
			raw: `[{
				"name": "helper",
				"kind": 12,
				"location": {
					"uri": "file:///ws/scratch.py",
					"range": {"start": {"line": 0, "character": 0}, "end": {"line": 1, "character": 8}}
				}
			}]`,
			expected: []protocol.DocumentSymbol{
				{
					Name: "helper",
					Kind: protocol.SymbolKindFunction,
					Range: protocol.Range{
						Start: protocol.Position{Line: 0, Character: 0},
						End:   protocol.Position{Line: 1, Character: 8},
					},
					SelectionRange: protocol.Range{
						Start: protocol.Position{Line: 0, Character: 0},
						End:   protocol.Position{Line: 1, Character: 8},
					},
				},
			},
		},
		{
			name:        "Malformed response",
			raw:         `{"not": "an array"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbols, err := decodeDocumentSymbols(json.RawMessage(tt.raw))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, symbols)
		})
	}
}
