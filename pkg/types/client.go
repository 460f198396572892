package types

import (
	"context"

	"go.lsp.dev/protocol"
)

// Client defines the LSP client interface
type Client interface {
	Start(ctx context.Context, workspaceRoot string) error
	Stop(ctx context.Context) error

	GetDocumentSymbols(ctx context.Context, path string) ([]protocol.DocumentSymbol, error)
}
