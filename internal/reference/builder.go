// Package reference orchestrates a single copy-reference invocation: gate on
// the file type and the word under the cursor, fetch the symbol tree, then
// fall through hierarchy, name, and raw-word searches until one produces a
// reference.
package reference

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/pyrefs/pyref-mcp/internal/clipboard"
	"github.com/pyrefs/pyref-mcp/internal/notify"
	"github.com/pyrefs/pyref-mcp/internal/refpath"
	"github.com/pyrefs/pyref-mcp/pkg/types"
)

// Source identifies which search produced a reference.
type Source string

const (
	// SourceHierarchy means the cursor was enclosed by the symbol chain.
	SourceHierarchy Source = "hierarchy"
	// SourceName means the word under the cursor matched a symbol by name.
	SourceName Source = "name"
	// SourceWord means only the raw word under the cursor was available.
	SourceWord Source = "word"
)

// Result describes the outcome of building a reference.
type Result struct {
	Reference string
	Source    Source
	Copied    bool
}

// Builder assembles pytest-style reference paths for cursor positions in
// Python files. Each Build or Copy call is a self-contained invocation; the
// builder holds no state between calls.
type Builder struct {
	client   types.Client
	clip     clipboard.Writer
	notifier notify.Notifier
	config   types.Config
}

// NewBuilder creates a new reference builder.
func NewBuilder(client types.Client, clip clipboard.Writer, notifier notify.Notifier, config types.Config) *Builder {
	return &Builder{
		client:   client,
		clip:     clip,
		notifier: notifier,
		config:   config,
	}
}

// Build computes the reference for pos in file without touching the
// clipboard. It returns a nil result, after emitting a notice, when the file
// is not Python or no word sits under the cursor.
func (b *Builder) Build(ctx context.Context, file string, pos protocol.Position) (*Result, error) {
	if !refpath.IsPythonFile(file) {
		slog.Debug("Unsupported file type", "file", file)
		b.notifier.Warn(fmt.Sprintf("%s is not a Python file", file))
		return nil, nil
	}

	text, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	word := refpath.WordAt(string(text), pos)
	if strings.TrimSpace(word) == "" {
		slog.Debug("No word under cursor", "file", file, "line", pos.Line, "character", pos.Character)
		b.notifier.Warn("No symbol found at the cursor position")
		return nil, nil
	}

	modulePath := refpath.ModulePath(file, b.config.WorkspaceRoot)

	symbols, err := b.client.GetDocumentSymbols(ctx, file)
	if err != nil {
		// Degrade to the raw word; the reference is still useful.
		slog.Debug("Document symbol request failed", "file", file, "error", err)
		symbols = nil
	}

	if chain := refpath.HierarchyPath(symbols, pos); len(chain) > 0 {
		return &Result{
			Reference: refpath.Format(modulePath, refpath.Names(chain)),
			Source:    SourceHierarchy,
		}, nil
	}

	if chain := refpath.NamePath(symbols, word); chain != nil {
		return &Result{
			Reference: refpath.Format(modulePath, refpath.Names(chain)),
			Source:    SourceName,
		}, nil
	}

	return &Result{
		Reference: refpath.Format(modulePath, []string{word}),
		Source:    SourceWord,
	}, nil
}

// Copy builds the reference and writes it to the clipboard. A clipboard
// failure is reported as a notice but does not discard the reference.
func (b *Builder) Copy(ctx context.Context, file string, pos protocol.Position) (*Result, error) {
	result, err := b.Build(ctx, file, pos)
	if err != nil || result == nil {
		return result, err
	}

	if err := b.clip.Write(result.Reference); err != nil {
		slog.Error("Failed to write to clipboard", "error", err)
		b.notifier.Error("Failed to copy the reference to the clipboard")
		return result, nil
	}

	result.Copied = true
	b.notifier.Info(fmt.Sprintf("Copied %q to the clipboard", result.Reference))
	return result, nil
}
