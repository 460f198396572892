package results

import "go.lsp.dev/protocol"

// SymbolLocation represents the location of a symbol.
// Unlike protocol.Position, it contains a file (not a URI) and is 1-indexed.
type SymbolLocation struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
}

// NewSymbolLocation converts an LSP position (0-indexed) into a display
// location (1-indexed) for file.
func NewSymbolLocation(file string, position protocol.Position) SymbolLocation {
	return SymbolLocation{
		File:      file,
		Line:      int(position.Line) + 1,
		Character: int(position.Character) + 1,
	}
}

// ToAnchor creates a SymbolAnchor from this location (coordinates remain 1-indexed)
func (sl SymbolLocation) ToAnchor() SymbolAnchor {
	return NewSymbolAnchor(sl.File, sl.Line, sl.Character)
}
