package results

// FileSymbol represents a symbol within a file with hierarchical structure
type FileSymbol struct {
	Name     string         `json:"name"`
	Kind     SymbolKind     `json:"kind"`
	Location SymbolLocation `json:"location"`
	Anchor   SymbolAnchor   `json:"anchor"`
	Children []FileSymbol   `json:"children,omitempty"`
}
