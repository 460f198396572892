package results

// ListSymbolsInFileToolResult represents the result of the list_symbols_in_file tool
type ListSymbolsInFileToolResult struct {
	FilePath    string       `json:"file_path"`
	Message     string       `json:"message"`
	FileSymbols []FileSymbol `json:"file_symbols,omitempty"`
}
