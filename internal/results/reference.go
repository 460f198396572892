package results

// ReferenceResult represents the outcome of a reference tool call
type ReferenceResult struct {
	FilePath  string `json:"file_path"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
	Anchor    string `json:"anchor,omitempty"`
	Reference string `json:"reference,omitempty"`
	Source    string `json:"source,omitempty"`
	Copied    bool   `json:"copied,omitempty"`
	Message   string `json:"message"`
}
