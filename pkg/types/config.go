package types

// Config represents the configuration for the pyref-mcp server
type Config struct {
	PylspPath     string   `json:"pylsp_path,omitempty"`
	PylspArgs     []string `json:"pylsp_args,omitempty"`
	WorkspaceRoot string   `json:"workspace_root"`
	LogLevel      string   `json:"log_level,omitempty"`
}
