package site

// Stage names a step of Assemble, used for logs and metrics.
type Stage string

const (
	StageValidate  Stage = "validate"
	StagePlugins   Stage = "resolve_plugins"
	StageFilters   Stage = "resolve_filters"
	StageInventory Stage = "inventory"
	StageSettings  Stage = "settings"
	StageWrite     Stage = "write_output"
)
