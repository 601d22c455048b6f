package config

import "git.home.luguber.info/inful/siteconf/internal/foundation/normalization"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer("logging.level", map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelInfo)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer("logging.format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// SearchMode selects what the search plugin indexes.
type SearchMode string

const (
	// SearchModeOutput indexes rendered HTML.
	SearchModeOutput SearchMode = "output"
	// SearchModeSource indexes source documents.
	SearchModeSource SearchMode = "source"
)

var searchModeNormalizer = normalization.NewNormalizer("plugins.search.mode", map[string]SearchMode{
	"output": SearchModeOutput,
	"source": SearchModeSource,
}, SearchModeOutput)

// SettingsFormat selects the serialization of the engine settings document.
type SettingsFormat string

const (
	SettingsFormatYAML SettingsFormat = "yaml"
	SettingsFormatJSON SettingsFormat = "json"
)

var settingsFormatNormalizer = normalization.NewNormalizer("output.settings_format", map[string]SettingsFormat{
	"yaml": SettingsFormatYAML,
	"yml":  SettingsFormatYAML,
	"json": SettingsFormatJSON,
}, SettingsFormatYAML)

// ParseSettingsFormat converts a CLI or config string into a SettingsFormat.
func ParseSettingsFormat(raw string) (SettingsFormat, error) {
	return settingsFormatNormalizer.NormalizeWithError(raw)
}
