// Package plugin is the explicit registry of engine plugins and template
// filters. Every name the configuration mentions is resolved here at startup,
// so a typo fails the run before any content is scanned.
package plugin

import (
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/siteconf/internal/config"
)

// Plugin is an engine plugin the site enables by name.
type Plugin interface {
	// Metadata returns the plugin's identity.
	Metadata() Metadata

	// Settings returns the option block the engine reads for this plugin.
	// A nil map means the plugin takes no options.
	Settings(cfg *config.Config) (map[string]any, error)
}

// Metadata describes a plugin.
type Metadata struct {
	// Name is the canonical plugin name written to the settings document.
	Name string

	// Aliases are alternative names accepted in configuration.
	Aliases []string

	// Description is a human-readable summary shown by the CLI.
	Description string
}

// Validate checks if the plugin metadata is valid.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	for _, a := range m.Aliases {
		if a == "" || a == m.Name {
			return fmt.Errorf("plugin %s has an invalid alias %q", m.Name, a)
		}
	}
	return nil
}

// FilterFunc transforms template text. Filters produce markup, so the result
// is trusted HTML.
type FilterFunc func(string) template.HTML
