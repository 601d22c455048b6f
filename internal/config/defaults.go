package config

import "git.home.luguber.info/inful/siteconf/internal/inventory"

// Default names used when the configuration leaves them out.
const (
	DefaultConfigFile    = "siteconf.yaml"
	DefaultContentPath   = "content"
	DefaultOutputDir     = "output"
	DefaultInventoryName = "subfolders"
)

// Default returns a configuration populated with every default. Load decodes
// the file on top of it, so keys missing from the file keep these values.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Author:      "Site Author",
			Name:        "Documentation",
			Timezone:    "UTC",
			DefaultLang: "en",
		},
		Content: ContentConfig{
			Path:           DefaultContentPath,
			ArticleOrderBy: "date",
		},
		Inventory: InventoryConfig{
			Mode:          inventory.ModeRoot,
			Global:        DefaultInventoryName,
			IncludeHidden: true,
		},
		Theme: ThemeConfig{
			Name:            "themes/Papyrus",
			StaticPaths:     []string{"static"},
			DirectTemplates: []string{"index", "search"},
		},
		Plugins: PluginsConfig{
			Paths:   []string{"pelican-plugins"},
			Enabled: []string{"readtime", "search", "neighbors", "pelican-toc"},
			Search: SearchConfig{
				Mode:         SearchModeOutput,
				HTMLSelector: "main",
			},
			TOC: TOCConfig{
				Headers: "^h[1-3]",
				Run:     true,
			},
		},
		Markdown: MarkdownConfig{
			Highlight: HighlightConfig{
				CSSClass:    "highlight",
				UsePygments: true,
				LineNumbers: true,
			},
			OutputFormat: "html5",
		},
		Links: []Link{
			{Label: "Pelican", URL: "https://getpelican.com/"},
			{Label: "Python.org", URL: "https://www.python.org/"},
			{Label: "Jinja2", URL: "https://palletsprojects.com/p/jinja/"},
			{Label: "You can modify those links in your config file", URL: "#"},
		},
		Social: []Link{
			{Label: "You can add links in your config file", URL: "#"},
			{Label: "Another social link", URL: "#"},
		},
		Filters: []string{"console"},
		Output: OutputConfig{
			Directory:             DefaultOutputDir,
			DeleteOutputDirectory: true,
			SettingsFormat:        SettingsFormatYAML,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// ReferenceRoot returns the directory inventory keys are relative to.
func (c *Config) ReferenceRoot() string {
	if c.Inventory.ReferenceRoot != "" {
		return c.Inventory.ReferenceRoot
	}
	return c.Content.Path
}
