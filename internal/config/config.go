package config

import "git.home.luguber.info/inful/siteconf/internal/inventory"

// Config is the complete site configuration handed to the rendering engine.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Inventory InventoryConfig `yaml:"inventory"`
	Theme     ThemeConfig     `yaml:"theme"`
	Plugins   PluginsConfig   `yaml:"plugins"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Links     []Link          `yaml:"links"`
	Social    []Link          `yaml:"social"`
	Filters   []string        `yaml:"filters"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig holds the site identity.
type SiteConfig struct {
	Author       string `yaml:"author"`
	Name         string `yaml:"name"`
	URL          string `yaml:"url,omitempty"`
	Timezone     string `yaml:"timezone"`
	DefaultLang  string `yaml:"default_lang"`
	RelativeURLs bool   `yaml:"relative_urls"` // document-relative URLs, useful while developing
}

// ContentConfig describes the content root and how the engine orders it.
type ContentConfig struct {
	Path                string     `yaml:"path"`
	ArticleOrderBy      string     `yaml:"article_order_by"`
	UseFolderAsCategory bool       `yaml:"use_folder_as_category"`
	DisplayPagesOnMenu  bool       `yaml:"display_pages_on_menu"`
	DefaultPagination   Pagination `yaml:"default_pagination"`
}

// InventoryConfig controls the subfolder inventory published to templates.
type InventoryConfig struct {
	Mode          inventory.Mode `yaml:"mode"`
	ReferenceRoot string         `yaml:"reference_root,omitempty"` // empty = content.path
	Global        string         `yaml:"global"`
	IncludeHidden bool           `yaml:"include_hidden"`
}

// ThemeConfig selects the theme and its assets.
type ThemeConfig struct {
	Name              string   `yaml:"name"`
	StaticPaths       []string `yaml:"static_paths"`
	TemplateOverrides []string `yaml:"template_overrides,omitempty"`
	DirectTemplates   []string `yaml:"direct_templates"`
}

// PluginsConfig lists enabled plugins and their option blocks.
type PluginsConfig struct {
	Paths   []string     `yaml:"paths"`
	Enabled []string     `yaml:"enabled"`
	Search  SearchConfig `yaml:"search"`
	TOC     TOCConfig    `yaml:"toc"`
}

// SearchConfig configures the site search plugin.
type SearchConfig struct {
	Mode         SearchMode `yaml:"mode"`
	HTMLSelector string     `yaml:"html_selector"`
}

// TOCConfig configures the table-of-contents plugin.
type TOCConfig struct {
	Headers      string `yaml:"headers"` // regular expression matched against heading tags
	Run          bool   `yaml:"run"`
	IncludeTitle bool   `yaml:"include_title"`
}

// MarkdownConfig configures markdown extensions in the engine.
type MarkdownConfig struct {
	Highlight    HighlightConfig `yaml:"highlight"`
	OutputFormat string          `yaml:"output_format"`
}

// HighlightConfig configures code highlighting.
type HighlightConfig struct {
	CSSClass    string `yaml:"css_class"`
	UsePygments bool   `yaml:"use_pygments"`
	LineNumbers bool   `yaml:"line_numbers"`
}

// FeedsConfig holds feed output paths. An empty path disables that feed.
type FeedsConfig struct {
	AllAtom         string `yaml:"all_atom,omitempty"`
	CategoryAtom    string `yaml:"category_atom,omitempty"`
	TranslationAtom string `yaml:"translation_atom,omitempty"`
	AuthorAtom      string `yaml:"author_atom,omitempty"`
	AuthorRSS       string `yaml:"author_rss,omitempty"`
}

// Link is a labelled URL used by the blogroll and social widgets.
type Link struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory             string         `yaml:"directory"`
	DeleteOutputDirectory bool           `yaml:"delete_output_directory"` // clean before writing
	SettingsFormat        SettingsFormat `yaml:"settings_format"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}
