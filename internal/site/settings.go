package site

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/siteconf/internal/config"
	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// Settings is the document the rendering engine reads. Field order is the
// order written to disk.
type Settings struct {
	RunID       string    `yaml:"run_id" json:"run_id"`
	GeneratedAt time.Time `yaml:"generated_at" json:"generated_at"`

	Author       string `yaml:"author" json:"author"`
	SiteName     string `yaml:"sitename" json:"sitename"`
	SiteURL      string `yaml:"siteurl" json:"siteurl"`
	Path         string `yaml:"path" json:"path"`
	Timezone     string `yaml:"timezone" json:"timezone"`
	DefaultLang  string `yaml:"default_lang" json:"default_lang"`
	RelativeURLs bool   `yaml:"relative_urls" json:"relative_urls"`

	Feeds FeedSettings `yaml:"feeds" json:"feeds"`

	Theme                   string   `yaml:"theme" json:"theme"`
	ThemeStaticPaths        []string `yaml:"theme_static_paths" json:"theme_static_paths"`
	ThemeTemplatesOverrides []string `yaml:"theme_templates_overrides" json:"theme_templates_overrides"`
	DirectTemplates         []string `yaml:"direct_templates" json:"direct_templates"`

	PluginPaths    []string       `yaml:"plugin_paths" json:"plugin_paths"`
	Plugins        []string       `yaml:"plugins" json:"plugins"`
	PluginSettings map[string]any `yaml:"plugin_settings" json:"plugin_settings"`
	Filters        []string       `yaml:"template_filters" json:"template_filters"`

	Markdown MarkdownSettings `yaml:"markdown" json:"markdown"`

	Links  []config.Link `yaml:"links" json:"links"`
	Social []config.Link `yaml:"social" json:"social"`

	DefaultPagination     config.Pagination `yaml:"default_pagination" json:"default_pagination"`
	DisplayPagesOnMenu    bool              `yaml:"display_pages_on_menu" json:"display_pages_on_menu"`
	ArticleOrderBy        string            `yaml:"article_order_by" json:"article_order_by"`
	UseFolderAsCategory   bool              `yaml:"use_folder_as_category" json:"use_folder_as_category"`
	OutputPath            string            `yaml:"output_path" json:"output_path"`
	DeleteOutputDirectory bool              `yaml:"delete_output_directory" json:"delete_output_directory"`

	Inventory InventorySettings `yaml:"inventory" json:"inventory"`
}

// FeedSettings lists feed paths; nil disables a feed.
type FeedSettings struct {
	AllAtom         *string `yaml:"all_atom" json:"all_atom"`
	CategoryAtom    *string `yaml:"category_atom" json:"category_atom"`
	TranslationAtom *string `yaml:"translation_atom" json:"translation_atom"`
	AuthorAtom      *string `yaml:"author_atom" json:"author_atom"`
	AuthorRSS       *string `yaml:"author_rss" json:"author_rss"`
}

// MarkdownSettings configures markdown extensions in the engine.
type MarkdownSettings struct {
	ExtensionConfigs map[string]map[string]any `yaml:"extension_configs" json:"extension_configs"`
	OutputFormat     string                    `yaml:"output_format" json:"output_format"`
}

// InventorySettings tells templates where the inventory lives.
type InventorySettings struct {
	Global     string `yaml:"global" json:"global"`
	Mode       string `yaml:"mode" json:"mode"`
	File       string `yaml:"file" json:"file"`
	Subfolders int    `yaml:"subfolders" json:"subfolders"`
	Digest     string `yaml:"digest" json:"digest"`
}

func buildSettings(s *Site) (*Settings, error) {
	cfg := s.Config

	// s.Plugins is resolved from cfg.Plugins.Enabled, whose names are emitted as written.
	pluginSettings := map[string]any{}
	for _, p := range s.Plugins {
		name := p.Metadata().Name
		opts, err := p.Settings(cfg)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryPlugin, "plugin settings failed").
				Fatal().
				WithContext("plugin", name).
				Build()
		}
		for k, v := range opts {
			if _, dup := pluginSettings[k]; dup {
				return nil, ferrors.PluginError(fmt.Sprintf("plugin setting %s set twice", k)).
					WithContext("plugin", name).
					Build()
			}
			pluginSettings[k] = v
		}
	}

	filters := make([]string, 0, len(s.Filters))
	filters = append(filters, cfg.Filters...)

	hl := cfg.Markdown.Highlight
	return &Settings{
		RunID:        s.RunID,
		GeneratedAt:  s.GeneratedAt,
		Author:       cfg.Site.Author,
		SiteName:     cfg.Site.Name,
		SiteURL:      cfg.Site.URL,
		Path:         cfg.Content.Path,
		Timezone:     cfg.Site.Timezone,
		DefaultLang:  cfg.Site.DefaultLang,
		RelativeURLs: cfg.Site.RelativeURLs,
		Feeds: FeedSettings{
			AllAtom:         optional(cfg.Feeds.AllAtom),
			CategoryAtom:    optional(cfg.Feeds.CategoryAtom),
			TranslationAtom: optional(cfg.Feeds.TranslationAtom),
			AuthorAtom:      optional(cfg.Feeds.AuthorAtom),
			AuthorRSS:       optional(cfg.Feeds.AuthorRSS),
		},
		Theme:                   cfg.Theme.Name,
		ThemeStaticPaths:        nonNil(cfg.Theme.StaticPaths),
		ThemeTemplatesOverrides: nonNil(cfg.Theme.TemplateOverrides),
		DirectTemplates:         nonNil(cfg.Theme.DirectTemplates),
		PluginPaths:             nonNil(cfg.Plugins.Paths),
		Plugins:                 nonNil(cfg.Plugins.Enabled),
		PluginSettings:          pluginSettings,
		Filters:                 filters,
		Markdown: MarkdownSettings{
			ExtensionConfigs: map[string]map[string]any{
				"markdown.extensions.codehilite": {
					"css_class":    hl.CSSClass,
					"use_pygments": hl.UsePygments,
					"linenums":     hl.LineNumbers,
				},
			},
			OutputFormat: cfg.Markdown.OutputFormat,
		},
		Links:                 nonNilLinks(cfg.Links),
		Social:                nonNilLinks(cfg.Social),
		DefaultPagination:     cfg.Content.DefaultPagination,
		DisplayPagesOnMenu:    cfg.Content.DisplayPagesOnMenu,
		ArticleOrderBy:        cfg.Content.ArticleOrderBy,
		UseFolderAsCategory:   cfg.Content.UseFolderAsCategory,
		OutputPath:            cfg.Output.Directory,
		DeleteOutputDirectory: cfg.Output.DeleteOutputDirectory,
		Inventory: InventorySettings{
			Global:     cfg.Inventory.Global,
			Mode:       string(cfg.Inventory.Mode),
			File:       InventoryFile,
			Subfolders: s.Inventory.Len(),
			Digest:     s.Inventory.Digest(),
		},
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilLinks(l []config.Link) []config.Link {
	if l == nil {
		return []config.Link{}
	}
	return l
}
