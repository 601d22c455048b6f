package plugin

import (
	"fmt"
	"regexp"
	"strconv"

	"git.home.luguber.info/inful/siteconf/internal/config"
)

// ReadTime estimates article reading time. It takes no options.
type ReadTime struct{}

func (ReadTime) Metadata() Metadata {
	return Metadata{Name: "readtime", Description: "Estimated reading time for articles"}
}

func (ReadTime) Settings(*config.Config) (map[string]any, error) { return nil, nil }

// Neighbors links each article to its previous and next article. It takes no options.
type Neighbors struct{}

func (Neighbors) Metadata() Metadata {
	return Metadata{Name: "neighbors", Description: "Previous/next article navigation"}
}

func (Neighbors) Settings(*config.Config) (map[string]any, error) { return nil, nil }

// Search builds a client-side search index.
type Search struct{}

func (Search) Metadata() Metadata {
	return Metadata{Name: "search", Description: "Client-side site search index"}
}

func (Search) Settings(cfg *config.Config) (map[string]any, error) {
	s := cfg.Plugins.Search
	return map[string]any{
		"search_mode":          string(s.Mode),
		"search_html_selector": s.HTMLSelector,
	}, nil
}

// TOC generates a table of contents from page headings.
type TOC struct{}

func (TOC) Metadata() Metadata {
	return Metadata{Name: "toc", Aliases: []string{"pelican-toc"}, Description: "Table of contents from headings"}
}

func (TOC) Settings(cfg *config.Config) (map[string]any, error) {
	t := cfg.Plugins.TOC
	if _, err := regexp.Compile(t.Headers); err != nil {
		return nil, fmt.Errorf("toc headers pattern: %w", err)
	}
	return map[string]any{
		"toc": map[string]any{
			"toc_headers":       t.Headers,
			"toc_run":           strconv.FormatBool(t.Run),
			"toc_include_title": strconv.FormatBool(t.IncludeTitle),
		},
	}, nil
}
