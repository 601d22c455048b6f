package site

import (
	"html/template"
	"maps"

	"git.home.luguber.info/inful/siteconf/internal/config"
)

// TemplateContext is what the renderer receives for every page. It replaces
// engine-level globals: the inventory is reachable only through Globals.
type TemplateContext struct {
	Site    config.SiteConfig
	Globals map[string]any
	Filters template.FuncMap
	Links   []config.Link
	Social  []config.Link
}

// TemplateContext returns a fresh context. Callers may modify the returned
// maps without affecting the Site.
func (s *Site) TemplateContext() TemplateContext {
	globals := map[string]any{
		s.Config.Inventory.Global: s.Inventory.Map(),
	}
	return TemplateContext{
		Site:    s.Config.Site,
		Globals: globals,
		Filters: maps.Clone(s.Filters),
		Links:   append([]config.Link(nil), s.Config.Links...),
		Social:  append([]config.Link(nil), s.Config.Social...),
	}
}

// Subfolders returns the inventory under its configured global name.
func (c TemplateContext) Subfolders(global string) (map[string][]string, bool) {
	v, ok := c.Globals[global].(map[string][]string)
	return v, ok
}
