// Package site assembles one generation run: it validates the configuration
// against the plugin registry, builds the subfolder inventory, and produces the
// settings document and template context the rendering engine consumes.
//
// A Site is computed once per run and never mutated afterwards. The renderer
// receives it explicitly through TemplateContext instead of looking up globals.
package site
