package plugin

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"

	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// Registry maps names to plugins and filters.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	aliases map[string]string
	filters map[string]FilterFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		aliases: make(map[string]string),
		filters: make(map[string]FilterFunc),
	}
}

// Builtin returns a registry holding the plugins and filters shipped with siteconf.
func Builtin() *Registry {
	r := NewRegistry()
	for _, p := range []Plugin{ReadTime{}, Search{}, Neighbors{}, TOC{}} {
		if err := r.RegisterPlugin(p); err != nil {
			panic(err)
		}
	}
	if err := r.RegisterFilter("console", Console); err != nil {
		panic(err)
	}
	return r
}

// RegisterPlugin adds a plugin. Its name and aliases must not collide with
// anything already registered.
func (r *Registry) RegisterPlugin(p Plugin) error {
	if p == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	meta := p.Metadata()
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range append([]string{meta.Name}, meta.Aliases...) {
		if _, exists := r.plugins[n]; exists {
			return fmt.Errorf("plugin %s already registered", n)
		}
		if owner, exists := r.aliases[n]; exists {
			return fmt.Errorf("plugin name %s already used as alias of %s", n, owner)
		}
	}
	r.plugins[meta.Name] = p
	for _, a := range meta.Aliases {
		r.aliases[a] = meta.Name
	}
	return nil
}

// RegisterFilter adds a template filter.
func (r *Registry) RegisterFilter(name string, fn FilterFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("filter needs a name and a function")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.filters[name]; exists {
		return fmt.Errorf("filter %s already registered", name)
	}
	r.filters[name] = fn
	return nil
}

// Plugin retrieves a plugin by name or alias.
func (r *Registry) Plugin(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	p, ok := r.plugins[name]
	if !ok {
		return nil, ferrors.PluginError("plugin not found").WithContext("plugin", name).Build()
	}
	return p, nil
}

// Filter retrieves a template filter by name.
func (r *Registry) Filter(name string) (FilterFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.filters[name]
	if !ok {
		return nil, ferrors.PluginError("filter not found").WithContext("filter", name).Build()
	}
	return fn, nil
}

// HasPlugin reports whether name resolves to a plugin.
func (r *Registry) HasPlugin(name string) bool {
	_, err := r.Plugin(name)
	return err == nil
}

// HasFilter reports whether name resolves to a filter.
func (r *Registry) HasFilter(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.filters[name]
	return ok
}

// PluginNames returns canonical plugin names in sorted order.
func (r *Registry) PluginNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.plugins))
	for n := range r.plugins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FilterNames returns filter names in sorted order.
func (r *Registry) FilterNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.filters))
	for n := range r.filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResolvePlugins returns the plugins for names in the given order. Every
// unknown name is reported in a single error.
func (r *Registry) ResolvePlugins(names []string) ([]Plugin, error) {
	out := make([]Plugin, 0, len(names))
	var unknown []string
	for _, n := range names {
		p, err := r.Plugin(n)
		if err != nil {
			unknown = append(unknown, n)
			continue
		}
		out = append(out, p)
	}
	if len(unknown) > 0 {
		return nil, ferrors.PluginError("unknown plugins").
			WithContext("plugins", strings.Join(unknown, ",")).
			WithContext("available", strings.Join(r.PluginNames(), ",")).
			Build()
	}
	return out, nil
}

// ResolveFilters returns a FuncMap holding the named filters.
func (r *Registry) ResolveFilters(names []string) (template.FuncMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	funcs := make(template.FuncMap, len(names))
	var unknown []string
	for _, n := range names {
		fn, ok := r.filters[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		funcs[n] = fn
	}
	if len(unknown) > 0 {
		return nil, ferrors.PluginError("unknown filters").
			WithContext("filters", strings.Join(unknown, ",")).
			Build()
	}
	return funcs, nil
}
