package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"

	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/inventory"
)

// NameChecker reports whether plugin and filter names resolve. The plugin
// registry satisfies it; a nil checker skips name validation.
type NameChecker interface {
	HasPlugin(name string) bool
	HasFilter(name string) bool
}

// Validate checks every section and reports all problems at once. The
// default language is canonicalized in place (e.g. "EN-us" becomes "en-US").
func Validate(cfg *Config, names NameChecker) error {
	if cfg == nil {
		return ferrors.ValidationError("configuration is nil").Build()
	}
	v := &configurationValidator{cfg: cfg, names: names}
	v.validateSite()
	v.validateContent()
	v.validatePlugins()
	v.validateFilters()
	v.validateLinks("links", cfg.Links)
	v.validateLinks("social", cfg.Social)
	v.validateOutput()

	if len(v.problems) == 0 {
		return nil
	}
	fields := make([]string, 0, len(v.problems))
	for _, p := range v.problems {
		fields = append(fields, p.field)
	}
	return ferrors.WrapError(v.joined(), ferrors.CategoryValidation, "invalid configuration").
		Fatal().
		UserAction().
		WithContext("fields", strings.Join(fields, ",")).
		Build()
}

type problem struct {
	field string
	err   error
}

type configurationValidator struct {
	cfg      *Config
	names    NameChecker
	problems []problem
}

func (v *configurationValidator) fail(field, format string, args ...any) {
	v.problems = append(v.problems, problem{field: field, err: fmt.Errorf("%s: "+format, append([]any{field}, args...)...)})
}

func (v *configurationValidator) joined() error {
	errs := make([]error, 0, len(v.problems))
	for _, p := range v.problems {
		errs = append(errs, p.err)
	}
	return errors.Join(errs...)
}

func (v *configurationValidator) validateSite() {
	site := &v.cfg.Site
	if strings.TrimSpace(site.Name) == "" {
		v.fail("site.name", "cannot be empty")
	}
	if _, err := time.LoadLocation(site.Timezone); err != nil || site.Timezone == "" {
		v.fail("site.timezone", "unknown timezone %q", site.Timezone)
	}
	tag, err := language.Parse(site.DefaultLang)
	if err != nil {
		v.fail("site.default_lang", "invalid language tag %q", site.DefaultLang)
	} else {
		site.DefaultLang = tag.String()
	}
	if site.URL != "" {
		u, err := url.Parse(site.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			v.fail("site.url", "must be an absolute http(s) URL, got %q", site.URL)
		}
	}
}

func (v *configurationValidator) validateContent() {
	if strings.TrimSpace(v.cfg.Content.Path) == "" {
		v.fail("content.path", "cannot be empty")
	}
	if m := v.cfg.Inventory.Mode; m != "" && m != inventory.ModeRoot && m != inventory.ModePerLevel {
		v.fail("inventory.mode", "unknown mode %q (want %s or %s)", m, inventory.ModeRoot, inventory.ModePerLevel)
	}
	if strings.ContainsAny(v.cfg.Inventory.Global, " .-") || v.cfg.Inventory.Global == "" {
		v.fail("inventory.global", "must be a plain identifier, got %q", v.cfg.Inventory.Global)
	}
}

func (v *configurationValidator) validatePlugins() {
	p := v.cfg.Plugins
	if _, err := regexp.Compile(p.TOC.Headers); err != nil {
		v.fail("plugins.toc.headers", "invalid pattern: %v", err)
	}
	if p.Search.Mode != SearchModeOutput && p.Search.Mode != SearchModeSource {
		v.fail("plugins.search.mode", "unknown mode %q", p.Search.Mode)
	}
	if v.names == nil {
		return
	}
	for _, name := range p.Enabled {
		if !v.names.HasPlugin(name) {
			v.fail("plugins.enabled", "unknown plugin %q", name)
		}
	}
}

func (v *configurationValidator) validateFilters() {
	if v.names == nil {
		return
	}
	for _, name := range v.cfg.Filters {
		if !v.names.HasFilter(name) {
			v.fail("filters", "unknown filter %q", name)
		}
	}
}

func (v *configurationValidator) validateLinks(field string, links []Link) {
	for i, l := range links {
		if strings.TrimSpace(l.Label) == "" {
			v.fail(fmt.Sprintf("%s[%d].label", field, i), "cannot be empty")
		}
		if strings.TrimSpace(l.URL) == "" {
			v.fail(fmt.Sprintf("%s[%d].url", field, i), "cannot be empty")
		}
	}
}

func (v *configurationValidator) validateOutput() {
	out := v.cfg.Output
	if strings.TrimSpace(out.Directory) == "" {
		v.fail("output.directory", "cannot be empty")
	}
	if out.SettingsFormat != SettingsFormatYAML && out.SettingsFormat != SettingsFormatJSON {
		v.fail("output.settings_format", "unknown format %q", out.SettingsFormat)
	}
}
