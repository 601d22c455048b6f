package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/siteconf/internal/foundation/normalization"
	"git.home.luguber.info/inful/siteconf/internal/inventory"
)

// NormalizeResult lists the rewrites Normalize applied.
type NormalizeResult struct {
	Warnings []string
}

// Normalize canonicalizes enum fields and trims list entries in place.
// Unknown logging values fall back to their defaults with a warning. Other
// unknown enum values are left as written so Validate rejects them.
func Normalize(cfg *Config) NormalizeResult {
	var res NormalizeResult
	warn := func(w string) {
		if w != "" {
			res.Warnings = append(res.Warnings, w)
		}
	}

	if mode, err := inventory.ParseMode(string(cfg.Inventory.Mode)); err == nil {
		if cfg.Inventory.Mode != "" && mode != cfg.Inventory.Mode {
			warn(fmt.Sprintf("normalized inventory.mode from %q to %q", cfg.Inventory.Mode, mode))
		}
		cfg.Inventory.Mode = mode
	}

	lvl := logLevelNormalizer.NormalizeWithWarning(string(cfg.Logging.Level))
	cfg.Logging.Level = lvl.Value
	warn(lvl.Warning)

	fmtRes := logFormatNormalizer.NormalizeWithWarning(string(cfg.Logging.Format))
	cfg.Logging.Format = fmtRes.Value
	warn(fmtRes.Warning)

	var w string
	cfg.Plugins.Search.Mode, w = strict(searchModeNormalizer, cfg.Plugins.Search.Mode)
	warn(w)

	cfg.Output.SettingsFormat, w = strict(settingsFormatNormalizer, cfg.Output.SettingsFormat)
	warn(w)

	cfg.Plugins.Enabled = trimList(cfg.Plugins.Enabled)
	cfg.Filters = trimList(cfg.Filters)
	cfg.Theme.StaticPaths = trimList(cfg.Theme.StaticPaths)
	cfg.Theme.DirectTemplates = trimList(cfg.Theme.DirectTemplates)

	if strings.TrimSpace(cfg.Inventory.Global) == "" {
		cfg.Inventory.Global = DefaultInventoryName
	}
	return res
}

// strict canonicalizes a known value and keeps an unknown one as written.
func strict[T ~string](n *normalization.Normalizer[T], raw T) (T, string) {
	res := n.NormalizeWithWarning(string(raw))
	if res.Unknown {
		return raw, ""
	}
	return res.Value, res.Warning
}

// trimList trims entries and drops empty ones and duplicates, keeping first occurrence order.
func trimList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
