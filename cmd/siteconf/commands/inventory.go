package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/inventory"
)

// InventoryCmd implements the 'inventory' command.
type InventoryCmd struct {
	Format string `help:"Output format (text, json, yaml)" enum:"text,json,yaml" default:"text"`
	Root   string `help:"Content root to scan (overrides content.path)" type:"path"`
	Mode   string `help:"Key mode (root, per_level); overrides inventory.mode"`
}

func (i *InventoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root, true)
	if err != nil {
		return err
	}
	scanRoot := cfg.Content.Path
	if i.Root != "" {
		scanRoot = i.Root
	}
	rawMode, source := string(cfg.Inventory.Mode), "inventory.mode"
	if i.Mode != "" {
		rawMode, source = i.Mode, "--mode"
	}
	mode, err := inventory.ParseMode(rawMode)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid "+source).UserAction().Build()
	}

	inv, err := inventory.Build(scanRoot, inventory.Options{
		ReferenceRoot: cfg.Inventory.ReferenceRoot,
		Mode:          mode,
		IncludeHidden: cfg.Inventory.IncludeHidden,
		Logger:        g.Logger,
	})
	if err != nil {
		return err
	}

	var out []byte
	switch i.Format {
	case "json":
		out, err = json.MarshalIndent(inv, "", "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = yaml.Marshal(inv)
	default:
		out = []byte(formatText(inv))
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "cannot encode inventory").Build()
	}
	_, err = g.Out.Write(out)
	return err
}

func formatText(inv *inventory.Inventory) string {
	var b strings.Builder
	inv.Each(func(key string, entries []string) bool {
		_, _ = fmt.Fprintf(&b, "%s/\n", key)
		for _, e := range entries {
			_, _ = fmt.Fprintf(&b, "  %s\n", e)
		}
		return true
	})
	return b.String()
}
