package commands

import (
	"fmt"

	"git.home.luguber.info/inful/siteconf/internal/config"
	"git.home.luguber.info/inful/siteconf/internal/plugin"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root, false)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg, plugin.Builtin()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Configuration valid: %s\n", root.Config)
	_, _ = fmt.Fprintf(g.Out, "  content:   %s (inventory mode %s, global %q)\n", cfg.Content.Path, cfg.Inventory.Mode, cfg.Inventory.Global)
	_, _ = fmt.Fprintf(g.Out, "  plugins:   %v\n", cfg.Plugins.Enabled)
	_, _ = fmt.Fprintf(g.Out, "  filters:   %v\n", cfg.Filters)
	_, _ = fmt.Fprintf(g.Out, "  output:    %s (%s)\n", cfg.Output.Directory, cfg.Output.SettingsFormat)
	return nil
}
