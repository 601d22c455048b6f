package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/siteconf/internal/config"
	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
)

// Global carries shared state into every command's Run.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"siteconf.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init      InitCmd      `cmd:"" help:"Write a configuration file populated with defaults"`
	Validate  ValidateCmd  `cmd:"" help:"Validate the configuration and the plugin and filter names it uses"`
	Inventory InventoryCmd `cmd:"" help:"Print the subfolder inventory of the content tree"`
	Build     BuildCmd     `cmd:"" help:"Write the engine settings and the subfolder inventory"`
	Watch     WatchCmd     `cmd:"" help:"Rebuild on content or configuration changes"`
}

// AfterApply runs after flag parsing and sets up logging once. Commands that
// load a configuration replace the logger with the configured one.
func (c *CLI) AfterApply(g *Global) error {
	if g.Out == nil {
		g.Out = os.Stdout
	}
	if g.Err == nil {
		g.Err = os.Stderr
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(g.Err, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig loads the configuration and switches to its logging settings.
// With optional set a missing file yields the defaults.
func loadConfig(g *Global, root *CLI, optional bool) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		if !optional || !isMissing(err) {
			return nil, err
		}
		g.Logger.Debug("No configuration file, using defaults", logfields.Config(root.Config))
		cfg = config.Default()
	}
	g.Logger = cfg.Logging.NewLogger(g.Err, root.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

func isMissing(err error) bool {
	return ferrors.HasCategory(err, ferrors.CategoryConfig) && errors.Is(err, os.ErrNotExist)
}
