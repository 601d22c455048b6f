package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/siteconf/internal/plugin"
	"git.home.luguber.info/inful/siteconf/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
	Debounce time.Duration `help:"Quiet period before a rebuild" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root, false)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watcher, err := watch.New(cfg, watch.Options{
		ConfigPath: root.Config,
		OutputDir:  w.Output,
		Registry:   plugin.Builtin(),
		Debounce:   w.Debounce,
		Logger:     g.Logger,
	})
	if err != nil {
		return err
	}
	if err := watcher.Run(ctx); err != nil {
		return err
	}
	g.Logger.Info("Watcher stopped")
	return nil
}
