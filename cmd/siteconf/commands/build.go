package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/plugin"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output          string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write run metrics in node-exporter textfile format" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root, false)
	if err != nil {
		return err
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if b.MetricsTextfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		rec = prom
	}

	s, written, err := site.Generate(context.Background(), cfg, plugin.Builtin(), b.Output, site.Options{
		Logger:   g.Logger,
		Recorder: rec,
	})
	if prom != nil {
		if werr := prom.WriteTextfile(b.MetricsTextfile); werr != nil {
			g.Logger.Warn("Cannot write metrics textfile", logfields.Path(b.MetricsTextfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(g.Out, "Build %s: %d subfolders\n", s.RunID, s.Inventory.Len())
	for _, p := range written {
		_, _ = fmt.Fprintf(g.Out, "  wrote %s\n", p)
	}
	return nil
}
