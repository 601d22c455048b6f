package site

import (
	"context"
	"html/template"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/siteconf/internal/config"
	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/inventory"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/plugin"
)

// Options tune Assemble. The zero value is usable.
type Options struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
	// RunID identifies the run in logs and settings; generated when empty.
	RunID string
	// Now stamps the settings document; time.Now when nil.
	Now func() time.Time
}

// Site is the read-only result of one generation run.
type Site struct {
	RunID       string
	GeneratedAt time.Time
	Config      *config.Config
	Inventory   *inventory.Inventory
	Plugins     []plugin.Plugin
	Filters     template.FuncMap

	settings *Settings
}

// Assemble runs validation, plugin and filter resolution, and the inventory
// build. Any failure aborts the run and no Site is returned.
func Assemble(ctx context.Context, cfg *config.Config, reg *plugin.Registry, opts Options) (*Site, error) {
	if cfg == nil || reg == nil {
		return nil, ferrors.InternalError("assemble needs a configuration and a registry").Build()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	logger = logger.With(logfields.RunID(runID))

	s := &Site{RunID: runID, Config: cfg}
	r := &runner{ctx: ctx, logger: logger, rec: rec}

	err := r.stage(StageValidate, func() error {
		return config.Validate(cfg, reg)
	})
	if err == nil {
		err = r.stage(StagePlugins, func() (err error) {
			s.Plugins, err = reg.ResolvePlugins(cfg.Plugins.Enabled)
			return err
		})
	}
	if err == nil {
		err = r.stage(StageFilters, func() (err error) {
			s.Filters, err = reg.ResolveFilters(cfg.Filters)
			return err
		})
	}
	if err == nil {
		err = r.stage(StageInventory, func() (err error) {
			s.Inventory, err = inventory.Build(cfg.Content.Path, inventory.Options{
				ReferenceRoot: cfg.Inventory.ReferenceRoot,
				Mode:          cfg.Inventory.Mode,
				IncludeHidden: cfg.Inventory.IncludeHidden,
				Logger:        logger,
			})
			return err
		})
	}
	if err == nil {
		rec.ObserveInventory(s.Inventory.Len(), s.Inventory.EntryCount())
		s.GeneratedAt = now().UTC()
		err = r.stage(StageSettings, func() (err error) {
			s.settings, err = buildSettings(s)
			return err
		})
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Site assembled",
		logfields.Root(cfg.Content.Path),
		logfields.Mode(string(cfg.Inventory.Mode)),
		logfields.Dirs(s.Inventory.Len()),
		logfields.Entries(s.Inventory.EntryCount()),
		slog.Int("plugins", len(s.Plugins)))
	return s, nil
}

// Generate assembles a Site and writes its output files into dir (the
// configured output directory when empty). The run outcome is recorded.
func Generate(ctx context.Context, cfg *config.Config, reg *plugin.Registry, dir string, opts Options) (*Site, []string, error) {
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
		opts.Recorder = rec
	}
	s, err := Assemble(ctx, cfg, reg, opts)
	if err != nil {
		rec.IncRunOutcome(metrics.OutcomeFailed)
		return nil, nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &runner{ctx: ctx, logger: logger.With(logfields.RunID(s.RunID)), rec: rec}
	var written []string
	if err := r.stage(StageWrite, func() (err error) {
		written, err = s.WriteSettings(dir, cfg.Output.SettingsFormat)
		return err
	}); err != nil {
		rec.IncRunOutcome(metrics.OutcomeFailed)
		return nil, written, err
	}
	rec.IncRunOutcome(metrics.OutcomeSuccess)
	for _, p := range written {
		r.logger.Info("Wrote output", logfields.Path(p))
	}
	return s, written, nil
}

// Settings returns the engine settings document.
func (s *Site) Settings() *Settings { return s.settings }

type runner struct {
	ctx    context.Context
	logger *slog.Logger
	rec    metrics.Recorder
}

func (r *runner) stage(name Stage, fn func() error) error {
	if err := r.ctx.Err(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "generation run canceled").
			WithContext("stage", string(name)).
			Build()
	}
	start := time.Now()
	err := fn()
	d := time.Since(start)
	r.rec.ObserveStageDuration(string(name), d)
	if err != nil {
		r.logger.Error("Stage failed", logfields.Stage(string(name)), logfields.Error(err))
		return err
	}
	r.logger.Debug("Stage completed", logfields.Stage(string(name)), logfields.DurationMS(float64(d.Microseconds())/1000))
	return nil
}
