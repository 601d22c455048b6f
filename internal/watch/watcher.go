// Package watch regenerates the site output when the content tree or the
// configuration file changes.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/siteconf/internal/config"
	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/inventory"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
	"git.home.luguber.info/inful/siteconf/internal/plugin"
	"git.home.luguber.info/inful/siteconf/internal/site"
)

// DefaultDebounce collapses bursts of editor writes into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// Options configure a Watcher.
type Options struct {
	// ConfigPath is reloaded on change. Empty disables config reloads.
	ConfigPath string
	// OutputDir overrides output.directory.
	OutputDir string
	Registry  *plugin.Registry
	Debounce  time.Duration
	Logger    *slog.Logger
	Recorder  metrics.Recorder
}

// Watcher rebuilds the site on filesystem changes.
type Watcher struct {
	cfg        *config.Config
	opts       Options
	configPath string
	contentDir string
	logger     *slog.Logger
	rec        metrics.Recorder
	fsw        *fsnotify.Watcher

	lastDigest    string
	configChanged bool
}

// New creates a Watcher for cfg. The initial build happens in Run.
func New(cfg *config.Config, opts Options) (*Watcher, error) {
	if opts.Registry == nil {
		opts.Registry = plugin.Builtin()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	contentDir, err := filepath.Abs(cfg.Content.Path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot resolve content path").
			WithContext("path", cfg.Content.Path).
			Build()
	}
	var configPath string
	if opts.ConfigPath != "" {
		if configPath, err = filepath.Abs(opts.ConfigPath); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot resolve config path").
				WithContext("path", opts.ConfigPath).
				Build()
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create file watcher").Build()
	}
	return &Watcher{
		cfg:        cfg,
		opts:       opts,
		configPath: configPath,
		contentDir: contentDir,
		logger:     logger,
		rec:        rec,
		fsw:        fsw,
	}, nil
}

// Run performs an initial build, then rebuilds after each debounced burst
// of changes until ctx is canceled. Failed rebuilds are logged and the
// watcher keeps running; only setup failures are returned.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.addTree(w.contentDir); err != nil {
		return err
	}
	if w.configPath != "" {
		// The directory is watched because editors replace files on save.
		dir := filepath.Dir(w.configPath)
		if err := w.fsw.Add(dir); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to watch config directory").
				WithContext("path", dir).
				Build()
		}
	}
	w.logger.Info("Watching for changes",
		logfields.Root(w.contentDir),
		logfields.Config(w.configPath))

	w.rebuild(ctx, true)

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("Change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.opts.Debounce)
			pending = true
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		case <-timer.C:
			pending = false
			w.rebuild(ctx, false)
		}
	}
}

// relevant filters events and tracks new directories and config edits.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	name := filepath.Clean(ev.Name)
	if w.configPath != "" && name == w.configPath {
		if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
			w.configChanged = true
			return true
		}
		return false
	}
	if !within(name, w.contentDir) || within(name, w.outputDir()) {
		return false
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := w.addTree(name); err != nil {
				w.logger.Warn("Cannot watch new directory", logfields.Path(name), logfields.Error(err))
			}
		}
	}
	return ev.Op != fsnotify.Chmod
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p != dir && errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot watch content tree").
				WithContext("path", p).
				Build()
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot watch directory").
				WithContext("path", p).
				Build()
		}
		return nil
	})
}

// rebuild regenerates the output. Content-only changes that leave the
// inventory digest unchanged are skipped.
func (w *Watcher) rebuild(ctx context.Context, force bool) {
	if w.configChanged {
		w.configChanged = false
		force = true
		cfg, err := config.Load(w.configPath)
		if err != nil {
			w.logger.Error("Config reload failed, keeping previous configuration", logfields.Config(w.configPath), logfields.Error(err))
		} else {
			w.cfg = cfg
			w.logger.Info("Configuration reloaded", logfields.Config(w.configPath))
			if dir, err := filepath.Abs(cfg.Content.Path); err == nil && dir != w.contentDir {
				w.contentDir = dir
				if err := w.addTree(dir); err != nil {
					w.logger.Error("Cannot watch content tree", logfields.Root(dir), logfields.Error(err))
				}
			}
		}
	}

	if !force && w.lastDigest != "" {
		inv, err := inventory.Build(w.cfg.Content.Path, inventory.Options{
			ReferenceRoot: w.cfg.Inventory.ReferenceRoot,
			Mode:          w.cfg.Inventory.Mode,
			IncludeHidden: w.cfg.Inventory.IncludeHidden,
			Logger:        w.logger,
		})
		if err == nil && inv.Digest() == w.lastDigest {
			w.rec.IncRunOutcome(metrics.OutcomeSkipped)
			w.logger.Debug("Inventory unchanged, skipping rebuild")
			return
		}
	}

	s, _, err := site.Generate(ctx, w.cfg, w.opts.Registry, w.opts.OutputDir, site.Options{
		Logger:   w.logger,
		Recorder: w.rec,
	})
	if err != nil {
		w.lastDigest = ""
		w.logger.Error("Rebuild failed", logfields.Error(err))
		return
	}
	w.lastDigest = s.Inventory.Digest()
}

func (w *Watcher) outputDir() string {
	dir := w.opts.OutputDir
	if dir == "" {
		dir = w.cfg.Output.Directory
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
