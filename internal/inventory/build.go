package inventory

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/foundation/normalization"
	"git.home.luguber.info/inful/siteconf/internal/logfields"
)

// Mode selects how inventory keys are derived.
type Mode string

const (
	// ModeRoot keys every subfolder by its path relative to the reference root.
	ModeRoot Mode = "root"
	// ModePerLevel keys every subfolder by its path relative to the directory
	// being visited when it was found, i.e. its base name.
	ModePerLevel Mode = "per_level"
)

var modeNormalizer = normalization.NewNormalizer("inventory mode", map[string]Mode{
	"root":      ModeRoot,
	"per_level": ModePerLevel,
}, ModeRoot)

// ParseMode converts a config string into a Mode. Empty selects ModeRoot.
func ParseMode(raw string) (Mode, error) {
	return modeNormalizer.NormalizeWithError(raw)
}

// Options controls a Build.
type Options struct {
	// ReferenceRoot anchors keys in ModeRoot. Empty means the scan root itself.
	ReferenceRoot string
	Mode          Mode
	// IncludeHidden keeps dot-prefixed entries in listings and descends into
	// dot-prefixed directories.
	IncludeHidden bool
	Logger        *slog.Logger
}

// Build walks scanRoot and returns the inventory of every directory below it.
// Any traversal or listing failure aborts the build; no partial inventory is returned.
func Build(scanRoot string, opts Options) (*Inventory, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Mode == "" {
		opts.Mode = ModeRoot
	}

	if err := checkRoot(scanRoot); err != nil {
		return nil, err
	}

	// WalkDir does not follow a symlinked root, so walk its target.
	scanRoot, err := resolve(scanRoot, "content root")
	if err != nil {
		return nil, err
	}
	ref := opts.ReferenceRoot
	if ref == "" {
		ref = scanRoot
	} else if ref, err = resolve(ref, "reference root"); err != nil {
		return nil, err
	}
	if filepath.IsAbs(ref) != filepath.IsAbs(scanRoot) {
		// filepath.Rel cannot mix absolute and relative paths.
		if scanRoot, err = filepath.Abs(scanRoot); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot resolve content root").Fatal().WithContext("path", scanRoot).Build()
		}
		if ref, err = filepath.Abs(ref); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot resolve reference root").Fatal().WithContext("path", ref).Build()
		}
	}

	b := &builder{
		ref:     ref,
		opts:    opts,
		entries: make(map[string][]string),
	}

	err = filepath.WalkDir(scanRoot, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return ferrors.WrapError(fmt.Errorf("%w: %w", ErrWalkFailed, walkErr), ferrors.CategoryFileSystem, "content tree walk failed").
				Fatal().
				WithContext("path", current).
				Build()
		}
		if !d.IsDir() {
			return nil
		}
		if current != scanRoot && !opts.IncludeHidden && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return b.visit(current)
	})
	if err != nil {
		logger.Error("Subfolder inventory failed", logfields.Root(scanRoot), logfields.Error(err))
		return nil, err
	}

	inv := newInventory(b.entries)
	logger.Debug("Subfolder inventory built",
		logfields.Root(scanRoot),
		logfields.Mode(string(opts.Mode)),
		logfields.Dirs(inv.Len()),
		logfields.Entries(inv.EntryCount()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return inv, nil
}

type builder struct {
	ref     string
	opts    Options
	entries map[string][]string
}

// visit records every immediate child directory of current. Children are
// recorded from their parent so that, in ModePerLevel, a later visit of a
// deeper directory with the same name replaces the earlier entry. Symlinked
// directories are recorded and listed but never descended into.
func (b *builder) visit(current string) error {
	children, err := b.list(current)
	if err != nil {
		return err
	}
	for _, child := range children {
		if !b.opts.IncludeHidden && isHidden(child.Name()) {
			continue
		}
		dir := filepath.Join(current, child.Name())
		if !isDir(child, dir) {
			continue
		}

		key, err := b.key(current, dir)
		if err != nil {
			return err
		}
		listing, err := b.list(dir)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(listing))
		for _, e := range listing {
			names = append(names, e.Name())
		}
		b.entries[key] = names
	}
	return nil
}

func (b *builder) key(current, dir string) (string, error) {
	base := b.ref
	if b.opts.Mode == ModePerLevel {
		base = current
	}
	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		cause := ErrOutsideReferenceRoot
		if err != nil {
			cause = fmt.Errorf("%w: %w", ErrOutsideReferenceRoot, err)
		}
		return "", ferrors.WrapError(cause, ferrors.CategoryInventory, "cannot compute subfolder key").
			Fatal().
			WithContext("path", dir).
			WithContext("reference_root", base).
			Build()
	}
	return filepath.ToSlash(rel), nil
}

// list returns the single-level listing of dir in name order, filtering hidden
// entries when configured.
func (b *builder) list(dir string) ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.WrapError(fmt.Errorf("%w: %w", ErrListFailed, err), ferrors.CategoryFileSystem, "cannot list directory").
			Fatal().
			WithContext("path", dir).
			Build()
	}
	if b.opts.IncludeHidden {
		return entries, nil
	}
	kept := entries[:0]
	for _, e := range entries {
		if !isHidden(e.Name()) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func checkRoot(scanRoot string) error {
	info, err := os.Stat(scanRoot)
	switch {
	case os.IsNotExist(err):
		return ferrors.WrapError(fmt.Errorf("%w: %w", ErrRootNotFound, err), ferrors.CategoryFileSystem, "content root not found").
			Fatal().
			UserAction().
			WithContext("path", scanRoot).
			Build()
	case err != nil:
		return ferrors.WrapError(fmt.Errorf("%w: %w", ErrWalkFailed, err), ferrors.CategoryFileSystem, "content root not readable").
			Fatal().
			WithContext("path", scanRoot).
			Build()
	case !info.IsDir():
		return ferrors.WrapError(ErrRootNotDirectory, ferrors.CategoryFileSystem, "content root is not a directory").
			Fatal().
			UserAction().
			WithContext("path", scanRoot).
			Build()
	}
	return nil
}

// isDir reports whether child is a directory or a symlink to one.
func isDir(child fs.DirEntry, path string) bool {
	if child.IsDir() {
		return true
	}
	if child.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func resolve(path, what string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", ferrors.WrapError(fmt.Errorf("%w: %w", ErrWalkFailed, err), ferrors.CategoryFileSystem, "cannot resolve "+what).
			Fatal().
			WithContext("path", path).
			Build()
	}
	return resolved, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
