package inventory

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// writeTree creates files (and their parent directories) under root. Keys
// ending in "/" create empty directories.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if f[len(f)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("# "+f+"\n"), 0o644))
	}
}

// sampleTree builds:
//
//	content/
//	  articles/
//	    2023/ (a.md, b.md)
//	  pages/ (about.md)
func sampleTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "content")
	writeTree(t, root,
		"articles/2023/a.md",
		"articles/2023/b.md",
		"pages/about.md",
	)
	return root
}

func TestBuild_PerLevelMode_SampleTree(t *testing.T) {
	root := sampleTree(t)

	inv, err := Build(root, Options{Mode: ModePerLevel, IncludeHidden: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"2023", "articles", "pages"}, inv.Keys())
	assertEntries(t, inv, "2023", "a.md", "b.md")
	assertEntries(t, inv, "articles", "2023")
	assertEntries(t, inv, "pages", "about.md")
}

func TestBuild_RootMode_SampleTree(t *testing.T) {
	root := sampleTree(t)

	inv, err := Build(root, Options{Mode: ModeRoot, IncludeHidden: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"articles", "articles/2023", "pages"}, inv.Keys())
	assertEntries(t, inv, "articles/2023", "a.md", "b.md")
	assertEntries(t, inv, "articles", "2023")
	assertEntries(t, inv, "pages", "about.md")
}

func TestBuild_DefaultModeIsRoot(t *testing.T) {
	root := sampleTree(t)
	inv, err := Build(root, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Contains(t, inv.Keys(), "articles/2023")
}

func TestBuild_ExplicitReferenceRoot(t *testing.T) {
	root := sampleTree(t)

	inv, err := Build(root, Options{ReferenceRoot: filepath.Dir(root), IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"content/articles", "content/articles/2023", "content/pages"}, inv.Keys())
}

func TestBuild_ReferenceRootBelowScanRootFails(t *testing.T) {
	root := sampleTree(t)

	inv, err := Build(root, Options{ReferenceRoot: filepath.Join(root, "pages"), IncludeHidden: true})
	require.Error(t, err)
	assert.Nil(t, inv)
	assert.True(t, errors.Is(err, ErrOutsideReferenceRoot))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryInventory))
}

func TestBuild_PerLevelDuplicateNamesLastVisitWins(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a/x/deep.md",
		"x/shallow.md",
	)

	inv, err := Build(root, Options{Mode: ModePerLevel, IncludeHidden: true})
	require.NoError(t, err)

	// root is visited first and records a and x; a is visited next and
	// records a/x under the same key, replacing root/x.
	assert.Equal(t, []string{"a", "x"}, inv.Keys())
	assertEntries(t, inv, "x", "deep.md")
}

func TestBuild_NoRecursionLeakage(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"guide/intro.md",
		"guide/advanced/templates.md",
		"guide/advanced/deeper/notes.md",
	)

	inv, err := Build(root, Options{IncludeHidden: true})
	require.NoError(t, err)

	assertEntries(t, inv, "guide", "advanced", "intro.md")
	assertEntries(t, inv, "guide/advanced", "deeper", "templates.md")
	assertEntries(t, inv, "guide/advanced/deeper", "notes.md")
}

func TestBuild_EmptyDirectoriesAndEmptyRoot(t *testing.T) {
	root := t.TempDir()

	inv, err := Build(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Len())

	writeTree(t, root, "drafts/")
	inv, err = Build(root, Options{})
	require.NoError(t, err)
	entries, ok := inv.Entries("drafts")
	require.True(t, ok)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestBuild_HiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"pages/.draft.md",
		"pages/about.md",
		".git/HEAD",
	)

	inv, err := Build(root, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".git", "pages"}, inv.Keys())
	assertEntries(t, inv, "pages", ".draft.md", "about.md")

	inv, err = Build(root, Options{IncludeHidden: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"pages"}, inv.Keys())
	assertEntries(t, inv, "pages", "about.md")
}

func TestBuild_Determinism(t *testing.T) {
	root := sampleTree(t)
	writeTree(t, root, "z/y/x/w.md", "b/c.md", "b/d/")

	first, err := Build(root, Options{IncludeHidden: true})
	require.NoError(t, err)
	second, err := Build(root, Options{IncludeHidden: true})
	require.NoError(t, err)

	assert.Equal(t, first.Keys(), second.Keys())
	assert.Equal(t, first.Map(), second.Map())
	assert.Equal(t, first.Digest(), second.Digest())
}

func TestBuild_KeysStrictlyAscending(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b/", "a/z/", "a/b/", "A/", "a-b/", "a/b/c/")

	inv, err := Build(root, Options{IncludeHidden: true})
	require.NoError(t, err)

	keys := inv.Keys()
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
}

func TestBuild_MissingRoot(t *testing.T) {
	inv, err := Build(filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)
	assert.Nil(t, inv)
	assert.True(t, errors.Is(err, ErrRootNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryFileSystem, classified.Category())
	assert.True(t, classified.IsFatal())
	path, _ := classified.Context().GetString("path")
	assert.Contains(t, path, "nope")
}

func TestBuild_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.md")

	inv, err := Build(filepath.Join(root, "file.md"), Options{})
	require.Error(t, err)
	assert.Nil(t, inv)
	assert.True(t, errors.Is(err, ErrRootNotDirectory))
}

func TestBuild_UnreadableSubfolder(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := t.TempDir()
	writeTree(t, root, "open/a.md", "locked/b.md")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	inv, err := Build(root, Options{})
	require.Error(t, err)
	assert.Nil(t, inv)
	assert.True(t, errors.Is(err, ErrListFailed))
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestBuild_SymlinkedRootIsWalked(t *testing.T) {
	real := sampleTree(t)
	link := filepath.Join(t.TempDir(), "content")
	symlinkOrSkip(t, real, link)

	inv, err := Build(link, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"articles", "articles/2023", "pages"}, inv.Keys())
	assertEntries(t, inv, "articles/2023", "a.md", "b.md")

	direct, err := Build(real, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, direct.Digest(), inv.Digest())
}

func TestBuild_SymlinkedSubfolderIsListedNotDescended(t *testing.T) {
	root := sampleTree(t)
	shared := filepath.Join(t.TempDir(), "shared")
	writeTree(t, shared, "snippet.md", "nested/deep.md")
	symlinkOrSkip(t, shared, filepath.Join(root, "shared"))

	for _, mode := range []Mode{ModeRoot, ModePerLevel} {
		t.Run(string(mode), func(t *testing.T) {
			inv, err := Build(root, Options{Mode: mode, IncludeHidden: true})
			require.NoError(t, err)
			assertEntries(t, inv, "shared", "nested", "snippet.md")
			for _, k := range inv.Keys() {
				assert.NotContains(t, k, "nested")
			}
		})
	}
}

func TestBuild_SymlinkToFileIsNotAKey(t *testing.T) {
	root := sampleTree(t)
	symlinkOrSkip(t, filepath.Join(root, "pages", "about.md"), filepath.Join(root, "about-link.md"))

	inv, err := Build(root, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"articles", "articles/2023", "pages"}, inv.Keys())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeRoot, m)

	m, err = ParseMode("Per-Level")
	require.NoError(t, err)
	assert.Equal(t, ModePerLevel, m)

	_, err = ParseMode("sideways")
	require.Error(t, err)
}

func assertEntries(t *testing.T, inv *Inventory, key string, want ...string) {
	t.Helper()
	got, ok := inv.Entries(key)
	require.True(t, ok, "missing key %q in %v", key, inv.Keys())
	assert.Equal(t, want, got, "entries for %q", key)
}
