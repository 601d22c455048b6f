package watch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteconf/internal/config"
	"git.home.luguber.info/inful/siteconf/internal/metrics"
)

type outcomeRecorder struct {
	metrics.NoopRecorder
	mu       sync.Mutex
	outcomes map[metrics.Outcome]int
}

func (r *outcomeRecorder) IncRunOutcome(o metrics.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = map[metrics.Outcome]int{}
	}
	r.outcomes[o]++
}

func (r *outcomeRecorder) count(o metrics.Outcome) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[o]
}

type fixture struct {
	dir     string
	content string
	output  string
	cfg     *config.Config
	rec     *outcomeRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	content := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(filepath.Join(content, "articles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(content, "articles", "a.md"), []byte("a"), 0o644))

	cfg := config.Default()
	cfg.Content.Path = content
	cfg.Output.Directory = filepath.Join(dir, "output")
	return &fixture{dir: dir, content: content, output: cfg.Output.Directory, cfg: cfg, rec: &outcomeRecorder{}}
}

func (f *fixture) start(t *testing.T, configPath string) {
	t.Helper()
	w, err := New(f.cfg, Options{
		ConfigPath: configPath,
		Debounce:   20 * time.Millisecond,
		Recorder:   f.rec,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	require.Eventually(t, func() bool { return f.rec.count(metrics.OutcomeSuccess) >= 1 }, 5*time.Second, 10*time.Millisecond)
}

func (f *fixture) inventory(t *testing.T) map[string][]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.output, "subfolders.json"))
	if err != nil {
		return nil
	}
	var inv map[string][]string
	if json.Unmarshal(data, &inv) != nil {
		return nil
	}
	return inv
}

func TestWatcher_InitialBuild(t *testing.T) {
	f := newFixture(t)
	f.start(t, "")

	assert.Equal(t, map[string][]string{"articles": {"a.md"}}, f.inventory(t))
}

func TestWatcher_RebuildsOnNewDirectory(t *testing.T) {
	f := newFixture(t)
	f.start(t, "")

	require.NoError(t, os.MkdirAll(filepath.Join(f.content, "pages"), 0o755))
	require.Eventually(t, func() bool {
		_, ok := f.inventory(t)["pages"]
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	// The new directory is watched too.
	require.NoError(t, os.WriteFile(filepath.Join(f.content, "pages", "about.md"), []byte("x"), 0o644))
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"about.md"}, f.inventory(t)["pages"])
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_SkipsUnchangedInventory(t *testing.T) {
	f := newFixture(t)
	f.start(t, "")

	require.NoError(t, os.WriteFile(filepath.Join(f.content, "articles", "a.md"), []byte("edited"), 0o644))
	require.Eventually(t, func() bool { return f.rec.count(metrics.OutcomeSkipped) >= 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, f.rec.count(metrics.OutcomeSuccess))
}

func TestWatcher_ReloadsConfig(t *testing.T) {
	f := newFixture(t)
	configPath := filepath.Join(f.dir, config.DefaultConfigFile)
	body := "content:\n  path: " + f.content + "\noutput:\n  directory: " + f.output + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))
	f.start(t, configPath)

	// An unknown key fails the reload; the previous configuration stays in use.
	require.NoError(t, os.WriteFile(configPath, []byte(body+"unknown_section: true\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	_, err := os.Stat(filepath.Join(f.output, "engine-settings.yaml"))
	require.NoError(t, err)

	body = "content:\n  path: " + f.content + "\noutput:\n  directory: " + f.output + "\n  settings_format: json\n"
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(f.output, "engine-settings.json"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_MissingContentRoot(t *testing.T) {
	f := newFixture(t)
	f.cfg.Content.Path = filepath.Join(f.dir, "missing")

	w, err := New(f.cfg, Options{})
	require.NoError(t, err)
	assert.Error(t, w.Run(context.Background()))
}
