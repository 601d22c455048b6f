package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, func(int) {})
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// project creates a content tree and a configuration pointing at it.
func project(t *testing.T, extra string) (dir, configPath string) {
	t.Helper()
	dir = t.TempDir()
	for _, f := range []string{"content/articles/2023/a.md", "content/pages/about.md"} {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	configPath = filepath.Join(dir, "siteconf.yaml")
	body := "content:\n  path: " + filepath.Join(dir, "content") +
		"\noutput:\n  directory: " + filepath.Join(dir, "output") + "\n" + extra
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))
	return dir, configPath
}

func TestInit_WritesConfigOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siteconf.yaml")

	res := runCLI(t, "-c", path, "init")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Initialized successfully")
	assert.FileExists(t, path)

	res = runCLI(t, "-c", path, "init")
	assert.Equal(t, 7, res.code)
	assert.Contains(t, res.stderr, "already exists")

	res = runCLI(t, "-c", path, "init", "--force")
	assert.Equal(t, 0, res.code, res.stderr)
}

func TestValidate_Defaults(t *testing.T) {
	_, cfg := project(t, "")

	res := runCLI(t, "-c", cfg, "validate")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Configuration valid")
}

func TestValidate_UnknownPlugin(t *testing.T) {
	_, cfg := project(t, "plugins:\n  enabled: [readtime, sitemap]\n")

	res := runCLI(t, "-c", cfg, "validate")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "invalid configuration")
}

func TestValidate_MissingConfig(t *testing.T) {
	res := runCLI(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "validate")
	assert.Equal(t, 7, res.code)
}

func TestInventory_JSONWithoutConfigFile(t *testing.T) {
	dir, _ := project(t, "")
	missing := filepath.Join(t.TempDir(), "none.yaml")

	res := runCLI(t, "-c", missing, "inventory", "--format", "json", "--root", filepath.Join(dir, "content"))
	require.Equal(t, 0, res.code, res.stderr)

	var inv map[string][]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &inv))
	assert.Equal(t, map[string][]string{
		"articles":      {"2023"},
		"articles/2023": {"a.md"},
		"pages":         {"about.md"},
	}, inv)
}

func TestInventory_TextPerLevel(t *testing.T) {
	_, cfg := project(t, "")

	res := runCLI(t, "-c", cfg, "inventory", "--mode", "per_level")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "2023/\n  a.md\narticles/\n  2023\npages/\n  about.md\n", res.stdout)
}

func TestValidate_UnknownSettingsFormat(t *testing.T) {
	_, cfg := project(t, "  settings_format: xml\n")

	res := runCLI(t, "-c", cfg, "validate")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "output.settings_format")
}

func TestInventory_UnknownModeRejected(t *testing.T) {
	_, cfg := project(t, "inventory:\n  mode: perlevel\n")

	res := runCLI(t, "-c", cfg, "inventory")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "inventory.mode")

	_, cfg = project(t, "")
	res = runCLI(t, "-c", cfg, "inventory", "--mode", "sideways")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "--mode")
}

func TestInventory_MissingRoot(t *testing.T) {
	_, cfg := project(t, "")

	res := runCLI(t, "-c", cfg, "inventory", "--root", filepath.Join(t.TempDir(), "gone"))
	assert.Equal(t, 11, res.code)
	assert.Contains(t, res.stderr, "content root not found")
}

func TestBuild_WritesOutputAndMetrics(t *testing.T) {
	dir, cfg := project(t, "")
	textfile := filepath.Join(dir, "siteconf.prom")

	res := runCLI(t, "-c", cfg, "build", "--metrics-textfile", textfile)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "3 subfolders")
	assert.FileExists(t, filepath.Join(dir, "output", "engine-settings.yaml"))
	assert.FileExists(t, filepath.Join(dir, "output", "subfolders.json"))

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `siteconf_run_outcomes_total{outcome="success"} 1`), string(data))
}

func TestBuild_MissingContentRoot(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "siteconf.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("content:\n  path: "+filepath.Join(dir, "nope")+"\noutput:\n  directory: "+filepath.Join(dir, "out")+"\n"), 0o644))

	res := runCLI(t, "-c", cfg, "build")
	assert.Equal(t, 11, res.code)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestUnknownCommand(t *testing.T) {
	res := runCLI(t, "publish")
	assert.Equal(t, 2, res.code)
}
