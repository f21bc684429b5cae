package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv hides any ISSUE_PROBE_* values from the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ISSUE_PROBE_URL", "")
	t.Setenv("ISSUE_PROBE_PROJECT", "")
	t.Setenv("ISSUE_PROBE_OUTPUT", "")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{URL: DefaultURL, Project: DefaultProject, Output: DefaultOutput}, cfg)
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "probe.yaml")
	want := Config{URL: "https://example.ngrok.app", Project: "apitest", Output: "yaml"}

	require.NoError(t, Save(want, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, Save(Config{URL: "https://file.example", Project: "fromfile", Output: "json"}, path))

	t.Setenv("ISSUE_PROBE_URL", "http://localhost:3000")
	t.Setenv("ISSUE_PROBE_PROJECT", "fromenv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.URL)
	assert.Equal(t, "fromenv", cfg.Project)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{URL: "https://abcd.ngrok.app", Project: "testproject", Output: "json"}
	require.NoError(t, valid.Validate())

	tests := map[string]Config{
		"placeholder url": {URL: DefaultURL, Project: "p", Output: "json"},
		"empty url":       {URL: "", Project: "p", Output: "json"},
		"relative url":    {URL: "abcd.ngrok.app", Project: "p", Output: "json"},
		"ftp url":         {URL: "ftp://host", Project: "p", Output: "json"},
		"empty project":   {URL: "http://localhost:3000", Project: "", Output: "json"},
		"bad output":      {URL: "http://localhost:3000", Project: "p", Output: "xml"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}
