package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir stands in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	chdir(t, t.TempDir())

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "origin/main", cfg.Base)
	assert.Equal(t, []string{"security"}, cfg.Modes)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "markdown", cfg.Output)
	assert.Equal(t, "file", cfg.GroupBy)
	assert.Equal(t, 120, cfg.TimeoutSeconds)
	assert.Equal(t, 86400, cfg.CacheTTLSeconds)
	assert.False(t, cfg.Staged)
	assert.NotEmpty(t, cfg.RedactPaths)
}

func TestLoadConfigFile(t *testing.T) {
	confHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confHome)
	chdir(t, t.TempDir())

	dir := filepath.Join(confHome, "aidiff")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aidiff.yaml"), []byte(
		"provider: openai\nmodes:\n  - security\n  - performance\ntimeout: 30\n",
	), 0o644))

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, []string{"security", "performance"}, cfg.Modes)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	// Untouched keys keep their defaults.
	assert.Equal(t, "origin/main", cfg.Base)
}

func TestEnvOverridesFile(t *testing.T) {
	confHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confHome)
	chdir(t, t.TempDir())

	dir := filepath.Join(confHome, "aidiff")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aidiff.yaml"), []byte("provider: openai\n"), 0o644))

	t.Setenv("AIDIFF_PROVIDER", "gemini")
	t.Setenv("AIDIFF_GROUP_BY", "type")

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "type", cfg.GroupBy)
}

func TestWriteStarter(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := WriteStarter()
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base: origin/main")

	// Second write refuses to clobber.
	_, err = WriteStarter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestMalformedConfigFileFails(t *testing.T) {
	confHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confHome)
	chdir(t, t.TempDir())

	dir := filepath.Join(confHome, "aidiff")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aidiff.yaml"), []byte("provider: [unclosed\n"), 0o644))

	_, err := New()
	require.Error(t, err)
}
