package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfcmap/sfcmap/pkg/scanner"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	chdirTemp(t)

	cfg, err := loadProjectConfig()
	require.NoError(t, err, "a missing config file is not an error")
	assert.Nil(t, cfg)
}

func TestLoadProjectConfig_Parsed(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".sfcmap"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sfcmap", "config.yaml"), []byte(`
version: "1"
include:
  - "src/**/*.vue"
exclude:
  - "src/vendor/**"
workers: 8
out: inventory.json
format: json
report: inventory.json
`), 0o644))

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"src/**/*.vue"}, cfg.Include)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "inventory.json", cfg.Out)
}

func TestLoadProjectConfig_Invalid(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".sfcmap"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sfcmap", "config.yaml"), []byte("{{not yaml"), 0o644))

	_, err := loadProjectConfig()
	assert.Error(t, err)
}

func TestResolveString(t *testing.T) {
	assert.Equal(t, "flag", resolveString("flag", "config", "default"))
	assert.Equal(t, "config", resolveString("", "config", "default"))
	assert.Equal(t, "default", resolveString("", "", "default"))
}

func TestBuildScanConfig_Precedence(t *testing.T) {
	proj := &ProjectConfig{
		Include: []string{"proj/**"},
		Exclude: []string{"projx/**"},
		Workers: 2,
	}

	t.Run("project config overrides defaults", func(t *testing.T) {
		cfg := buildScanConfig(&scanOptions{}, proj)
		assert.Equal(t, []string{"proj/**"}, cfg.Include)
		assert.Equal(t, []string{"projx/**"}, cfg.Exclude)
		assert.Equal(t, 2, cfg.Workers)
	})

	t.Run("flags override project config", func(t *testing.T) {
		cfg := buildScanConfig(&scanOptions{
			include: []string{"flag/**"},
			workers: 9,
		}, proj)
		assert.Equal(t, []string{"flag/**"}, cfg.Include)
		assert.Equal(t, []string{"projx/**"}, cfg.Exclude, "unset flags keep project values")
		assert.Equal(t, 9, cfg.Workers)
	})

	t.Run("no project config keeps defaults", func(t *testing.T) {
		cfg := buildScanConfig(&scanOptions{}, nil)
		assert.Equal(t, scanner.DefaultScanConfig().Include, cfg.Include)
	})
}
