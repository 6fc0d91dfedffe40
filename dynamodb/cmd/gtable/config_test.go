package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, findConfigFile(nested))

	writeFile(t, filepath.Join(root, "a", configFilename), "stateDir: x\n")
	assert.Equal(t, filepath.Join(root, "a", configFilename), findConfigFile(nested))

	writeFile(t, filepath.Join(nested, configFilename), "stateDir: y\n")
	assert.Equal(t, filepath.Join(nested, configFilename), findConfigFile(nested))

	assert.Empty(t, findConfigFile(""))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), "", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Config{
		StateDir:       ".gtable",
		ScopeByAccount: true,
		WaitTimeout:    5 * time.Minute,
	}, cfg)
}

func TestLoadConfig_DiscoveredFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFilename), `
stateTable: gtable-state
stateRegion: eu-west-1
scopeByAccount: false
concurrency: 3
waitTimeout: 90s
`)
	dir := filepath.Join(root, "service")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	cfg, err := loadConfig(viper.New(), "", dir)
	require.NoError(t, err)

	assert.Equal(t, "gtable-state", cfg.StateTable)
	assert.Equal(t, "eu-west-1", cfg.StateRegion)
	assert.False(t, cfg.ScopeByAccount)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 90*time.Second, cfg.WaitTimeout)
	assert.Equal(t, ".gtable", cfg.StateDir)
}

func TestLoadConfig_ExplicitFileMustExist(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFilename), "concurrency: 3\n")
	t.Setenv("GTABLE_CONCURRENCY", "8")

	cfg, err := loadConfig(viper.New(), "", root)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "stateDir: from-file\nconcurrency: 3\n")

	cmd := &cobra.Command{}
	cmd.Flags().String("state-dir", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--state-dir", "from-flag"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag("stateDir", cmd.Flags().Lookup("state-dir")))
	cfg, err := loadConfig(v, path, "")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.StateDir)
	assert.Equal(t, 3, cfg.Concurrency)
}
