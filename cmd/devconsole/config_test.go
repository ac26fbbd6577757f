package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/devconsole/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		globalOpts.configPath = ""
		globalOpts.corner = ""
		globalOpts.sink = ""
		configOpts.defaults = false
		configOpts.force = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigCommand_AppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, "config", "--config", path, "--corner", "bottom-right", "--sink", "none")
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, toml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "bottom-right", got.Control.Corner)
	assert.Equal(t, "none", got.Output.Sink)
}

func TestConfigCommand_RejectsBadCorner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, "config", "--config", path, "--corner", "middle")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devconsole", "config.toml")

	_, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, err = execute(t, "config", "init", "--config", path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[control]\ncorner = \"top-right\"\n"), 0644))
	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)

	loaded, err = config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "top-left", loaded.Control.Corner)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "devconsole dev")
}
