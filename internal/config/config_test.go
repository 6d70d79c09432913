package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 512, cfg.Engine.DepthLimit)
	assert.False(t, cfg.Engine.Paterson)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stolas.yaml")
	src := "engine:\n  paterson: true\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.Paterson)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 512, cfg.Engine.DepthLimit, "unset fields keep defaults")
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stolas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadNormalizesNonPositiveDepthLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stolas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  depth_limit: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Engine.DepthLimit)
}
