package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
gap_size = 8
border_width = 1
bar_height = 0

[[bindings]]
mods = "alt"
key = "j"
action = "cycle_layout"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, uint16(8), cfg.GapSize)
	assert.Equal(t, uint16(1), cfg.BorderWidth)
	require.Len(t, cfg.Bindings, 1)
	assert.Equal(t, "cycle_layout", cfg.Bindings[0].Action)
}

func TestDirHonorsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	assert.Equal(t, "/tmp/xdgtest/driftwm", Dir())
}
