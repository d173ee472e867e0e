package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwm/driftwm/internal/actions"
	"github.com/driftwm/driftwm/internal/config"
	"github.com/driftwm/driftwm/internal/keyboard"
	"github.com/driftwm/driftwm/internal/keysym"
	"github.com/driftwm/driftwm/internal/layout"
)

type fakeLog struct{ warnings []string }

func (f *fakeLog) Warnf(format string, args ...interface{}) {
	f.warnings = append(f.warnings, format)
}

func TestResolveKeysymLettersAndNamed(t *testing.T) {
	sym, err := resolveKeysym("q")
	require.NoError(t, err)
	assert.Equal(t, keysym.Letter('q'), sym)

	sym, err = resolveKeysym("Return")
	require.NoError(t, err)
	assert.Equal(t, keysym.XKReturn, sym)

	_, err = resolveKeysym("!")
	assert.Error(t, err)
}

func TestResolveModsCombines(t *testing.T) {
	m := resolveMods("ctrl+alt")
	assert.True(t, m&keyboard.ModControl != 0)
	assert.True(t, m&keyboard.ModAlt != 0)
	assert.False(t, m&keyboard.ModShift != 0)
}

func TestResolveActionVariants(t *testing.T) {
	a, err := resolveAction("quit")
	require.NoError(t, err)
	assert.Equal(t, actions.Quit, a.Type)

	a, err = resolveAction("layout:monocle")
	require.NoError(t, err)
	assert.Equal(t, actions.SwitchToLayout, a.Type)
	assert.Equal(t, layout.Monocle, a.Layout)

	a, err = resolveAction("workspace:3")
	require.NoError(t, err)
	assert.Equal(t, actions.SwitchToWorkspace, a.Type)
	assert.Equal(t, uint8(3), a.Workspace)

	a, err = resolveAction("launch:dmenu_run")
	require.NoError(t, err)
	assert.Equal(t, actions.Launch, a.Type)
	assert.Equal(t, "dmenu_run", a.Cmd)

	_, err = resolveAction("bogus")
	assert.Error(t, err)

	_, err = resolveAction("workspace:11")
	assert.Error(t, err)
}

func TestBuildBindingsSkipsUnresolvableAndLogsWarning(t *testing.T) {
	cfg := &config.Config{
		Bindings: []config.Binding{
			{Mods: "alt", Key: "l", Action: "cycle_layout"},
			{Mods: "alt", Key: "!", Action: "quit"}, // unresolvable key
		},
	}
	log := &fakeLog{}
	bindings, table := buildBindings(cfg, log)

	require.Len(t, bindings, 1)
	require.Len(t, table, 1)
	assert.Equal(t, actions.CycleLayout, table[0].Type)
	assert.Len(t, log.warnings, 1)
}

func TestBuildBindingsMatchesDefaultConfig(t *testing.T) {
	cfg := config.Default()
	log := &fakeLog{}
	bindings, table := buildBindings(cfg, log)
	require.Len(t, bindings, len(cfg.Bindings))
	require.Len(t, table, len(cfg.Bindings))
}
