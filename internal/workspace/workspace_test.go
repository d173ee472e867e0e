package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwm/driftwm/internal/client"
	"github.com/driftwm/driftwm/internal/layout"
	"github.com/driftwm/driftwm/internal/x11"
)

// emptyStore never finds a client, so every X-touching branch in Workspace's
// methods is skipped and the underlying *xgbutil.XUtil is never
// dereferenced — letting these tests exercise the bookkeeping logic (list
// membership, focus clearing, retile no-op conditions) with a nil
// connection, no live display required.
type emptyStore struct{}

func (emptyStore) Get(handle int) (*client.Client, bool) { return nil, false }

func TestSpawnWindowAppendsToTiled(t *testing.T) {
	ws := New(1, x11.Position{Width: 1000, Height: 800}, 2)
	require.NoError(t, ws.SpawnWindow(nil, emptyStore{}, 7))
	assert.Equal(t, []int{7}, ws.Tiled)
}

func TestToggleFloatingMovesBetweenLists(t *testing.T) {
	ws := New(1, x11.Position{}, 0)
	ws.Tiled = []int{1, 2}

	require.NoError(t, ws.ToggleFloating(nil, emptyStore{}, 1))
	assert.Equal(t, []int{2}, ws.Tiled)
	assert.Equal(t, []int{1}, ws.Floating)

	require.NoError(t, ws.ToggleFloating(nil, emptyStore{}, 1))
	assert.ElementsMatch(t, []int{2, 1}, ws.Tiled)
	assert.Empty(t, ws.Floating)
}

func TestRemoveWindowClearsFocus(t *testing.T) {
	ws := New(1, x11.Position{}, 0)
	ws.Tiled = []int{5}
	focused := 5
	ws.Focused = &focused

	require.NoError(t, ws.RemoveWindow(nil, emptyStore{}, 5))
	assert.Empty(t, ws.Tiled)
	assert.Nil(t, ws.Focused)
}

func TestRemoveWindowNoMatchIsNoOp(t *testing.T) {
	ws := New(1, x11.Position{}, 0)
	ws.Tiled = []int{5}
	require.NoError(t, ws.RemoveWindow(nil, emptyStore{}, 99))
	assert.Equal(t, []int{5}, ws.Tiled)
}

func TestCycleLayoutAdvances(t *testing.T) {
	ws := New(1, x11.Position{}, 0)
	require.NoError(t, ws.CycleLayout(nil, emptyStore{}))
	assert.Equal(t, layout.MasterLeft, ws.Layout)
}

func TestRetileNoOpWhenHiddenOrEmpty(t *testing.T) {
	ws := New(1, x11.Position{Width: 100, Height: 100}, 2)
	ws.Showing = false
	ws.Tiled = []int{1}
	require.NoError(t, ws.retile(nil, emptyStore{}))

	ws.Showing = true
	ws.Tiled = nil
	require.NoError(t, ws.retile(nil, emptyStore{}))
}

func TestHandlesOrderTiledBeforeFloating(t *testing.T) {
	ws := New(1, x11.Position{}, 0)
	ws.Tiled = []int{1, 2}
	ws.Floating = []int{3}
	assert.Equal(t, []int{1, 2, 3}, ws.Handles())
}
