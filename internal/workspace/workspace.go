// Package workspace is a single virtual desktop: ordered tiled/floating
// client lists, the active layout, and focus, grounded on
// _examples/original_source/src/layout.rs's Workspace<T> (retile, show/hide,
// spawn/remove/toggle_floating) translated from its AbstractWindow-generic
// methods into plain functions over *client.Client handles, per spec.md
// §9's decision to keep Client a concrete type.
package workspace

import (
	"fmt"

	"github.com/BurntSushi/xgbutil"

	"github.com/driftwm/driftwm/internal/atoms"
	"github.com/driftwm/driftwm/internal/client"
	"github.com/driftwm/driftwm/internal/layout"
	"github.com/driftwm/driftwm/internal/x11"
)

// ClientStore is the subset of *slab.Slab[*client.Client] Workspace needs;
// Screen owns the real slab and passes it into every call so Workspace
// itself stays free of a direct slab dependency.
type ClientStore interface {
	Get(handle int) (*client.Client, bool)
}

// Workspace is one of the ten virtual desktops.
type Workspace struct {
	ID      uint8
	Name    string
	Pos     x11.Position
	Gap     uint16
	Layout  layout.Kind
	Showing bool

	Tiled    []int
	Floating []int
	Focused  *int
}

// New constructs a workspace at id (1..10) with name "Desktop <id>".
func New(id uint8, pos x11.Position, gap uint16) *Workspace {
	return &Workspace{
		ID:   id,
		Name: fmt.Sprintf("Desktop %d", id),
		Pos:  pos,
		Gap:  gap,
	}
}

// Handles returns every client handle on this workspace, tiled first.
func (w *Workspace) Handles() []int {
	out := make([]int, 0, len(w.Tiled)+len(w.Floating))
	out = append(out, w.Tiled...)
	out = append(out, w.Floating...)
	return out
}

func removeFrom(list []int, handle int) ([]int, bool) {
	for i, h := range list {
		if h == handle {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

// SpawnWindow appends handle to the tiled list, shows it, and retiles.
func (w *Workspace) SpawnWindow(xu *xgbutil.XUtil, clients ClientStore, handle int) error {
	w.Tiled = append(w.Tiled, handle)
	if c, ok := clients.Get(handle); ok {
		if err := c.Show(xu); err != nil {
			return fmt.Errorf("show spawned window: %w", err)
		}
	}
	return w.retile(xu, clients)
}

// ToggleFloating moves handle between the tiled and floating lists.
func (w *Workspace) ToggleFloating(xu *xgbutil.XUtil, clients ClientStore, handle int) error {
	if rest, ok := removeFrom(w.Tiled, handle); ok {
		w.Tiled = rest
		w.Floating = append(w.Floating, handle)
		return w.retile(xu, clients)
	}
	if rest, ok := removeFrom(w.Floating, handle); ok {
		w.Floating = rest
		w.Tiled = append(w.Tiled, handle)
		return w.retile(xu, clients)
	}
	return nil
}

// RemoveWindow drops handle from whichever list holds it, clears focus if it
// was focused, and retiles only if a removal actually happened.
func (w *Workspace) RemoveWindow(xu *xgbutil.XUtil, clients ClientStore, handle int) error {
	removed := false
	if rest, ok := removeFrom(w.Tiled, handle); ok {
		w.Tiled = rest
		removed = true
	}
	if rest, ok := removeFrom(w.Floating, handle); ok {
		w.Floating = rest
		removed = true
	}
	if w.Focused != nil && *w.Focused == handle {
		w.Focused = nil
	}
	if !removed {
		return nil
	}
	return w.retile(xu, clients)
}

// CloseWindow invokes handle's ICCCM close protocol. If the client had no
// WM_DELETE_WINDOW support its frame was destroyed synchronously, in which
// case this also removes it from the workspace's lists.
func (w *Workspace) CloseWindow(xu *xgbutil.XUtil, clients ClientStore, at *atoms.Atoms, handle int) (bool, error) {
	c, ok := clients.Get(handle)
	if !ok {
		return false, nil
	}
	removedSync, err := c.Close(xu, at)
	if err != nil {
		return removedSync, fmt.Errorf("close window: %w", err)
	}
	if removedSync {
		if err := w.RemoveWindow(xu, clients, handle); err != nil {
			return removedSync, err
		}
	}
	return removedSync, nil
}

// Show maps every client (tiled and floating), retiles, then re-sends
// geometry: mapping a window can cause substructure-redirect reordering, so
// a second retile pass forces the final geometry to stick.
func (w *Workspace) Show(xu *xgbutil.XUtil, clients ClientStore) error {
	w.Showing = true
	for _, h := range w.Handles() {
		if c, ok := clients.Get(h); ok {
			if err := c.Show(xu); err != nil {
				return fmt.Errorf("show workspace client: %w", err)
			}
		}
	}
	if err := w.retile(xu, clients); err != nil {
		return err
	}
	return w.retile(xu, clients)
}

// Hide unfocuses and unmaps every client on the workspace.
func (w *Workspace) Hide(xu *xgbutil.XUtil, clients ClientStore) error {
	if err := w.UnfocusAll(xu, clients); err != nil {
		return err
	}
	for _, h := range w.Handles() {
		if c, ok := clients.Get(h); ok {
			if err := c.Hide(xu); err != nil {
				return fmt.Errorf("hide workspace client: %w", err)
			}
		}
	}
	w.Showing = false
	return nil
}

// CycleLayout advances to the next layout and retiles if showing.
func (w *Workspace) CycleLayout(xu *xgbutil.XUtil, clients ClientStore) error {
	w.Layout = w.Layout.Next()
	return w.retile(xu, clients)
}

// SetLayout sets the layout and retiles if showing.
func (w *Workspace) SetLayout(xu *xgbutil.XUtil, clients ClientStore, l layout.Kind) error {
	w.Layout = l
	return w.retile(xu, clients)
}

// SetScreenPosition changes the workspace's drawable rectangle (used when
// struts change) and retiles.
func (w *Workspace) SetScreenPosition(xu *xgbutil.XUtil, clients ClientStore, pos x11.Position) error {
	w.Pos = pos
	return w.retile(xu, clients)
}

// FocusClient unfocuses any previously focused client and focuses handle.
func (w *Workspace) FocusClient(xu *xgbutil.XUtil, clients ClientStore, at *atoms.Atoms, handle int) error {
	if err := w.UnfocusAll(xu, clients); err != nil {
		return err
	}
	c, ok := clients.Get(handle)
	if !ok {
		return nil
	}
	if err := c.Focus(xu, at); err != nil {
		return fmt.Errorf("focus client: %w", err)
	}
	w.Focused = &handle
	return nil
}

// UnfocusAll clears focus, reverting the previously-focused client's border.
func (w *Workspace) UnfocusAll(xu *xgbutil.XUtil, clients ClientStore) error {
	if w.Focused == nil {
		return nil
	}
	if c, ok := clients.Get(*w.Focused); ok {
		if err := c.Unfocus(xu); err != nil {
			return fmt.Errorf("unfocus client: %w", err)
		}
	}
	w.Focused = nil
	return nil
}

// retile is a no-op when hidden or when nothing is tiled; floating windows
// never participate.
func (w *Workspace) retile(xu *xgbutil.XUtil, clients ClientStore) error {
	if !w.Showing || len(w.Tiled) == 0 {
		return nil
	}
	if len(w.Tiled) == 1 {
		pos := layout.Single(w.Pos, w.Gap)
		if c, ok := clients.Get(w.Tiled[0]); ok {
			if err := c.Update(xu, pos); err != nil {
				return fmt.Errorf("update sole tiled client: %w", err)
			}
		}
		return nil
	}

	geoms := layout.Tile(w.Layout, w.Tiled, w.Gap, w.Pos)
	for handle, pos := range geoms {
		if c, ok := clients.Get(handle); ok {
			if err := c.Update(xu, pos); err != nil {
				return fmt.Errorf("update tiled client %d: %w", handle, err)
			}
		}
	}
	return nil
}
