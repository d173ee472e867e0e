// Package screen is the aggregate root: ten workspaces, the client and
// reserved-client arenas, the window-id lookup table, and the EWMH property
// mirror, grounded on _examples/original_source/src/screen.rs's Screen
// struct and its add_window/remove_window/handle_reserved_client/
// enter_client/kill_children methods, adapted to Go's slab package and to
// xgbutil/ewmh for property publication instead of hand-rolled
// change_property! calls.
package screen

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/sirupsen/logrus"

	"github.com/driftwm/driftwm/internal/atoms"
	"github.com/driftwm/driftwm/internal/client"
	"github.com/driftwm/driftwm/internal/layout"
	"github.com/driftwm/driftwm/internal/slab"
	"github.com/driftwm/driftwm/internal/workspace"
	"github.com/driftwm/driftwm/internal/x11"
)

// Side identifies which screen edge a ReservedClient docks against.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// ReservedClient is a docked panel/taskbar that reserved screen real estate
// via _NET_WM_STRUT[_PARTIAL] rather than being tiled.
type ReservedClient struct {
	Window   xproto.Window
	Side     Side
	Reserved uint16
}

const workspaceCount = 10

// lookupEntry tags a slab handle with the arena it was allocated from:
// Clients and Reserved are independent slabs whose index spaces both start
// at 0 and overlap, so a bare handle is ambiguous on its own.
type lookupEntry struct {
	reserved bool
	handle   int
}

// Screen owns every piece of window-manager state the reactor mutates.
type Screen struct {
	XU   *xgbutil.XUtil
	Root xproto.Window
	Atoms *atoms.Atoms
	Vis  client.Visuals
	Log  *logrus.Logger

	Width, Height uint16
	Gap           uint16

	ReservedTop, ReservedBottom, ReservedLeft, ReservedRight uint16

	Workspaces [workspaceCount]*workspace.Workspace
	Clients    *slab.Slab[*client.Client]
	Reserved   *slab.Slab[*ReservedClient]
	Lookup     map[xproto.Window]lookupEntry // window id (frame or child) -> owning arena + handle

	Current uint8 // 1..10
	Focused *int  // Clients handle focused in the current workspace
}

// New constructs the ten workspaces at the full root rectangle, registers
// workspace 1 as showing, and publishes the initial EWMH mirror.
func New(xu *xgbutil.XUtil, root xproto.Window, width, height, gap uint16, at *atoms.Atoms, vis client.Visuals, log *logrus.Logger) (*Screen, error) {
	s := &Screen{
		XU:      xu,
		Root:    root,
		Atoms:   at,
		Vis:     vis,
		Log:     log,
		Width:   width,
		Height:  height,
		Gap:     gap,
		Clients: slab.New[*client.Client](),
		Reserved: slab.New[*ReservedClient](),
		Lookup:  map[xproto.Window]lookupEntry{},
		Current: 1,
	}

	rect := x11.Position{X: 0, Y: 0, Width: width, Height: height}
	for i := 0; i < workspaceCount; i++ {
		s.Workspaces[i] = workspace.New(uint8(i+1), rect, gap)
	}
	s.Workspaces[0].Showing = true

	if err := s.publish(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Screen) currentWorkspace() *workspace.Workspace {
	return s.Workspaces[s.Current-1]
}

// UpdateSize re-validates strut reservations against the new root geometry
// and applies the resulting content rectangle to every workspace.
func (s *Screen) UpdateSize(width, height uint16) error {
	s.Width, s.Height = width, height

	if s.ReservedTop+s.ReservedBottom >= height {
		s.Log.Warn("reserved top+bottom exceeds screen height, zeroing")
		s.ReservedTop, s.ReservedBottom = 0, 0
	}
	if s.ReservedLeft+s.ReservedRight >= width {
		s.Log.Warn("reserved left+right exceeds screen width, zeroing")
		s.ReservedLeft, s.ReservedRight = 0, 0
	}

	rect := s.contentRect()
	for _, ws := range s.Workspaces {
		if err := ws.SetScreenPosition(s.XU, s.Clients, rect); err != nil {
			return fmt.Errorf("apply screen position: %w", err)
		}
	}
	return nil
}

func (s *Screen) contentRect() x11.Position {
	return x11.Position{
		X:      s.ReservedLeft,
		Y:      s.ReservedTop,
		Width:  s.Width - s.ReservedLeft - s.ReservedRight,
		Height: s.Height - s.ReservedTop - s.ReservedBottom,
	}
}

// determineSide applies the left -> bottom -> top -> right precedence order
// pinned by spec test S4 (original_source/src/screen.rs's
// handle_reserved_client if/else-if chain).
func determineSide(left, right, top, bottom uint) (Side, uint16, bool) {
	switch {
	case left > 0:
		return Left, uint16(left), true
	case bottom > 0:
		return Bottom, uint16(bottom), true
	case top > 0:
		return Top, uint16(top), true
	case right > 0:
		return Right, uint16(right), true
	default:
		return 0, 0, false
	}
}

func (s *Screen) reserve(side Side, extent uint16) {
	switch side {
	case Top:
		s.ReservedTop += extent
	case Bottom:
		s.ReservedBottom += extent
	case Left:
		s.ReservedLeft += extent
	case Right:
		s.ReservedRight += extent
	}
}

func (s *Screen) free(side Side, extent uint16) {
	switch side {
	case Top:
		s.ReservedTop = satSub(s.ReservedTop, extent)
	case Bottom:
		s.ReservedBottom = satSub(s.ReservedBottom, extent)
	case Left:
		s.ReservedLeft = satSub(s.ReservedLeft, extent)
	case Right:
		s.ReservedRight = satSub(s.ReservedRight, extent)
	}
}

func satSub(a, b uint16) uint16 {
	if b >= a {
		return 0
	}
	return a - b
}

// AddWindow probes the new top-level window for strut reservations; if none
// are present it becomes a tiled/managed Client on the current workspace.
func (s *Screen) AddWindow(win xproto.Window) error {
	if side, extent, ok := s.probeStrut(win); ok {
		return s.addReserved(win, side, extent)
	}

	c, err := client.New(s.XU, s.Root, win, s.Vis)
	if err != nil {
		return fmt.Errorf("create client for %d: %w", win, err)
	}
	handle := s.Clients.Push(c)
	s.Lookup[c.Frame] = lookupEntry{handle: handle}
	s.Lookup[c.Window] = lookupEntry{handle: handle}
	c.Workspace = s.Current

	if err := s.currentWorkspace().SpawnWindow(s.XU, s.Clients, handle); err != nil {
		return fmt.Errorf("spawn window: %w", err)
	}
	return s.publish()
}

func (s *Screen) probeStrut(win xproto.Window) (Side, uint16, bool) {
	if partial, err := ewmh.WmStrutPartialGet(s.XU, win); err == nil {
		if side, extent, ok := determineSide(partial.Left, partial.Right, partial.Top, partial.Bottom); ok {
			return side, extent, true
		}
	}
	if strut, err := ewmh.WmStrutGet(s.XU, win); err == nil {
		if side, extent, ok := determineSide(strut.Left, strut.Right, strut.Top, strut.Bottom); ok {
			return side, extent, true
		}
	}
	return 0, 0, false
}

func (s *Screen) addReserved(win xproto.Window, side Side, extent uint16) error {
	if err := xproto.MapWindowChecked(s.XU.Conn(), win).Check(); err != nil {
		return fmt.Errorf("map reserved window: %w", err)
	}
	if err := xproto.ChangeWindowAttributesChecked(s.XU.Conn(), win, xproto.CwEventMask,
		[]uint32{uint32(xproto.EventMaskEnterWindow)}).Check(); err != nil {
		return fmt.Errorf("subscribe reserved window: %w", err)
	}

	handle := s.Reserved.Push(&ReservedClient{Window: win, Side: side, Reserved: extent})
	s.Lookup[win] = lookupEntry{reserved: true, handle: handle}
	s.reserve(side, extent)

	if err := s.UpdateSize(s.Width, s.Height); err != nil {
		return err
	}
	return s.publish()
}

// RemoveWindow drops either a reserved client or a managed client, freeing
// whichever resources it held.
func (s *Screen) RemoveWindow(win xproto.Window) error {
	entry, ok := s.Lookup[win]
	if !ok {
		return nil
	}

	if entry.reserved {
		rc, ok := s.Reserved.Get(entry.handle)
		if !ok {
			delete(s.Lookup, win)
			return nil
		}
		s.free(rc.Side, rc.Reserved)
		s.Reserved.Remove(entry.handle)
		delete(s.Lookup, win)
		if err := s.UpdateSize(s.Width, s.Height); err != nil {
			return err
		}
		return s.publish()
	}

	handle := entry.handle
	c, ok := s.Clients.Get(handle)
	if !ok {
		delete(s.Lookup, win)
		return nil
	}

	for _, ws := range s.Workspaces {
		if err := ws.RemoveWindow(s.XU, s.Clients, handle); err != nil {
			return fmt.Errorf("remove from workspace: %w", err)
		}
	}
	_ = c.Destroy(s.XU)
	delete(s.Lookup, c.Frame)
	delete(s.Lookup, c.Window)
	s.Clients.Remove(handle)
	if s.Focused != nil && *s.Focused == handle {
		s.Focused = nil
	}
	return s.publish()
}

// EnterClient retargets input focus to whichever window an EnterNotify
// named: the root, a managed client in the current workspace, or a docked
// reserved client.
func (s *Screen) EnterClient(win xproto.Window) error {
	for _, ws := range s.Workspaces {
		if err := ws.UnfocusAll(s.XU, s.Clients); err != nil {
			return err
		}
	}
	s.Focused = nil

	if win == s.Root {
		return xproto.SetInputFocusChecked(s.XU.Conn(), xproto.InputFocusPointerRoot, s.Root, xproto.TimeCurrentTime).Check()
	}

	entry, ok := s.Lookup[win]
	if !ok {
		return nil
	}

	if entry.reserved {
		return xproto.SetInputFocusChecked(s.XU.Conn(), xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime).Check()
	}

	handle := entry.handle
	if _, ok := s.Clients.Get(handle); ok {
		ws := s.currentWorkspace()
		if !containsHandle(ws.Handles(), handle) {
			return nil
		}
		if err := ws.FocusClient(s.XU, s.Clients, s.Atoms, handle); err != nil {
			return err
		}
		s.Focused = &handle
		return nil
	}
	return nil
}

func containsHandle(handles []int, target int) bool {
	for _, h := range handles {
		if h == target {
			return true
		}
	}
	return false
}

// CloseFocusedWindow invokes the close protocol on the currently focused
// client, fully removing it only if the close happened synchronously.
func (s *Screen) CloseFocusedWindow() error {
	if s.Focused == nil {
		return nil
	}
	handle := *s.Focused
	removedSync, err := s.currentWorkspace().CloseWindow(s.XU, s.Clients, s.Atoms, handle)
	if err != nil {
		return err
	}
	if removedSync {
		s.Focused = nil
		if c, ok := s.Clients.Get(handle); ok {
			return s.RemoveWindow(c.Window)
		}
	}
	return nil
}

// SwitchWorkspace changes the active workspace id, publishing the new
// _NET_CURRENT_DESKTOP before hiding the old workspace so external observers
// never see stale state. The focused-client handle belongs to the
// workspace being left, not the one being switched to, so it is cleared
// here rather than left to dangle until the next EnterNotify.
func (s *Screen) SwitchWorkspace(id uint8) error {
	if id < 1 || int(id) > workspaceCount || id == s.Current {
		return nil
	}
	old := s.Current
	s.Current = id
	s.Focused = nil

	if err := s.publish(); err != nil {
		return err
	}
	if err := s.Workspaces[old-1].Hide(s.XU, s.Clients); err != nil {
		return fmt.Errorf("hide old workspace: %w", err)
	}
	if err := s.Workspaces[id-1].Show(s.XU, s.Clients); err != nil {
		return fmt.Errorf("show new workspace: %w", err)
	}
	return nil
}

// CycleLayout advances the current workspace's layout.
func (s *Screen) CycleLayout() error {
	if err := s.currentWorkspace().CycleLayout(s.XU, s.Clients); err != nil {
		return err
	}
	return s.publish()
}

// SetLayout sets the current workspace's layout.
func (s *Screen) SetLayout(l layout.Kind) error {
	if err := s.currentWorkspace().SetLayout(s.XU, s.Clients, l); err != nil {
		return err
	}
	return s.publish()
}

// KillChildren tears down every client and reserved client on shutdown.
func (s *Screen) KillChildren() {
	_ = xproto.SetInputFocusChecked(s.XU.Conn(), xproto.InputFocusPointerRoot, s.Root, xproto.TimeCurrentTime).Check()

	s.Clients.Each(func(_ int, c **client.Client) {
		_ = (*c).Destroy(s.XU)
	})
	s.Reserved.Each(func(_ int, rc **ReservedClient) {
		_ = xproto.DestroyWindowChecked(s.XU.Conn(), (*rc).Window).Check()
	})

	s.Clients = slab.New[*client.Client]()
	s.Reserved = slab.New[*ReservedClient]()
	s.Lookup = map[xproto.Window]lookupEntry{}
	s.ReservedTop, s.ReservedBottom, s.ReservedLeft, s.ReservedRight = 0, 0, 0, 0
}

// publish re-emits the full EWMH property mirror.
func (s *Screen) publish() error {
	xu := s.XU

	if err := ewmh.SupportedSet(xu, s.Atoms.Supported()); err != nil {
		return fmt.Errorf("publish supported atoms: %w", err)
	}
	if err := ewmh.NumberOfDesktopsSet(xu, workspaceCount); err != nil {
		return fmt.Errorf("publish desktop count: %w", err)
	}
	if err := ewmh.CurrentDesktopSet(xu, int(s.Current)); err != nil {
		return fmt.Errorf("publish current desktop: %w", err)
	}

	names := make([]string, workspaceCount)
	for i, ws := range s.Workspaces {
		names[i] = ws.Name
	}
	if err := ewmh.DesktopNamesSet(xu, names); err != nil {
		return fmt.Errorf("publish desktop names: %w", err)
	}

	if err := ewmh.DesktopViewportSet(xu, []ewmh.DesktopViewport{{X: int(s.ReservedLeft), Y: int(s.ReservedTop)}}); err != nil {
		return fmt.Errorf("publish desktop viewport: %w", err)
	}

	windows := make([]xproto.Window, 0, s.Clients.Len())
	s.Clients.Each(func(_ int, c **client.Client) {
		windows = append(windows, (*c).Window)
		_ = ewmh.WmDesktopSet(xu, (*c).Window, uint((*c).Workspace))
	})
	if err := ewmh.ClientListSet(xu, windows); err != nil {
		return fmt.Errorf("publish client list: %w", err)
	}

	stacking := make([]xproto.Window, 0, s.Reserved.Len()+len(s.currentWorkspace().Handles()))
	s.Reserved.Each(func(_ int, rc **ReservedClient) {
		stacking = append(stacking, (*rc).Window)
	})
	for _, h := range s.currentWorkspace().Handles() {
		if c, ok := s.Clients.Get(h); ok {
			stacking = append(stacking, c.Window)
		}
	}
	if err := ewmh.ClientListStackingSet(xu, stacking); err != nil {
		return fmt.Errorf("publish client list stacking: %w", err)
	}

	if err := ewmh.ShowingDesktopSet(xu, false); err != nil {
		return fmt.Errorf("publish showing desktop: %w", err)
	}
	return nil
}
