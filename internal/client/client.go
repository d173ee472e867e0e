// Package client owns the reparented child+frame pair that represents one
// managed top-level window, grounded on
// _examples/funkycode-marwind/wm/frame.go's createParent/reparent/doMap/
// doUnmap/onDestroy sequence, with the ICCCM close handshake translated from
// _examples/driusan-dewm/main.go's byte-parsing WM_PROTOCOLS loop into
// xgbutil/icccm + xgbutil/ewmh calls (see DESIGN.md).
package client

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/driftwm/driftwm/internal/atoms"
	"github.com/driftwm/driftwm/internal/x11"
)

const frameEventMask = xproto.EventMaskSubstructureNotify |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskPropertyChange |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease

// Visuals bundles the cosmetic constants Client needs at creation and focus
// time, pulled from config rather than hard-coded.
type Visuals struct {
	BorderWidth    uint16
	BarHeight      uint16
	BorderActive   uint32
	BorderInactive uint32
}

// Client is one managed top-level window: the third-party child plus the
// frame this window manager created to wrap it.
type Client struct {
	Window    xproto.Window // the third-party window
	Frame     xproto.Window // the manager-created parent
	Name      string
	Pos       x11.Position
	Visible   bool
	Workspace uint8

	vis Visuals
}

// New reparents win into a freshly created frame and returns the Client.
// Invariant: Frame != Window; both are not yet registered in any lookup —
// the caller (Screen) owns that.
func New(xu *xgbutil.XUtil, root xproto.Window, win xproto.Window, vis Visuals) (*Client, error) {
	conn := xu.Conn()
	frame, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate frame id: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.Roots[0]

	err = xproto.CreateWindowChecked(conn, screen.RootDepth, frame, root,
		0, 0, 1, 1, vis.BorderWidth, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask,
		[]uint32{vis.BorderInactive, vis.BorderInactive, uint32(frameEventMask)},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create frame window: %w", err)
	}

	if err := xproto.ReparentWindowChecked(conn, win, frame, 0, int16(vis.BarHeight)).Check(); err != nil {
		return nil, fmt.Errorf("reparent window: %w", err)
	}
	xproto.ChangeSaveSet(conn, xfixes.SaveSetModeInsert, win)

	name, _ := ewmh.WmNameGet(xu, win)

	return &Client{
		Window: win,
		Frame:  frame,
		Name:   name,
		vis:    vis,
	}, nil
}

// Show maps the frame then the child.
func (c *Client) Show(xu *xgbutil.XUtil) error {
	conn := xu.Conn()
	if err := xproto.MapWindowChecked(conn, c.Frame).Check(); err != nil {
		return fmt.Errorf("map frame: %w", err)
	}
	if err := xproto.MapWindowChecked(conn, c.Window).Check(); err != nil {
		return fmt.Errorf("map window: %w", err)
	}
	c.Visible = true
	return nil
}

// Hide unmaps the child then the frame.
func (c *Client) Hide(xu *xgbutil.XUtil) error {
	conn := xu.Conn()
	if err := xproto.UnmapWindowChecked(conn, c.Window).Check(); err != nil {
		return fmt.Errorf("unmap window: %w", err)
	}
	if err := xproto.UnmapWindowChecked(conn, c.Frame).Check(); err != nil {
		return fmt.Errorf("unmap frame: %w", err)
	}
	c.Visible = false
	return nil
}

// Update configures the frame to (x,y,w,h) and the child to fill the frame
// below the bar, both inset by the border width.
func (c *Client) Update(xu *xgbutil.XUtil, pos x11.Position) error {
	conn := xu.Conn()
	border := uint32(c.vis.BorderWidth)
	bar := uint32(c.vis.BarHeight)

	innerW := satSub32(uint32(pos.Width), 2*border)
	innerH := satSub32(uint32(pos.Height), 2*border)

	err := xproto.ConfigureWindowChecked(conn, c.Frame,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(pos.X), uint32(pos.Y), innerW, innerH},
	).Check()
	if err != nil {
		return fmt.Errorf("configure frame: %w", err)
	}

	childH := satSub32(innerH, bar)
	err = xproto.ConfigureWindowChecked(conn, c.Window,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{0, bar, innerW, childH},
	).Check()
	if err != nil {
		return fmt.Errorf("configure child: %w", err)
	}

	c.Pos = pos
	return nil
}

func satSub32(a, b uint32) uint32 {
	if b >= a {
		return 1
	}
	return a - b
}

// Focus sets the frame border to the active color and directs input focus
// to the child. If the child advertises WM_TAKE_FOCUS it is sent that
// ClientMessage instead of an unconditional SetInputFocus, per
// _examples/original_source/src/screen.rs's enter_client and both Go
// teachers' TakeFocusPropLoop.
func (c *Client) Focus(xu *xgbutil.XUtil, at *atoms.Atoms) error {
	conn := xu.Conn()
	if err := setBorder(conn, c.Frame, c.vis.BorderActive); err != nil {
		return err
	}

	if protocols, err := icccm.WmProtocolsGet(xu, c.Window); err == nil && containsProtocol(protocols, "WM_TAKE_FOCUS") {
		if err := ewmh.ClientEvent(xu, c.Window, "WM_PROTOCOLS", int(at.WMTakeFocus), int(xproto.TimeCurrentTime)); err == nil {
			return nil
		}
	}

	return xproto.SetInputFocusChecked(conn, xproto.InputFocusParent, c.Window, xproto.TimeCurrentTime).Check()
}

// Unfocus resets the frame border to the inactive color.
func (c *Client) Unfocus(xu *xgbutil.XUtil) error {
	return setBorder(xu.Conn(), c.Frame, c.vis.BorderInactive)
}

func setBorder(conn *xgb.Conn, win xproto.Window, color uint32) error {
	err := xproto.ChangeWindowAttributesChecked(conn, win, xproto.CwBorderPixel, []uint32{color}).Check()
	if err != nil {
		return fmt.Errorf("set border color: %w", err)
	}
	return nil
}

// Destroy destroys the frame; the server cascades destruction to the child.
func (c *Client) Destroy(xu *xgbutil.XUtil) error {
	if err := xproto.DestroyWindowChecked(xu.Conn(), c.Frame).Check(); err != nil {
		return fmt.Errorf("destroy frame: %w", err)
	}
	return nil
}

// Close requests the child close itself via WM_DELETE_WINDOW if advertised,
// returning false (destruction deferred to a later DestroyNotify). If the
// protocol isn't advertised or sending fails, it destroys the frame
// synchronously and returns true.
func (c *Client) Close(xu *xgbutil.XUtil, at *atoms.Atoms) (bool, error) {
	protocols, err := icccm.WmProtocolsGet(xu, c.Window)
	if err == nil && containsProtocol(protocols, "WM_DELETE_WINDOW") {
		if err := ewmh.ClientEvent(xu, c.Window, "WM_PROTOCOLS", int(at.WMDeleteWindow), int(xproto.TimeCurrentTime)); err == nil {
			return false, nil
		}
	}
	if err := c.Destroy(xu); err != nil {
		return true, err
	}
	return true, nil
}

func containsProtocol(protocols []string, name string) bool {
	for _, p := range protocols {
		if p == name {
			return true
		}
	}
	return false
}
