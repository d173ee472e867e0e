// Package x11 wraps the X connection this window manager holds for its
// entire lifetime, grounded on _examples/funkycode-marwind's sibling "x11"
// package (referenced by wm/wm.go and wm/frame.go but not present in the
// retrieval pack) and on the call shapes _examples/other_examples'
// cortile files (store/root.go, store/client.go) exercise against
// github.com/BurntSushi/xgbutil: XUtil.Conn() returns the underlying
// *xgb.Conn so raw xproto calls and xgbutil/ewmh/icccm calls share one wire
// connection.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Conn is the live connection plus the root window geometry driftwm reads
// once at startup.
type Conn struct {
	XU   *xgbutil.XUtil
	Root xproto.Window
	Info xproto.ScreenInfo
}

// Connect opens the X display named by $DISPLAY (or the argument passed to
// Xlib-style connection strings, when display is non-empty).
func Connect(display string) (*Conn, error) {
	var xu *xgbutil.XUtil
	var err error
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	setup := xproto.Setup(xu.Conn())
	if len(setup.Roots) == 0 {
		return nil, fmt.Errorf("connect to X server: no screens advertised")
	}
	screen := setup.Roots[0]

	return &Conn{
		XU:   xu,
		Root: screen.Root,
		Info: screen,
	}, nil
}

// Raw returns the underlying wire connection for direct xproto calls.
func (c *Conn) Raw() *xgb.Conn {
	return c.XU.Conn()
}

// Width and Height are the root window's pixel dimensions.
func (c *Conn) Width() uint16  { return c.Info.WidthInPixels }
func (c *Conn) Height() uint16 { return c.Info.HeightInPixels }

// Close tears down the connection.
func (c *Conn) Close() {
	c.XU.Conn().Close()
}
