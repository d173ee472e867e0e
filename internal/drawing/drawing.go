// Package drawing is the optional status-bar drawing surface: a
// double-buffered pixmap kept present but inert in the core event flow, per
// spec.md §2's "Drawing context (3%) ... present but inert in the core
// flow; keep as an external facility." No example repo in the retrieval
// pack draws a status bar directly with raw xproto Pixmap/GC calls, so this
// follows the teacher's own raw-xproto idiom (wm/frame.go's CreateWindow
// call shape) rather than adopting a GUI toolkit, consistent with
// SPEC_FULL.md §11's decision not to wire gioui.org here.
package drawing

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Surface is a double-buffered pixmap for an optional status bar: draw into
// the back pixmap, then Flip to present it via CopyArea. front is the
// idle half of the pair, allocated up front and freed on Close; nothing
// currently draws into it or swaps it with back since this surface has no
// caller yet (see package doc comment).
type Surface struct {
	conn          *xgb.Conn
	window        xproto.Window
	gc            xproto.Gcontext
	front, back   xproto.Pixmap
	width, height uint16
}

// New allocates a front/back pixmap pair and a graphics context for window.
func New(conn *xgb.Conn, window xproto.Window, depth byte, width, height uint16) (*Surface, error) {
	front, err := xproto.NewPixmapId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate front pixmap: %w", err)
	}
	back, err := xproto.NewPixmapId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate back pixmap: %w", err)
	}
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate graphics context: %w", err)
	}

	drawable := xproto.Drawable(window)
	if err := xproto.CreatePixmapChecked(conn, depth, front, drawable, width, height).Check(); err != nil {
		return nil, fmt.Errorf("create front pixmap: %w", err)
	}
	if err := xproto.CreatePixmapChecked(conn, depth, back, drawable, width, height).Check(); err != nil {
		return nil, fmt.Errorf("create back pixmap: %w", err)
	}
	if err := xproto.CreateGCChecked(conn, gc, drawable, 0, nil).Check(); err != nil {
		return nil, fmt.Errorf("create graphics context: %w", err)
	}

	return &Surface{conn: conn, window: window, gc: gc, front: front, back: back, width: width, height: height}, nil
}

// FillRect paints a solid rectangle into the back pixmap.
func (s *Surface) FillRect(x, y int16, w, h uint16, color uint32) error {
	if err := xproto.ChangeGCChecked(s.conn, s.gc, xproto.GcForeground, []uint32{color}).Check(); err != nil {
		return fmt.Errorf("set foreground: %w", err)
	}
	rect := xproto.Rectangle{X: x, Y: y, Width: w, Height: h}
	if err := xproto.PolyFillRectangleChecked(s.conn, xproto.Drawable(s.back), s.gc, []xproto.Rectangle{rect}).Check(); err != nil {
		return fmt.Errorf("fill rect: %w", err)
	}
	return nil
}

// Flip copies the back pixmap onto the window, presenting the frame drawn
// since the last Flip.
func (s *Surface) Flip() error {
	err := xproto.CopyAreaChecked(s.conn,
		xproto.Drawable(s.back), xproto.Drawable(s.window), s.gc,
		0, 0, 0, 0, s.width, s.height,
	).Check()
	if err != nil {
		return fmt.Errorf("flip surface: %w", err)
	}
	return nil
}

// Resize records a new size (e.g. after a strut change moves the bar). It
// does not reallocate the pixmaps; callers that need the backing store to
// actually grow must Close and New a fresh Surface.
func (s *Surface) Resize(width, height uint16) error {
	s.width, s.height = width, height
	return nil
}

// Close frees the pixmaps and graphics context.
func (s *Surface) Close() {
	_ = xproto.FreePixmapChecked(s.conn, s.front).Check()
	_ = xproto.FreePixmapChecked(s.conn, s.back).Check()
	_ = xproto.FreeGCChecked(s.conn, s.gc).Check()
}
