// Package reactor is the WM's single-threaded event loop: boot, event
// translation, action dispatch, and shutdown, grounded on
// _examples/original_source/src/wm.rs's Wm::setup/run/translate_event and
// _examples/driusan-dewm/main.go's event-loop structure, adapted to the
// channel/bounded-timeout concurrency model spec.md §5 mandates instead of
// either source's direct blocking read.
package reactor

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/driftwm/driftwm/internal/actions"
	"github.com/driftwm/driftwm/internal/atoms"
	"github.com/driftwm/driftwm/internal/client"
	"github.com/driftwm/driftwm/internal/config"
	"github.com/driftwm/driftwm/internal/keyboard"
	"github.com/driftwm/driftwm/internal/screen"
	"github.com/driftwm/driftwm/internal/x11"
)

type logger interface {
	Warnf(format string, args ...interface{})
}

const eventPollTimeout = 500 * time.Millisecond

// Reactor owns the connection, the Screen, and everything needed to
// translate and dispatch events.
type Reactor struct {
	conn   *x11.Conn
	atoms  *atoms.Atoms
	screen *screen.Screen
	kb     *keyboard.Keyboard
	bound  []keyboard.Bound
	table  []actions.Action
	cfg    *config.Config
	log    *logrus.Logger

	children []*childProc
}

// childProc tracks one launched process. done is closed by a background
// goroutine once Wait returns, letting reapChildren poll non-blockingly.
type childProc struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// Boot connects to the display server, acquires the root window, loads the
// keymap, constructs the Screen, installs key grabs, and gathers any
// windows mapped before the manager started.
func Boot(display string, cfg *config.Config, log *logrus.Logger) (*Reactor, error) {
	conn, err := x11.Connect(display)
	if err != nil {
		return nil, err
	}

	if err := acquireRoot(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("acquire root window: %w", err)
	}

	at, err := atoms.Load(conn.Raw())
	if err != nil {
		conn.Close()
		return nil, err
	}

	kb, err := keyboard.Load(conn.Raw())
	if err != nil {
		conn.Close()
		return nil, err
	}

	vis := client.Visuals{
		BorderWidth:    cfg.BorderWidth,
		BarHeight:      cfg.BarHeight,
		BorderActive:   parseColor(cfg.BorderActive),
		BorderInactive: parseColor(cfg.BorderInactive),
	}
	scr, err := screen.New(conn.XU, conn.Root, conn.Width(), conn.Height(), cfg.GapSize, at, vis, log)
	if err != nil {
		conn.Close()
		return nil, err
	}

	bindings, table := buildBindings(cfg, log)
	bound, err := kb.Bind(conn.Raw(), conn.Root, bindings)
	if err != nil {
		log.WithError(err).Warn("some key bindings failed to grab")
	}

	r := &Reactor{
		conn:   conn,
		atoms:  at,
		screen: scr,
		kb:     kb,
		bound:  bound,
		table:  table,
		cfg:    cfg,
		log:    log,
	}

	if err := r.gatherExistingWindows(); err != nil {
		log.WithError(err).Warn("failed to gather existing windows")
	}
	return r, nil
}

// acquireRoot installs the WM's cursor glyph and requests the root event
// mask. Failure here means another window manager already holds
// SubstructureRedirect and is a fatal startup error.
func acquireRoot(conn *x11.Conn) error {
	c := conn.Raw()

	font, err := xproto.NewFontId(c)
	if err != nil {
		return fmt.Errorf("allocate font id: %w", err)
	}
	if err := xproto.OpenFontChecked(c, font, uint16(len("cursor")), "cursor").Check(); err != nil {
		return fmt.Errorf("open cursor font: %w", err)
	}

	cursor, err := xproto.NewCursorId(c)
	if err != nil {
		return fmt.Errorf("allocate cursor id: %w", err)
	}
	err = xproto.CreateGlyphCursorChecked(c, cursor, font, font, 68, 69,
		0, 0, 0, 0xffff, 0xffff, 0xffff).Check()
	if err != nil {
		return fmt.Errorf("create glyph cursor: %w", err)
	}

	mask := uint32(xproto.EventMaskSubstructureNotify |
		xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskButtonMotion)

	err = xproto.ChangeWindowAttributesChecked(c, conn.Root,
		xproto.CwEventMask|xproto.CwCursor,
		[]uint32{mask, uint32(cursor)},
	).Check()
	if err != nil {
		return err
	}
	return nil
}

// gatherExistingWindows queries the root window's existing children so
// windows mapped before the manager started aren't orphaned.
func (r *Reactor) gatherExistingWindows() error {
	tree, err := xproto.QueryTree(r.conn.Raw(), r.conn.Root).Reply()
	if err != nil {
		return fmt.Errorf("query tree: %w", err)
	}
	for _, win := range tree.Children {
		if err := r.screen.AddWindow(win); err != nil {
			r.log.WithError(err).WithField("window", win).Debug("failed to gather existing window")
		}
	}
	return nil
}

// Run blocks the calling goroutine, consuming events until a Quit action
// fires or the event source disconnects.
func (r *Reactor) Run() error {
	events := make(chan xgb.Event, 16)
	errs := make(chan error, 1)

	go func() {
		for {
			ev, xerr := r.conn.Raw().WaitForEvent()
			if ev == nil && xerr == nil {
				errs <- fmt.Errorf("X connection closed")
				return
			}
			if xerr != nil {
				r.log.WithError(xerr).Warn("X protocol error")
				continue
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			translated, ok := r.translate(ev)
			if !ok {
				r.reapChildren()
				continue
			}
			quit, err := r.dispatch(translated)
			if err != nil {
				r.log.WithError(err).Warn("event dispatch failed")
			}
			r.reapChildren()
			if quit {
				r.shutdown()
				return nil
			}
		case xerr := <-errs:
			r.log.WithError(xerr).Warn("event source disconnected, shutting down")
			r.shutdown()
			return xerr
		case <-time.After(eventPollTimeout):
			r.reapChildren()
		}
	}
}

func (r *Reactor) reapChildren() {
	alive := r.children[:0]
	for _, c := range r.children {
		select {
		case <-c.done:
			// exited; drop it.
		default:
			alive = append(alive, c)
		}
	}
	r.children = alive
}

func (r *Reactor) shutdown() {
	r.kb.Unbind(r.conn.Raw(), r.conn.Root, r.bound)
	r.screen.KillChildren()
	for _, c := range r.children {
		_ = c.cmd.Process.Kill()
	}
	r.children = nil
}

// launch runs cmd as a detached child with DISPLAY propagated.
func (r *Reactor) launch(cmd string) {
	c := exec.Command(cmd)
	if display, ok := os.LookupEnv("DISPLAY"); ok {
		c.Env = append(os.Environ(), "DISPLAY="+display)
	}
	if err := c.Start(); err != nil {
		r.log.WithError(err).WithField("cmd", cmd).Warn("failed to launch command")
		return
	}

	proc := &childProc{cmd: c, done: make(chan struct{})}
	go func() {
		_ = c.Wait()
		close(proc.done)
	}()
	r.children = append(r.children, proc)
}

// parseColor reads a "#rrggbb" string into a packed 0xRRGGBB pixel value,
// falling back to black on malformed input.
func parseColor(s string) uint32 {
	if len(s) != 7 || s[0] != '#' {
		return 0
	}
	var v uint32
	for i := 1; i < 7; i++ {
		v <<= 4
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			v |= uint32(c - '0')
		case c >= 'a' && c <= 'f':
			v |= uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= uint32(c-'A') + 10
		default:
			return 0
		}
	}
	return v
}
