package reactor

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/driftwm/driftwm/internal/keyboard"
)

// Kind discriminates the internal Event variants spec.md §4.8 names.
type Kind int

const (
	KeyPress Kind = iota
	KeyRelease
	MouseScroll
	ButtonPress
	ButtonRelease
	MouseMove
	MapRequest
	EnterNotify
	UnmapNotify
	DestroyNotify
	ConfigureRequestPassthrough
)

// MouseButton is a translated button code: 1=Left, 2=Middle, 3=Right.
type MouseButton int

const (
	Left MouseButton = 1 + iota
	Middle
	Right
)

// Event is the reactor's internal representation of a translated
// display-server event. Only the fields relevant to Kind are populated.
type Event struct {
	Kind Kind

	Key    keyboard.KeyEvent
	Scroll int
	Button MouseButton

	WindowX, WindowY     int16
	AbsoluteX, AbsoluteY int16

	Window xproto.Window

	ConfigureRequest *xproto.ConfigureRequestEvent
}
