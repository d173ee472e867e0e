// Package keysym provides the X11 keysym constants and keyboard-mapping
// lookup driftwm's default bindings need, grounded on
// _examples/driusan-dewm/main.go's inline keysym table and
// xproto.GetKeyboardMapping usage (the teacher, funkycode-marwind, imports a
// sibling "keysym" package by the same name that was not retrieved into the
// pack, so this reconstructs its surface from dewm's equivalent call sites).
package keysym

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Core keysym values, from the X11 keysymdef.h numbering. The printable
// Latin-1 range (space through asciitilde) is numerically identical to
// ASCII, so letters and digits are generated rather than listed by hand.
const (
	XKBackSpace  xproto.Keysym = 0xff08
	XKTab        xproto.Keysym = 0xff09
	XKReturn     xproto.Keysym = 0xff0d
	XKEscape     xproto.Keysym = 0xff1b
	XKDelete     xproto.Keysym = 0xffff
	XKHome       xproto.Keysym = 0xff50
	XKLeft       xproto.Keysym = 0xff51
	XKUp         xproto.Keysym = 0xff52
	XKRight      xproto.Keysym = 0xff53
	XKDown       xproto.Keysym = 0xff54
	XKShiftL     xproto.Keysym = 0xffe1
	XKShiftR     xproto.Keysym = 0xffe2
	XKControlL   xproto.Keysym = 0xffe3
	XKControlR   xproto.Keysym = 0xffe4
	XKCapsLock   xproto.Keysym = 0xffe5
	XKAltL       xproto.Keysym = 0xffe9
	XKAltR       xproto.Keysym = 0xffea
	XKSuperL     xproto.Keysym = 0xffeb
	XKSuperR     xproto.Keysym = 0xffec
	XKNumLock    xproto.Keysym = 0xff7f
	XKScrollLock xproto.Keysym = 0xff14
	XKSpace      xproto.Keysym = 0x0020
)

// Letter returns the keysym for a lowercase ASCII letter ('a'..'z').
func Letter(r rune) xproto.Keysym {
	return xproto.Keysym(r)
}

// Digit returns the keysym for an ASCII digit ('0'..'9').
func Digit(r rune) xproto.Keysym {
	return xproto.Keysym(r)
}

// Keymap is the server's keycode-to-keysym table, indexed by keycode.
type Keymap struct {
	firstKeycode byte
	keysymsPerKC byte
	syms         [][]xproto.Keysym
}

// LoadKeyMapping fetches the full keyboard mapping from the X server.
func LoadKeyMapping(conn *xgb.Conn) (*Keymap, error) {
	setup := xproto.Setup(conn)
	count := setup.MaxKeycode - setup.MinKeycode + 1

	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}

	km := &Keymap{
		firstKeycode: byte(setup.MinKeycode),
		keysymsPerKC: reply.KeysymsPerKeycode,
		syms:         make([][]xproto.Keysym, count),
	}
	perKC := int(reply.KeysymsPerKeycode)
	for i := 0; i < int(count); i++ {
		start := i * perKC
		end := start + perKC
		if end > len(reply.Keysyms) {
			end = len(reply.Keysyms)
		}
		km.syms[i] = reply.Keysyms[start:end]
	}
	return km, nil
}

// Lookup returns the keysyms bound to keycode, or nil if out of range.
func (k *Keymap) Lookup(keycode xproto.Keycode) []xproto.Keysym {
	idx := int(keycode) - int(k.firstKeycode)
	if idx < 0 || idx >= len(k.syms) {
		return nil
	}
	return k.syms[idx]
}

// KeycodeFor returns the lowest keycode bound to sym, matching against every
// keysym in each keycode's list (all groups and shift levels).
func (k *Keymap) KeycodeFor(sym xproto.Keysym) (xproto.Keycode, bool) {
	for i, syms := range k.syms {
		for _, s := range syms {
			if s == sym {
				return xproto.Keycode(int(k.firstKeycode) + i), true
			}
		}
	}
	return 0, false
}
