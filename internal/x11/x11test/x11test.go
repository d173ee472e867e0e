// Package x11test is a small set of fakes for packages that would
// otherwise need a live display connection, per SPEC_FULL.md §10.6. It does
// not attempt to fake the wire protocol itself (xgb.Conn does real socket
// I/O in a background goroutine, which nothing in the retrieval pack
// fakes); instead it gives keyboard translation tests a reusable, in-memory
// stand-in for the keymap surface that package depends on through an
// interface.
package x11test

import "github.com/BurntSushi/xgb/xproto"

// FakeKeymap implements keyboard.Keymap without a live server, letting
// Keyboard.Translate/Bind be tested on fixed keycode <-> keysym tables.
type FakeKeymap struct {
	ByKeycode map[xproto.Keycode][]xproto.Keysym
}

// NewFakeKeymap builds a FakeKeymap from a keycode->keysym table.
func NewFakeKeymap(table map[xproto.Keycode][]xproto.Keysym) *FakeKeymap {
	return &FakeKeymap{ByKeycode: table}
}

// Lookup returns the keysyms bound to keycode.
func (f *FakeKeymap) Lookup(keycode xproto.Keycode) []xproto.Keysym {
	return f.ByKeycode[keycode]
}

// KeycodeFor scans the table for a keycode bound to sym. When several
// keycodes carry sym, which one is returned follows map iteration order and
// is not defined.
func (f *FakeKeymap) KeycodeFor(sym xproto.Keysym) (xproto.Keycode, bool) {
	for kc, syms := range f.ByKeycode {
		for _, s := range syms {
			if s == sym {
				return kc, true
			}
		}
	}
	return 0, false
}
