// Package keyboard translates raw X key events into driftwm actions without
// the XKB extension: no Go binding for xkbcommon appears anywhere in the
// retrieval pack (original_source/src/keyboard.rs uses XKB because xcb-rust
// exposes it, but neither funkycode-marwind nor driusan-dewm touch XKB at
// all), so modifier state is read straight off the core-protocol event, the
// way both Go teachers do it.
package keyboard

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/driftwm/driftwm/internal/keysym"
)

// Modifier is a bitset of the modifier keys driftwm distinguishes.
type Modifier uint16

const (
	ModShift Modifier = 1 << iota
	ModCaps
	ModControl
	ModAlt  // Mod1
	ModSuper // Mod4
)

// FromEventState derives a Modifier set from the raw state mask carried on
// a KeyPress/KeyRelease/ButtonPress event, per spec's requirement to read
// modifiers from the event itself rather than accumulate XKB state.
func FromEventState(state uint16) Modifier {
	var m Modifier
	if state&uint16(xproto.ModMaskShift) != 0 {
		m |= ModShift
	}
	if state&uint16(xproto.ModMaskLock) != 0 {
		m |= ModCaps
	}
	if state&uint16(xproto.ModMaskControl) != 0 {
		m |= ModControl
	}
	if state&uint16(xproto.ModMask1) != 0 {
		m |= ModAlt
	}
	if state&uint16(xproto.ModMask4) != 0 {
		m |= ModSuper
	}
	return m
}

// serverMask returns the xproto grab-mask bits for a Modifier set (Shift,
// Control, Mod1=Alt, Mod4=Super — Caps Lock is never part of a binding's
// required mask, only ever ignored via the Lock-insensitive grabs below).
func (m Modifier) serverMask() uint16 {
	var mask uint16
	if m&ModShift != 0 {
		mask |= uint16(xproto.ModMaskShift)
	}
	if m&ModControl != 0 {
		mask |= uint16(xproto.ModMaskControl)
	}
	if m&ModAlt != 0 {
		mask |= uint16(xproto.ModMask1)
	}
	if m&ModSuper != 0 {
		mask |= uint16(xproto.ModMask4)
	}
	return mask
}

// capsVariants returns the same mask with Lock optionally set, so a binding
// fires whether or not Caps Lock is toggled.
func capsVariants(mask uint16) []uint16 {
	return []uint16{mask, mask | uint16(xproto.ModMaskLock)}
}

// Keymap is the subset of keysym.Keymap's surface Keyboard depends on.
type Keymap interface {
	Lookup(keycode xproto.Keycode) []xproto.Keysym
	KeycodeFor(sym xproto.Keysym) (xproto.Keycode, bool)
}

// Keyboard holds the loaded keymap used to translate events and bind keys.
type Keyboard struct {
	km Keymap
}

// New wraps an already-loaded keymap.
func New(km Keymap) *Keyboard {
	return &Keyboard{km: km}
}

// Load fetches the server's keyboard mapping and wraps it.
func Load(conn *xgb.Conn) (*Keyboard, error) {
	km, err := keysym.LoadKeyMapping(conn)
	if err != nil {
		return nil, err
	}
	return New(km), nil
}

// KeyEvent is the translated form of a KeyPress/KeyRelease.
type KeyEvent struct {
	Keycode xproto.Keycode
	Keysym  xproto.Keysym
	Mods    Modifier
	Press   bool
}

// Translate reads the first keysym bound to the event's keycode and the
// modifier state carried on the event itself.
func (k *Keyboard) Translate(keycode xproto.Keycode, state uint16, press bool) KeyEvent {
	syms := k.km.Lookup(keycode)
	var sym xproto.Keysym
	if len(syms) > 0 {
		sym = syms[0]
	}
	return KeyEvent{
		Keycode: keycode,
		Keysym:  sym,
		Mods:    FromEventState(state),
		Press:   press,
	}
}

// Binding pairs a keysym/modifier chord with the index of the action it
// triggers in the caller's action table.
type Binding struct {
	Keysym       xproto.Keysym
	Mods         Modifier
	ActionIndex  int
}

// Bound is a resolved binding: the keycode actually grabbed, and the
// modifier mask an incoming event must match.
type Bound struct {
	Keycode     xproto.Keycode
	Mods        Modifier
	ActionIndex int
}

// Matches reports whether a translated key event fires this binding. Lock
// bits (Caps Lock; NumLock/ScrollLock are never tracked at all) are masked
// out of the event's mods before comparing, so the Caps-insensitive grabs
// Bind installs actually have an effect — otherwise Mods would carry
// ModCaps whenever Caps Lock is engaged and never equal a binding's mask.
func (b Bound) Matches(ev KeyEvent) bool {
	return ev.Press && ev.Keycode == b.Keycode && ev.Mods&^ModCaps == b.Mods
}

// Bind resolves every binding's keysym to a keycode and issues GrabKey for
// it (plus the Caps-Lock-insensitive variant), grounded on
// driusan-dewm/main.go's key-grab loop. A keysym with no keycode or a failed
// grab is reported in the returned error; the other bindings are still bound.
func (k *Keyboard) Bind(conn *xgb.Conn, root xproto.Window, bindings []Binding) ([]Bound, error) {
	bound := make([]Bound, 0, len(bindings))
	var errs []error
	for _, b := range bindings {
		kc, ok := k.km.KeycodeFor(b.Keysym)
		if !ok {
			errs = append(errs, fmt.Errorf("no keycode for keysym %v", b.Keysym))
			continue
		}
		mask := b.Mods.serverMask()
		for _, variant := range capsVariants(mask) {
			err := xproto.GrabKeyChecked(conn, true, root, variant, kc,
				xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
			if err != nil {
				errs = append(errs, fmt.Errorf("grab key %v mods %x: %w", b.Keysym, variant, err))
			}
		}
		bound = append(bound, Bound{Keycode: kc, Mods: b.Mods, ActionIndex: b.ActionIndex})
	}
	return bound, errors.Join(errs...)
}

// Unbind releases every grab Bind installed.
func (k *Keyboard) Unbind(conn *xgb.Conn, root xproto.Window, bound []Bound) {
	for _, b := range bound {
		mask := b.Mods.serverMask()
		for _, variant := range capsVariants(mask) {
			_ = xproto.UngrabKeyChecked(conn, b.Keycode, root, variant).Check()
		}
	}
}

// UpdateState is a documented no-op: without the XKB extension there is no
// persistent keyboard group/latch state to track, since every key event
// already carries the modifier mask current at the time it fired.
func (k *Keyboard) UpdateState() {}
