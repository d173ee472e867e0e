package keyboard

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"github.com/driftwm/driftwm/internal/keysym"
	"github.com/driftwm/driftwm/internal/x11/x11test"
)

func TestFromEventState(t *testing.T) {
	state := uint16(xproto.ModMaskControl) | uint16(xproto.ModMask4)
	m := FromEventState(state)
	assert.True(t, m&ModControl != 0)
	assert.True(t, m&ModSuper != 0)
	assert.False(t, m&ModAlt != 0)
	assert.False(t, m&ModShift != 0)
}

func TestServerMaskRoundTrip(t *testing.T) {
	m := ModControl | ModAlt
	mask := m.serverMask()
	assert.Equal(t, m, FromEventState(mask))
}

func TestTranslate(t *testing.T) {
	km := x11test.NewFakeKeymap(map[xproto.Keycode][]xproto.Keysym{24: {keysym.Letter('q')}})
	kb := New(km)
	ev := kb.Translate(24, uint16(xproto.ModMask4), true)
	assert.Equal(t, keysym.Letter('q'), ev.Keysym)
	assert.True(t, ev.Mods&ModSuper != 0)
	assert.True(t, ev.Press)
}

func TestBoundMatches(t *testing.T) {
	b := Bound{Keycode: 24, Mods: ModSuper, ActionIndex: 2}
	ev := KeyEvent{Keycode: 24, Mods: ModSuper, Press: true}
	assert.True(t, b.Matches(ev))

	ev.Press = false
	assert.False(t, b.Matches(ev))
}

func TestBoundMatchesIgnoresCapsLock(t *testing.T) {
	b := Bound{Keycode: 24, Mods: ModControl | ModAlt, ActionIndex: 0}
	ev := KeyEvent{Keycode: 24, Mods: ModControl | ModAlt | ModCaps, Press: true}
	assert.True(t, b.Matches(ev))
}
