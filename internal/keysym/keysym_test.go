package keysym

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeKeymap() *Keymap {
	return &Keymap{
		firstKeycode: 8,
		keysymsPerKC: 2,
		syms: [][]xproto.Keysym{
			{Letter('q'), Letter('Q')}, // keycode 8
			{Letter('a'), Letter('A')}, // keycode 9
			{XKReturn, XKReturn},       // keycode 10
		},
	}
}

func TestLookup(t *testing.T) {
	km := fakeKeymap()
	syms := km.Lookup(9)
	require.Len(t, syms, 2)
	assert.Equal(t, Letter('a'), syms[0])
}

func TestLookupOutOfRange(t *testing.T) {
	km := fakeKeymap()
	assert.Nil(t, km.Lookup(200))
}

func TestKeycodeFor(t *testing.T) {
	km := fakeKeymap()
	kc, ok := km.KeycodeFor(XKReturn)
	require.True(t, ok)
	assert.Equal(t, xproto.Keycode(10), kc)

	_, ok = km.KeycodeFor(Letter('z'))
	assert.False(t, ok)
}
