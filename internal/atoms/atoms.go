// Package atoms interns every ICCCM/EWMH atom the window manager needs in a
// single pipelined round-trip, grounded on
// _examples/original_source/src/atoms.rs's InternAtom-then-collect shape
// (translated to a plain struct since Go has no declarative macro equivalent).
//
// original_source/src/atoms.rs pairs each field with the WRONG byte string
// (every name is shifted by one entry). This table fixes that: each field is
// interned under its own, correctly-named atom.
package atoms

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Atoms holds every atom this window manager reads or writes.
type Atoms struct {
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	WMTakeFocus    xproto.Atom

	NetWMName             xproto.Atom
	NetWMState            xproto.Atom
	NetWMStateFocused     xproto.Atom
	NetWMWindowType       xproto.Atom
	NetCurrentDesktop     xproto.Atom
	NetNumberOfDesktops   xproto.Atom
	NetWMDesktop          xproto.Atom
	NetSupported          xproto.Atom
	NetWMStrut            xproto.Atom
	NetWMStrutPartial     xproto.Atom
	NetDesktopViewport    xproto.Atom
	NetDesktopNames       xproto.Atom
	NetActiveWindow       xproto.Atom
	NetSupportingWMCheck  xproto.Atom
	NetClientList         xproto.Atom
	NetClientListStacking xproto.Atom
	NetShowingDesktop     xproto.Atom
}

type entry struct {
	name string
	dest *xproto.Atom
}

func (a *Atoms) table() []entry {
	return []entry{
		{"WM_PROTOCOLS", &a.WMProtocols},
		{"WM_DELETE_WINDOW", &a.WMDeleteWindow},
		{"WM_TAKE_FOCUS", &a.WMTakeFocus},

		{"_NET_WM_NAME", &a.NetWMName},
		{"_NET_WM_STATE", &a.NetWMState},
		{"_NET_WM_STATE_FOCUSED", &a.NetWMStateFocused},
		{"_NET_WM_WINDOW_TYPE", &a.NetWMWindowType},
		{"_NET_CURRENT_DESKTOP", &a.NetCurrentDesktop},
		{"_NET_NUMBER_OF_DESKTOPS", &a.NetNumberOfDesktops},
		{"_NET_WM_DESKTOP", &a.NetWMDesktop},
		{"_NET_SUPPORTED", &a.NetSupported},
		{"_NET_WM_STRUT", &a.NetWMStrut},
		{"_NET_WM_STRUT_PARTIAL", &a.NetWMStrutPartial},
		{"_NET_DESKTOP_VIEWPORT", &a.NetDesktopViewport},
		{"_NET_DESKTOP_NAMES", &a.NetDesktopNames},
		{"_NET_ACTIVE_WINDOW", &a.NetActiveWindow},
		{"_NET_SUPPORTING_WM_CHECK", &a.NetSupportingWMCheck},
		{"_NET_CLIENT_LIST", &a.NetClientList},
		{"_NET_CLIENT_LIST_STACKING", &a.NetClientListStacking},
		{"_NET_SHOWING_DESKTOP", &a.NetShowingDesktop},
	}
}

// Load interns every atom, issuing all InternAtom requests before collecting
// any reply so the round trips overlap on the wire.
func Load(conn *xgb.Conn) (*Atoms, error) {
	a := &Atoms{}
	entries := a.table()

	cookies := make([]xproto.InternAtomCookie, len(entries))
	for i, e := range entries {
		cookies[i] = xproto.InternAtom(conn, false, uint16(len(e.name)), e.name)
	}
	for i, e := range entries {
		reply, err := cookies[i].Reply()
		if err != nil {
			return nil, fmt.Errorf("intern atom %s: %w", e.name, err)
		}
		*e.dest = reply.Atom
	}
	return a, nil
}

// Supported returns the atoms to publish under _NET_SUPPORTED.
func (a *Atoms) Supported() []xproto.Atom {
	return []xproto.Atom{
		a.NetWMName,
		a.NetWMState,
		a.NetWMStateFocused,
		a.NetWMWindowType,
		a.NetCurrentDesktop,
		a.NetNumberOfDesktops,
		a.NetWMDesktop,
		a.NetSupported,
		a.NetWMStrut,
		a.NetWMStrutPartial,
		a.NetDesktopViewport,
		a.NetDesktopNames,
		a.NetActiveWindow,
		a.NetSupportingWMCheck,
		a.NetClientList,
		a.NetClientListStacking,
		a.NetShowingDesktop,
	}
}
