package reactor

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/driftwm/driftwm/internal/actions"
	"github.com/driftwm/driftwm/internal/keyboard"
)

// translate converts a raw server event into the reactor's internal Event,
// grounded on original_source/src/wm.rs's translate_event match arms.
func (r *Reactor) translate(ev xgb.Event) (Event, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return Event{Kind: KeyPress, Key: r.kb.Translate(e.Detail, e.State, true)}, true
	case xproto.KeyReleaseEvent:
		return Event{Kind: KeyRelease, Key: r.kb.Translate(e.Detail, e.State, false)}, true

	case xproto.ButtonPressEvent:
		switch e.Detail {
		case 4:
			return Event{Kind: MouseScroll, Scroll: -1}, true
		case 5:
			return Event{Kind: MouseScroll, Scroll: 1}, true
		case 1, 2, 3:
			return Event{Kind: ButtonPress, Button: MouseButton(e.Detail)}, true
		}
		return Event{}, false
	case xproto.ButtonReleaseEvent:
		switch e.Detail {
		case 4, 5:
			return Event{}, false
		case 1, 2, 3:
			return Event{Kind: ButtonRelease, Button: MouseButton(e.Detail)}, true
		}
		return Event{}, false

	case xproto.MotionNotifyEvent:
		return Event{
			Kind:      MouseMove,
			WindowX:   e.EventX,
			WindowY:   e.EventY,
			AbsoluteX: e.RootX,
			AbsoluteY: e.RootY,
		}, true

	case xproto.EnterNotifyEvent:
		return Event{Kind: EnterNotify, Window: e.Event}, true
	case xproto.MapRequestEvent:
		return Event{Kind: MapRequest, Window: e.Window}, true
	case xproto.UnmapNotifyEvent:
		return Event{Kind: UnmapNotify, Window: e.Window}, true
	case xproto.DestroyNotifyEvent:
		return Event{Kind: DestroyNotify, Window: e.Window}, true

	case xproto.ConfigureRequestEvent:
		if _, managed := r.screen.Lookup[e.Window]; managed {
			return Event{}, false
		}
		ev := e
		return Event{Kind: ConfigureRequestPassthrough, Window: e.Window, ConfigureRequest: &ev}, true

	case xproto.ReparentNotifyEvent:
		return Event{}, false

	default:
		return Event{}, false
	}
}

// dispatch routes a translated event to Screen or the action table. It
// returns quit=true only for the Quit action.
func (r *Reactor) dispatch(ev Event) (bool, error) {
	switch ev.Kind {
	case KeyPress:
		return r.dispatchKey(ev.Key)

	case MapRequest:
		if err := r.screen.AddWindow(ev.Window); err != nil {
			r.log.WithError(err).WithField("window", ev.Window).Warn("failed to add window, destroying it")
			_ = xproto.DestroyWindowChecked(r.conn.Raw(), ev.Window).Check()
		}
		return false, nil

	case DestroyNotify:
		return false, r.screen.RemoveWindow(ev.Window)

	case EnterNotify:
		return false, r.screen.EnterClient(ev.Window)

	case ConfigureRequestPassthrough:
		return false, r.passthroughConfigure(ev.ConfigureRequest)

	default:
		return false, nil
	}
}

func (r *Reactor) dispatchKey(key keyboard.KeyEvent) (bool, error) {
	for _, b := range r.bound {
		if !b.Matches(key) {
			continue
		}
		action := r.table[b.ActionIndex]
		switch action.Type {
		case actions.Quit:
			return true, nil
		case actions.CycleLayout:
			return false, r.screen.CycleLayout()
		case actions.CloseFocusedWindow:
			return false, r.screen.CloseFocusedWindow()
		case actions.SwitchToLayout:
			return false, r.screen.SetLayout(action.Layout)
		case actions.SwitchToWorkspace:
			return false, r.screen.SwitchWorkspace(action.Workspace)
		case actions.Launch:
			r.launch(action.Cmd)
			return false, nil
		}
	}
	return false, nil
}

// passthroughConfigure answers an unmanaged/override-redirect window's
// ConfigureRequest with a synthetic ConfigureNotify echoing the requested
// geometry, so it doesn't hang waiting for a reply it will never otherwise
// get. The window itself is not reconfigured.
func (r *Reactor) passthroughConfigure(req *xproto.ConfigureRequestEvent) error {
	notify := xproto.ConfigureNotifyEvent{
		Event:            req.Window,
		Window:           req.Window,
		AboveSibling:     0,
		X:                req.X,
		Y:                req.Y,
		Width:            req.Width,
		Height:           req.Height,
		BorderWidth:      req.BorderWidth,
		OverrideRedirect: false,
	}
	err := xproto.SendEventChecked(r.conn.Raw(), false, req.Window,
		xproto.EventMaskStructureNotify, string(notify.Bytes())).Check()
	if err != nil {
		return fmt.Errorf("send synthetic configure notify: %w", err)
	}
	return nil
}
