package reactor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/driftwm/driftwm/internal/actions"
	"github.com/driftwm/driftwm/internal/config"
	"github.com/driftwm/driftwm/internal/keyboard"
	"github.com/driftwm/driftwm/internal/keysym"
	"github.com/driftwm/driftwm/internal/layout"
)

var namedKeysyms = map[string]xproto.Keysym{
	"return":      keysym.XKReturn,
	"tab":         keysym.XKTab,
	"space":       keysym.XKSpace,
	"escape":      keysym.XKEscape,
	"backspace":   keysym.XKBackSpace,
	"delete":      keysym.XKDelete,
	"up":          keysym.XKUp,
	"down":        keysym.XKDown,
	"left":        keysym.XKLeft,
	"right":       keysym.XKRight,
}

func resolveKeysym(name string) (xproto.Keysym, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if sym, ok := namedKeysyms[name]; ok {
		return sym, nil
	}
	if len(name) == 1 {
		r := rune(name[0])
		switch {
		case r >= 'a' && r <= 'z':
			return keysym.Letter(r), nil
		case r >= '0' && r <= '9':
			return keysym.Digit(r), nil
		}
	}
	return 0, fmt.Errorf("unknown key name %q", name)
}

func resolveMods(spec string) keyboard.Modifier {
	var m keyboard.Modifier
	for _, part := range strings.Split(spec, "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "ctrl", "control":
			m |= keyboard.ModControl
		case "shift":
			m |= keyboard.ModShift
		case "alt":
			m |= keyboard.ModAlt
		case "super":
			m |= keyboard.ModSuper
		}
	}
	return m
}

// resolveAction turns a binding's action string into an actions.Action.
// "quit", "cycle_layout", "close", "layout:<name>", "workspace:<n>",
// "launch:<cmd>".
func resolveAction(spec string) (actions.Action, error) {
	switch {
	case spec == "quit":
		return actions.Action{Type: actions.Quit}, nil
	case spec == "cycle_layout":
		return actions.Action{Type: actions.CycleLayout}, nil
	case spec == "close":
		return actions.Action{Type: actions.CloseFocusedWindow}, nil
	case strings.HasPrefix(spec, "layout:"):
		l, err := resolveLayout(strings.TrimPrefix(spec, "layout:"))
		if err != nil {
			return actions.Action{}, err
		}
		return actions.Action{Type: actions.SwitchToLayout, Layout: l}, nil
	case strings.HasPrefix(spec, "workspace:"):
		n, err := strconv.Atoi(strings.TrimPrefix(spec, "workspace:"))
		if err != nil || n < 1 || n > 10 {
			return actions.Action{}, fmt.Errorf("invalid workspace id in %q", spec)
		}
		return actions.Action{Type: actions.SwitchToWorkspace, Workspace: uint8(n)}, nil
	case strings.HasPrefix(spec, "launch:"):
		return actions.Action{Type: actions.Launch, Cmd: strings.TrimPrefix(spec, "launch:")}, nil
	default:
		return actions.Action{}, fmt.Errorf("unknown action %q", spec)
	}
}

func resolveLayout(name string) (layout.Kind, error) {
	switch strings.ToLower(name) {
	case "grid":
		return layout.Grid, nil
	case "masterleft":
		return layout.MasterLeft, nil
	case "masterright":
		return layout.MasterRight, nil
	case "masterleftgrid":
		return layout.MasterLeftGrid, nil
	case "masterrightgrid":
		return layout.MasterRightGrid, nil
	case "monocle":
		return layout.Monocle, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", name)
	}
}

// buildBindings resolves every config.Binding into a keysym/modifier
// keyboard.Binding plus a parallel actions.Action table, logging (not
// failing) on any chord it can't resolve, per spec §4.3's "binding failures
// are logged but do not abort."
func buildBindings(cfg *config.Config, log logger) ([]keyboard.Binding, []actions.Action) {
	var bindings []keyboard.Binding
	var table []actions.Action

	for _, b := range cfg.Bindings {
		sym, err := resolveKeysym(b.Key)
		if err != nil {
			log.Warnf("skipping binding %q: %v", b.Key, err)
			continue
		}
		action, err := resolveAction(b.Action)
		if err != nil {
			log.Warnf("skipping binding %q: %v", b.Action, err)
			continue
		}
		idx := len(table)
		table = append(table, action)
		bindings = append(bindings, keyboard.Binding{
			Keysym:      sym,
			Mods:        resolveMods(b.Mods),
			ActionIndex: idx,
		})
	}
	return bindings, table
}
