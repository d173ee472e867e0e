// Package actions is the set of high-level commands key chords resolve to,
// grounded on _examples/original_source/src/actions.rs's ActionType enum and
// default ACTIONS table, translated from Rust's closure-carrying Launch(cmd)
// variant into a plain struct field since Go enums don't carry payloads.
package actions

import "github.com/driftwm/driftwm/internal/layout"

// Type identifies what kind of action a binding triggers.
type Type int

const (
	Quit Type = iota
	CycleLayout
	CloseFocusedWindow
	SwitchToLayout
	SwitchToWorkspace
	Launch
)

// Action is one bindable command. Only the field relevant to Type is read:
// Layout for SwitchToLayout, Workspace for SwitchToWorkspace, Cmd for Launch.
// SwitchToWorkspace has no counterpart in the source ACTIONS table (its
// default bindings never bind switch_workspace to a chord) but the
// operation itself is part of Screen's contract, so it gets the same
// payload-carrying treatment as SwitchToLayout rather than staying
// reachable only from tests.
type Action struct {
	Type      Type
	Layout    layout.Kind
	Workspace uint8
	Cmd       string
}
