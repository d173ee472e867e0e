// Package layout computes tiling geometry, grounded on
// _examples/original_source/src/layout.rs's AbstractWindow-driven tiling
// methods and _examples/original_source/src/tiling.rs's slab-index variant,
// translated into a single pure function over plain handles so every
// algorithm can be table-tested without a live client.
package layout

import (
	"math"

	"github.com/driftwm/driftwm/internal/x11"
)

// Kind is a tiling algorithm.
type Kind int

const (
	Grid Kind = iota
	MasterLeft
	MasterRight
	MasterLeftGrid
	MasterRightGrid
	Monocle
)

// Next returns the next layout in the cycle order, wrapping Monocle -> Grid.
func (k Kind) Next() Kind {
	if k == Monocle {
		return Grid
	}
	return k + 1
}

// String renders a short status-bar style symbol for the layout.
func (k Kind) String() string {
	switch k {
	case Grid:
		return "###"
	case MasterLeft:
		return "[]="
	case MasterRight:
		return "=[]"
	case MasterLeftGrid:
		return "[]#"
	case MasterRightGrid:
		return "#[]"
	case Monocle:
		return "[M]"
	default:
		return "?"
	}
}

const parkedSize = 30

// Tile computes a rectangle for every handle, in the order given, for the
// requested algorithm. An empty handles slice yields an empty map. The
// single-window special case (the sole client fills rect minus gap) is a
// Workspace-level concern handled by Single, not by this function.
//
// The returned map has one entry per input handle; duplicate handles are
// undefined (the caller guarantees uniqueness).
func Tile(kind Kind, handles []int, gap uint16, rect x11.Position) map[int]x11.Position {
	out := make(map[int]x11.Position, len(handles))
	if len(handles) == 0 {
		return out
	}

	switch kind {
	case Grid:
		tileGrid(handles, gap, rect, out)
	case MasterLeft:
		tileMaster(handles, gap, rect, out, true, false)
	case MasterRight:
		tileMaster(handles, gap, rect, out, false, false)
	case MasterLeftGrid:
		tileMaster(handles, gap, rect, out, true, true)
	case MasterRightGrid:
		tileMaster(handles, gap, rect, out, false, true)
	case Monocle:
		tileMonocle(handles, gap, rect, out)
	}
	return out
}

func reversed(handles []int) []int {
	r := make([]int, len(handles))
	for i, h := range handles {
		r[len(handles)-1-i] = h
	}
	return r
}

func tileGrid(handles []int, gap uint16, rect x11.Position, out map[int]x11.Position) {
	n := len(handles)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Ceil(float64(n) / float64(cols)))
	if rows < 1 {
		rows = 1
	}

	cw := rect.Width / uint16(cols)
	ch := rect.Height / uint16(rows)

	for i, h := range reversed(handles) {
		row := i / cols
		col := i % cols
		out[h] = shrink(x11.Position{
			X:      rect.X + uint16(col)*cw,
			Y:      rect.Y + uint16(row)*ch,
			Width:  cw,
			Height: ch,
		}, gap)
	}
}

// shrink insets a cell by gap, splitting the margin evenly; it saturates at
// zero rather than underflowing for degenerate (tiny) rectangles.
func shrink(r x11.Position, gap uint16) x11.Position {
	half := gap / 2
	width := satSub(r.Width, gap)
	height := satSub(r.Height, gap)
	return x11.Position{
		X:      r.X + half,
		Y:      r.Y + half,
		Width:  width,
		Height: height,
	}
}

func satSub(a, b uint16) uint16 {
	if b >= a {
		return 0
	}
	return a - b
}

func tileMaster(handles []int, gap uint16, rect x11.Position, out map[int]x11.Position, masterLeft, grid bool) {
	master := handles[len(handles)-1]
	rest := handles[:len(handles)-1]

	half := rect.Width / 2
	var masterHalf, stackHalf x11.Position
	if masterLeft {
		masterHalf = x11.Position{X: rect.X, Y: rect.Y, Width: half, Height: rect.Height}
		stackHalf = x11.Position{X: rect.X + half, Y: rect.Y, Width: rect.Width - half, Height: rect.Height}
	} else {
		stackHalf = x11.Position{X: rect.X, Y: rect.Y, Width: rect.Width - half, Height: rect.Height}
		masterHalf = x11.Position{X: rect.X + rect.Width - half, Y: rect.Y, Width: half, Height: rect.Height}
	}

	out[master] = shrink(masterHalf, gap)

	if len(rest) == 0 {
		return
	}
	if grid {
		tileGrid(rest, gap, stackHalf, out)
		return
	}

	// original_source/src/layout.rs's retile_with_master assigns stack slot i
	// to windows[len-1-i], i.e. reverse order; match it rather than the
	// forward order that would otherwise look just as natural here.
	slotH := stackHalf.Height / uint16(len(rest))
	for i, h := range reversed(rest) {
		out[h] = shrink(x11.Position{
			X:      stackHalf.X,
			Y:      stackHalf.Y + uint16(i)*slotH,
			Width:  stackHalf.Width,
			Height: slotH,
		}, gap)
	}
}

func tileMonocle(handles []int, gap uint16, rect x11.Position, out map[int]x11.Position) {
	focused := handles[len(handles)-1]
	out[focused] = shrink(rect, gap)

	half := gap / 2
	for _, h := range handles[:len(handles)-1] {
		out[h] = x11.Position{
			X:      rect.X + half,
			Y:      rect.Y + half,
			Width:  parkedSize,
			Height: parkedSize,
		}
	}
}

// Single returns the geometry for a workspace's sole client: the full rect
// minus gap.
func Single(rect x11.Position, gap uint16) x11.Position {
	return shrink(rect, gap)
}
