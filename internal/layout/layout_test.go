package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwm/driftwm/internal/x11"
)

func screenRect() x11.Position {
	return x11.Position{X: 0, Y: 0, Width: 1000, Height: 800}
}

func TestGridColumnsFollowCeilSqrt(t *testing.T) {
	for n := 1; n <= 10; n++ {
		handles := make([]int, n)
		for i := range handles {
			handles[i] = i
		}
		out := Tile(Grid, handles, 2, screenRect())
		require.Len(t, out, n)

		wantCols := int(math.Ceil(math.Sqrt(float64(n))))
		// every cell is rect.Width/cols wide, so no window (its cell inset by
		// the gap) may be wider than that.
		cw := screenRect().Width / uint16(wantCols)
		for _, pos := range out {
			assert.True(t, pos.Width <= cw)
		}
	}
}

func TestGridAssignsReverseOrder(t *testing.T) {
	handles := []int{10, 20, 30, 40}
	out := Tile(Grid, handles, 0, screenRect())

	// newest (last in the input slice) occupies the first cell, i.e. the
	// top-left-most rectangle.
	first := out[40]
	assert.Equal(t, uint16(0), first.X)
	assert.Equal(t, uint16(0), first.Y)
}

func TestMasterLeftOccupiesLeftHalf(t *testing.T) {
	rect := screenRect()
	handles := []int{1, 2, 3}
	out := Tile(MasterLeft, handles, 0, rect)

	master := out[3] // last handle is master
	assert.Equal(t, rect.X, master.X)
	assert.InDelta(t, rect.Width/2, master.Width, 1)

	for _, h := range []int{1, 2} {
		pos := out[h]
		assert.Equal(t, rect.X+rect.Width/2, pos.X)
	}
}

func TestMasterRightOccupiesRightHalf(t *testing.T) {
	rect := screenRect()
	handles := []int{1, 2, 3}
	out := Tile(MasterRight, handles, 0, rect)

	master := out[3]
	assert.Equal(t, rect.X+rect.Width/2, master.X)

	for _, h := range []int{1, 2} {
		pos := out[h]
		assert.Equal(t, rect.X, pos.X)
	}
}

func TestMasterStackSplitsEvenly(t *testing.T) {
	rect := screenRect()
	handles := []int{1, 2, 3, 4, 5} // 4 stacked + 1 master
	out := Tile(MasterLeft, handles, 0, rect)

	stackHalf := rect.Width - rect.Width/2
	expectedH := rect.Height / 4
	for _, h := range []int{1, 2, 3, 4} {
		pos := out[h]
		assert.Equal(t, stackHalf, pos.Width)
		assert.Equal(t, expectedH, pos.Height)
	}
}

func TestMasterStackAssignsReverseOrder(t *testing.T) {
	rect := screenRect()
	handles := []int{1, 2, 3, 4} // 3 stacked (1,2,3) + master (4)
	out := Tile(MasterLeft, handles, 0, rect)

	// original_source's retile_with_master fills stack slot i with
	// windows[len-1-i]: slot 0 (topmost) gets the newest non-master window.
	slotH := rect.Height / 3
	assert.Equal(t, uint16(0), out[3].Y)
	assert.Equal(t, slotH, out[2].Y)
	assert.Equal(t, 2*slotH, out[1].Y)
}

func TestMonocleOnlyFocusedIsFullSize(t *testing.T) {
	rect := screenRect()
	handles := []int{1, 2, 3}
	gap := uint16(4)
	out := Tile(Monocle, handles, gap, rect)

	focused := out[3]
	assert.Equal(t, rect.Width-gap, focused.Width)
	assert.Equal(t, rect.Height-gap, focused.Height)

	for _, h := range []int{1, 2} {
		pos := out[h]
		assert.Equal(t, uint16(30), pos.Width)
		assert.Equal(t, uint16(30), pos.Height)
		assert.Equal(t, gap/2, pos.X)
		assert.Equal(t, gap/2, pos.Y)
	}
}

func TestTileEmptyIsNoOp(t *testing.T) {
	out := Tile(Grid, nil, 2, screenRect())
	assert.Empty(t, out)
}

func TestSingleFillsRectMinusGap(t *testing.T) {
	rect := screenRect()
	gap := uint16(4)
	pos := Single(rect, gap)
	assert.Equal(t, rect.Width-gap, pos.Width)
	assert.Equal(t, rect.Height-gap, pos.Height)
	assert.Equal(t, gap/2, pos.X)
	assert.Equal(t, gap/2, pos.Y)
}

func TestLayoutCycleWrapsMonocleToGrid(t *testing.T) {
	assert.Equal(t, Grid, Monocle.Next())
	assert.Equal(t, MasterLeft, Grid.Next())
}
