package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineSidePrecedenceLeftBottomTopRight(t *testing.T) {
	side, extent, ok := determineSide(10, 0, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, Left, side)
	assert.Equal(t, uint16(10), extent)

	// left and bottom both set: left wins.
	side, _, _ = determineSide(5, 0, 0, 7)
	assert.Equal(t, Left, side)

	// bottom and top both set (no left): bottom wins.
	side, _, _ = determineSide(0, 0, 3, 4)
	assert.Equal(t, Bottom, side)

	// only top and right set: top wins.
	side, _, _ = determineSide(0, 9, 2, 0)
	assert.Equal(t, Top, side)

	// only right set.
	side, _, _ = determineSide(0, 6, 0, 0)
	assert.Equal(t, Right, side)

	_, _, ok = determineSide(0, 0, 0, 0)
	assert.False(t, ok)
}

func TestSatSub(t *testing.T) {
	assert.Equal(t, uint16(3), satSub(10, 7))
	assert.Equal(t, uint16(0), satSub(3, 10))
	assert.Equal(t, uint16(0), satSub(5, 5))
}

func TestContainsHandle(t *testing.T) {
	assert.True(t, containsHandle([]int{1, 2, 3}, 2))
	assert.False(t, containsHandle([]int{1, 2, 3}, 9))
	assert.False(t, containsHandle(nil, 1))
}

func TestContentRectAppliesReservations(t *testing.T) {
	s := &Screen{Width: 1000, Height: 800, ReservedTop: 24, ReservedLeft: 10}
	rect := s.contentRect()
	assert.Equal(t, uint16(10), rect.X)
	assert.Equal(t, uint16(24), rect.Y)
	assert.Equal(t, uint16(990), rect.Width)
	assert.Equal(t, uint16(776), rect.Height)
}
