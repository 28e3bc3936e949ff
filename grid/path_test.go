package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct{ cur, prev Position }

func record(from, to Position) []step {
	var steps []step
	EmulatePath(from, to, func(cur, prev Position) {
		steps = append(steps, step{cur, prev})
	})
	return steps
}

func TestEmulatePathEmptyTarget(t *testing.T) {
	assert.Empty(t, record(Pos(1, 1), EmptyPos()))
	assert.Empty(t, record(EmptyPos(), EmptyPos()))
}

func TestEmulatePathPickUp(t *testing.T) {
	steps := record(EmptyPos(), Pos(2, 3))
	require.Len(t, steps, 1)
	assert.True(t, steps[0].cur.Equal(Pos(2, 3)))
	assert.True(t, steps[0].prev.IsEmpty())
}

func TestEmulatePathSameCell(t *testing.T) {
	assert.Empty(t, record(Pos(2, 2), Pos(2, 2)))
}

func TestEmulatePathDiagonalThenStraight(t *testing.T) {
	steps := record(Pos(0, 0), Pos(3, 1))
	want := []step{
		{Pos(1, 1), Pos(0, 0)},
		{Pos(2, 1), Pos(1, 1)},
		{Pos(3, 1), Pos(2, 1)},
	}
	require.Len(t, steps, len(want))
	for i := range want {
		assert.True(t, steps[i].cur.Equal(want[i].cur), "step %d cur %v", i, steps[i].cur)
		assert.True(t, steps[i].prev.Equal(want[i].prev), "step %d prev %v", i, steps[i].prev)
	}
}

func TestEmulatePathNegativeDirection(t *testing.T) {
	steps := record(Pos(4, 3), Pos(4, 0))
	require.Len(t, steps, 3)
	assert.True(t, steps[2].cur.Equal(Pos(4, 0)))
	for _, s := range steps {
		assert.Equal(t, 1, abs(s.cur.Y-s.prev.Y))
		assert.Equal(t, 0, s.cur.X-s.prev.X)
	}
}

func TestEmulatePathRunawayPanics(t *testing.T) {
	assert.Panics(t, func() {
		EmulatePath(Pos(0, 0), Pos(500, 0), func(cur, prev Position) {})
	})
}

func TestEmulatePathRoundTripRestoresGrid(t *testing.T) {
	g := FromIDs(sampleRows())
	orig := g.Clone()
	swap := func(cur, prev Position) { g.Swap(cur, prev) }

	// Straight and pure-diagonal drags retrace the same cells on the way back
	for _, leg := range [][2]Position{
		{Pos(0, 0), Pos(3, 3)},
		{Pos(1, 2), Pos(5, 2)},
		{Pos(4, 4), Pos(4, 0)},
	} {
		EmulatePath(leg[0], leg[1], swap)
		require.False(t, g.Equal(orig))

		EmulatePath(leg[1], leg[0], swap)
		assert.True(t, g.Equal(orig), "leg %v -> %v", leg[0], leg[1])
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
