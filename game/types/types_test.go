package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionDeltaAndOpposite(t *testing.T) {
	for _, d := range []Direction{Up, Right, Down, Left} {
		assert.True(t, d.Valid(), d.String())
		sum := d.Delta().Add(d.Opposite().Delta())
		assert.Equal(t, Point{}, sum, "opposite of %s should cancel it", d)
		assert.Equal(t, d, d.Opposite().Opposite())
	}

	assert.Equal(t, Point{X: 0, Y: -1}, Up.Delta())
	assert.Equal(t, Point{X: 1, Y: 0}, Right.Delta())
}

func TestDirectionInvalid(t *testing.T) {
	assert.False(t, None.Valid())
	assert.False(t, Direction(9).Valid())
	assert.Equal(t, Point{}, Direction(9).Delta())
	assert.Equal(t, "none", Direction(-1).String())
}

func TestGridContains(t *testing.T) {
	g := NewGrid(DefaultGridSize)

	assert.True(t, g.Contains(Point{X: 0, Y: 0}))
	assert.True(t, g.Contains(Point{X: 19, Y: 19}))
	assert.False(t, g.Contains(Point{X: 20, Y: 5}))
	assert.False(t, g.Contains(Point{X: -1, Y: 5}))
	assert.False(t, g.Contains(Point{X: 5, Y: 20}))
	assert.Equal(t, 400, g.Cells())
	assert.Equal(t, Point{X: 10, Y: 10}, g.Centre())
}

func TestDirectionTurns(t *testing.T) {
	assert.Equal(t, Left, Up.TurnLeft())
	assert.Equal(t, Right, Up.TurnRight())
	for _, d := range []Direction{Up, Right, Down, Left} {
		assert.Equal(t, d, d.TurnLeft().TurnRight())
		assert.Equal(t, d.Opposite(), d.TurnLeft().TurnLeft())
	}
	assert.Equal(t, None, None.TurnLeft())
}
