// Package input turns raw key names and touch gestures into snake directions
// and buffers them until the next tick.
package input

import (
	"math"
	"strings"

	"gridsnake/game/types"
)

// MinSwipe is the shortest drag, in screen units, that counts as a swipe
const MinSwipe = 10

var keyDirections = map[string]types.Direction{
	"arrowup":    types.Up,
	"arrowdown":  types.Down,
	"arrowleft":  types.Left,
	"arrowright": types.Right,
	"w":          types.Up,
	"s":          types.Down,
	"a":          types.Left,
	"d":          types.Right,
}

// FromKey maps a key name such as "ArrowUp" or "w" to a direction
func FromKey(name string) (types.Direction, bool) {
	d, ok := keyDirections[strings.ToLower(name)]
	return d, ok
}

// Vec is a screen position, in whatever units the front-end uses
type Vec struct {
	X, Y float64
}

// Swipe picks the dominant axis of the drag from start to end. Ties go to
// the vertical axis; drags shorter than MinSwipe are ignored.
func Swipe(start, end Vec) (types.Direction, bool) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	if math.Hypot(dx, dy) < MinSwipe {
		return types.None, false
	}

	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return types.Right, true
		}
		return types.Left, true
	}
	if dy > 0 {
		return types.Down, true
	}
	return types.Up, true
}
