// Package autopilot plays the game without a human. It reads the board the
// way a player would, scoring a left turn, straight on and a right turn, and
// takes the best one. It drives the -demo mode and the soak tests.
package autopilot

import (
	"gridsnake/game"
	"gridsnake/game/types"
)

const (
	immediateDanger = -1.0
	onFood          = 1.0
	onPowerUp       = 0.9
	towardsFood     = 0.5
	awayFromFood    = -0.3
	trapped         = -0.5
)

// Steer picks the heading for the next tick. Straight on wins ties.
func Steer(snap game.Snapshot) types.Direction {
	current := snap.Direction
	if !current.Valid() || len(snap.Snake) == 0 {
		return types.Right
	}

	best, bestValue := current, Evaluate(snap, current)
	for _, d := range []types.Direction{current.TurnLeft(), current.TurnRight()} {
		if v := Evaluate(snap, d); v > bestValue {
			best, bestValue = d, v
		}
	}
	return best
}

// Evaluate scores moving one cell in dir, from -1 (certain death) to 1 (food)
func Evaluate(snap game.Snapshot, dir types.Direction) float64 {
	head := snap.Snake[0]
	next := head.Add(dir.Delta())

	grows := next == snap.Food || (snap.PowerUp != nil && next == *snap.PowerUp)
	blocked := blockedCells(snap, grows)
	if !snap.Grid.Contains(next) || blocked[next] {
		return immediateDanger
	}

	var value float64
	switch {
	case next == snap.Food:
		value = onFood
	case snap.PowerUp != nil && next == *snap.PowerUp:
		value = onPowerUp
	case manhattan(next, snap.Food) < manhattan(head, snap.Food):
		value = towardsFood
	case manhattan(next, snap.Food) > manhattan(head, snap.Food):
		value = awayFromFood
	}

	// A pocket smaller than the body will close on the snake
	need := len(snap.Snake) + 1
	if room := reachable(snap.Grid, next, blocked, need); room < need {
		value = min(value, trapped) - 0.4*(1-float64(room)/float64(need))
	}
	return value
}

// blockedCells marks obstacles and the body. The tail cell frees up on a
// tick that does not grow the snake.
func blockedCells(snap game.Snapshot, grows bool) map[types.Point]bool {
	blocked := make(map[types.Point]bool, len(snap.Snake)+len(snap.Obstacles))
	for _, o := range snap.Obstacles {
		blocked[o] = true
	}
	body := snap.Snake
	if !grows && len(body) > 1 {
		body = body[:len(body)-1]
	}
	for _, p := range body {
		blocked[p] = true
	}
	return blocked
}

// reachable counts free cells connected to start, stopping once limit is hit
func reachable(grid types.Grid, start types.Point, blocked map[types.Point]bool, limit int) int {
	seen := map[types.Point]bool{start: true}
	queue := []types.Point{start}
	for len(queue) > 0 && len(seen) < limit {
		p := queue[0]
		queue = queue[1:]
		for _, d := range []types.Direction{types.Up, types.Right, types.Down, types.Left} {
			n := p.Add(d.Delta())
			if !grid.Contains(n) || blocked[n] || seen[n] {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return len(seen)
}

func manhattan(a, b types.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
