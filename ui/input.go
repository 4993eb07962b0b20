package ui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/controller"
	"gridsnake/game/types"
	"gridsnake/input"
)

// checked in order so two presses in one frame queue predictably
var keyDirections = []struct {
	key int32
	dir types.Direction
}{
	{rl.KeyUp, types.Up},
	{rl.KeyDown, types.Down},
	{rl.KeyLeft, types.Left},
	{rl.KeyRight, types.Right},
	{rl.KeyW, types.Up},
	{rl.KeyS, types.Down},
	{rl.KeyA, types.Left},
	{rl.KeyD, types.Right},
}

// Input tracks the state of a drag between frames so it can be read as a swipe
type Input struct {
	dragging  bool
	dragStart input.Vec
}

func NewInput() *Input {
	return &Input{}
}

// Poll forwards this frame's key presses and swipes to the controller.
// Touch input arrives as the left mouse button on raylib platforms.
func (in *Input) Poll(ctrl *controller.Controller, now time.Time) error {
	for _, kd := range keyDirections {
		if rl.IsKeyPressed(kd.key) {
			ctrl.Direction(kd.dir)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		in.dragging = true
		in.dragStart = input.Vec{X: float64(pos.X), Y: float64(pos.Y)}
	}
	if in.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		in.dragging = false
		pos := rl.GetMousePosition()
		if dir, ok := input.Swipe(in.dragStart, input.Vec{X: float64(pos.X), Y: float64(pos.Y)}); ok {
			ctrl.Direction(dir)
		}
	}

	if rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace) {
		ctrl.TogglePause(now)
	}
	if rl.IsKeyPressed(rl.KeyR) || (ctrl.Over() && rl.IsKeyPressed(rl.KeyEnter)) {
		return ctrl.Restart(now)
	}
	return nil
}
