package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/stats"
)

type Renderer struct {
	screenWidth  int32
	screenHeight int32
	layout       Layout
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
}

func (r *Renderer) Draw(snap game.Snapshot, paused bool, st *stats.GameStats) {
	r.UpdateDimensions()
	r.layout = ComputeLayout(r.screenWidth, r.screenHeight, snap.Grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	l := r.layout
	rl.DrawRectangleLines(l.OffsetX-1, l.OffsetY-1, l.GridWidth+2, l.GridHeight+2, rl.DarkGray)

	for _, o := range snap.Obstacles {
		r.drawCell(o, rl.Gray)
	}
	if snap.PowerUp != nil {
		r.drawCell(*snap.PowerUp, rl.Gold)
	}
	r.drawCell(snap.Food, rl.Red)
	for _, segment := range snap.Snake {
		r.drawCell(segment, rl.Lime)
	}
	if len(snap.Snake) > 0 {
		r.drawHead(snap.Snake[0], snap.Direction)
	}

	r.drawPanel(snap, st)

	switch {
	case snap.Over:
		r.drawOverlay("Game Over", fmt.Sprintf("Score: %d   Enter to retry", snap.Score))
	case paused:
		r.drawOverlay("Paused", "P to resume")
	}

	rl.EndDrawing()
}

// drawCell leaves a one pixel gap so neighbouring segments stay distinct
func (r *Renderer) drawCell(p types.Point, color rl.Color) {
	x, y := r.layout.CellAt(p)
	size := r.layout.CellSize - 1
	if size < 1 {
		size = 1
	}
	rl.DrawRectangle(x, y, size, size, color)
}

// drawHead marks the heading with a small triangle
func (r *Renderer) drawHead(head types.Point, dir types.Direction) {
	x, y := r.layout.CellAt(head)
	cell := float32(r.layout.CellSize)
	half := cell / 2
	fx, fy := float32(x), float32(y)

	var a, b, c rl.Vector2
	switch dir {
	case types.Right:
		a, b, c = rl.Vector2{X: fx + cell, Y: fy + half}, rl.Vector2{X: fx + half, Y: fy}, rl.Vector2{X: fx + half, Y: fy + cell}
	case types.Left:
		a, b, c = rl.Vector2{X: fx, Y: fy + half}, rl.Vector2{X: fx + half, Y: fy + cell}, rl.Vector2{X: fx + half, Y: fy}
	case types.Down:
		a, b, c = rl.Vector2{X: fx + half, Y: fy + cell}, rl.Vector2{X: fx + cell, Y: fy + half}, rl.Vector2{X: fx, Y: fy + half}
	case types.Up:
		a, b, c = rl.Vector2{X: fx + half, Y: fy}, rl.Vector2{X: fx, Y: fy + half}, rl.Vector2{X: fx + cell, Y: fy + half}
	default:
		return
	}
	rl.DrawTriangle(a, b, c, rl.DarkGreen)
}

func (r *Renderer) drawPanel(snap game.Snapshot, st *stats.GameStats) {
	l := r.layout
	fontSize := max(r.screenHeight/30, 10)
	lineHeight := fontSize + fontSize/2
	x := l.PanelX
	y := l.OffsetY

	line := func(text string, color rl.Color) {
		rl.DrawText(text, x, y, fontSize, color)
		y += lineHeight
	}

	line(fmt.Sprintf("Score: %d", snap.Score), rl.White)
	line(fmt.Sprintf("High Score: %d", snap.HighScore), rl.Gold)
	line(fmt.Sprintf("Speed: %dms", snap.Speed.Milliseconds()), rl.LightGray)
	line(fmt.Sprintf("Length: %d", len(snap.Snake)), rl.LightGray)
	y += lineHeight

	if st != nil {
		line(fmt.Sprintf("Games: %d", st.GetGamesPlayed()), rl.White)
		line(fmt.Sprintf("Avg Score: %.1f", st.GetAverageScore()), rl.Green)
		line(fmt.Sprintf("Max Score: %d", st.GetMaxScore()), rl.Green)
		line(fmt.Sprintf("Avg Duration: %.1fs", st.GetAverageDuration().Seconds()), rl.Purple)
		if st.GetGamesPlayed() > 0 {
			r.drawHistory(st, x, y, r.screenWidth-x-borderPadding)
			y += historyHeight
		}
		y += lineHeight
	}

	line("Arrows / swipe: move", rl.Gray)
	line("P: pause  R: restart", rl.Gray)
}

func (r *Renderer) drawOverlay(title, subtitle string) {
	l := r.layout
	rl.DrawRectangle(l.OffsetX, l.OffsetY, l.GridWidth, l.GridHeight, rl.Fade(rl.Black, 0.6))

	titleSize := max(l.GridHeight/10, 12)
	subSize := max(titleSize/2, 10)
	titleW := rl.MeasureText(title, titleSize)
	subW := rl.MeasureText(subtitle, subSize)

	cy := l.OffsetY + l.GridHeight/2
	rl.DrawText(title, l.OffsetX+(l.GridWidth-titleW)/2, cy-titleSize, titleSize, rl.White)
	rl.DrawText(subtitle, l.OffsetX+(l.GridWidth-subW)/2, cy+subSize/2, subSize, rl.LightGray)
}
