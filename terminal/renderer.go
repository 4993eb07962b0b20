package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/stats"
)

// Each grid cell is two terminal columns wide so the board looks square.
const cellWidth = 2

var (
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead     = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleBody     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFood     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePowerUp  = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBanner   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

const (
	glyphSnake    = '█'
	glyphFood     = '●'
	glyphPowerUp  = '★'
	glyphObstacle = '▒'
)

// Renderer draws game snapshots onto a tcell screen
type Renderer struct {
	screen  tcell.Screen
	originX int
	originY int
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, originX: 0, originY: 1}
}

// CellOrigin is the screen column and row of the left half of grid cell p
func (r *Renderer) CellOrigin(p types.Point) (int, int) {
	return r.originX + 1 + p.X*cellWidth, r.originY + 1 + p.Y
}

// Fits reports whether the whole board and its status lines fit on screen
func (r *Renderer) Fits(grid types.Grid) bool {
	w, h := r.screen.Size()
	return w >= r.originX+grid.Width*cellWidth+2 && h >= r.originY+grid.Height+3
}

func (r *Renderer) Draw(snap game.Snapshot, paused bool, st *stats.GameStats) {
	r.screen.Clear()

	if !r.Fits(snap.Grid) {
		r.drawText(0, 0, "terminal too small, resize or press q", styleText)
		r.screen.Show()
		return
	}

	r.drawText(r.originX, 0, fmt.Sprintf("Score: %d  High: %d  Speed: %dms",
		snap.Score, snap.HighScore, snap.Speed.Milliseconds()), styleText)
	r.drawBorder(snap.Grid)

	for _, o := range snap.Obstacles {
		r.drawCell(o, glyphObstacle, styleObstacle)
	}
	if snap.PowerUp != nil {
		r.drawCell(*snap.PowerUp, glyphPowerUp, stylePowerUp)
	}
	r.drawCell(snap.Food, glyphFood, styleFood)
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		style := styleBody
		if i == 0 {
			style = styleHead
		}
		r.drawCell(snap.Snake[i], glyphSnake, style)
	}

	footerY := r.originY + snap.Grid.Height + 2
	if st != nil && st.GetGamesPlayed() > 0 {
		r.drawText(r.originX, footerY, fmt.Sprintf("Games: %d  Avg: %.1f  Best: %d",
			st.GetGamesPlayed(), st.GetAverageScore(), st.GetMaxScore()), styleDim)
		footerY++
	}
	r.drawText(r.originX, footerY, "arrows/wasd move  p pause  r restart  q quit", styleDim)

	switch {
	case snap.Over:
		r.drawBanner(snap.Grid, fmt.Sprintf(" GAME OVER  score %d  enter to retry ", snap.Score))
	case paused:
		r.drawBanner(snap.Grid, " PAUSED ")
	}

	r.screen.Show()
}

func (r *Renderer) drawCell(p types.Point, glyph rune, style tcell.Style) {
	x, y := r.CellOrigin(p)
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(x+i, y, glyph, nil, style)
	}
}

func (r *Renderer) drawBorder(grid types.Grid) {
	left := r.originX
	right := r.originX + 1 + grid.Width*cellWidth
	top := r.originY
	bottom := r.originY + 1 + grid.Height

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, '─', nil, styleBorder)
		r.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, styleBorder)
		r.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	r.screen.SetContent(left, top, '┌', nil, styleBorder)
	r.screen.SetContent(right, top, '┐', nil, styleBorder)
	r.screen.SetContent(left, bottom, '└', nil, styleBorder)
	r.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

func (r *Renderer) drawBanner(grid types.Grid, text string) {
	width := 1 + grid.Width*cellWidth
	x := r.originX + (width-len([]rune(text)))/2
	if x < r.originX {
		x = r.originX
	}
	y := r.originY + 1 + grid.Height/2
	r.drawText(x, y, text, styleBanner)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
