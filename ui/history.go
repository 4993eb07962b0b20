package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/stats"
)

const (
	historyGames  = 20
	historyHeight = int32(80)
	barGap        = int32(2)
)

// Bar is one game in the history chart, in screen coordinates
type Bar struct {
	X, Y, Width, Height int32
}

// HistoryBars lays out one bar per score inside a width x height box anchored
// at (x, y). The tallest score fills the box; zero scores get a one pixel stub.
func HistoryBars(scores []int, x, y, width, height int32) []Bar {
	if len(scores) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	maxScore := 1
	for _, s := range scores {
		maxScore = max(maxScore, s)
	}

	slot := width / int32(len(scores))
	barWidth := max(slot-barGap, 1)
	bars := make([]Bar, len(scores))
	for i, s := range scores {
		h := max(int32(float32(height)*float32(s)/float32(maxScore)), 1)
		bars[i] = Bar{
			X:      x + int32(i)*slot,
			Y:      y + height - h,
			Width:  barWidth,
			Height: h,
		}
	}
	return bars
}

// drawHistory charts the scores of the most recent finished games
func (r *Renderer) drawHistory(st *stats.GameStats, x, y, width int32) {
	records := st.Recent(historyGames)
	if len(records) == 0 {
		return
	}
	scores := make([]int, len(records))
	for i, rec := range records {
		scores[i] = rec.Score
	}

	rl.DrawRectangle(x, y, width, historyHeight, rl.Fade(rl.DarkGray, 0.5))
	for _, b := range HistoryBars(scores, x, y, width, historyHeight) {
		rl.DrawRectangle(b.X, b.Y, b.Width, b.Height, rl.Color{R: 0, G: 180, B: 0, A: 180})
	}
}
