package ui

import (
	"gridsnake/game/types"
)

const borderPadding = 10 // Padding around game area

// Layout places the grid and the stats panel inside the window
type Layout struct {
	CellSize   int32
	OffsetX    int32
	OffsetY    int32
	GridWidth  int32
	GridHeight int32
	PanelX     int32
	PanelWidth int32
}

// ComputeLayout keeps cells square and as large as the window allows,
// leaving a quarter of the width for the stats panel
func ComputeLayout(screenWidth, screenHeight int32, grid types.Grid) Layout {
	panel := screenWidth / 4
	availableWidth := screenWidth - panel - borderPadding*2
	availableHeight := screenHeight - borderPadding*2

	cellW := availableWidth / int32(grid.Width)
	cellH := availableHeight / int32(grid.Height)
	cell := min(cellW, cellH)
	if cell < 1 {
		cell = 1
	}

	l := Layout{
		CellSize:   cell,
		GridWidth:  cell * int32(grid.Width),
		GridHeight: cell * int32(grid.Height),
	}
	l.OffsetX = borderPadding + (availableWidth-l.GridWidth)/2
	l.OffsetY = (screenHeight - l.GridHeight) / 2
	if l.OffsetX < borderPadding {
		l.OffsetX = borderPadding
	}
	if l.OffsetY < borderPadding {
		l.OffsetY = borderPadding
	}
	l.PanelX = l.OffsetX + l.GridWidth + borderPadding
	l.PanelWidth = screenWidth - l.PanelX - borderPadding
	return l
}

// CellAt maps a grid cell to the top-left pixel of its square
func (l Layout) CellAt(p types.Point) (int32, int32) {
	return l.OffsetX + int32(p.X)*l.CellSize, l.OffsetY + int32(p.Y)*l.CellSize
}
