package types

import "time"

// Point is a grid cell address, not a pixel position
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

func NewGrid(size int) Grid {
	return Grid{Width: size, Height: size}
}

// Contains reports whether p lies inside the grid bounds
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Centre returns the starting cell for a fresh snake
func (g Grid) Centre() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Game constants
const (
	DefaultGridSize  = 20
	DefaultObstacles = 5

	BaseSpeed    = 150 * time.Millisecond
	SpeedStep    = 10 * time.Millisecond
	MinSpeed     = 50 * time.Millisecond
	SpeedUpEvery = 5 // Points between speed-ups

	FoodScore     = 1
	PowerUpScore  = 3
	PowerUpChance = 0.3

	MaxPlacementTries = 1000 // Rejection sampling cap before a full scan
)
