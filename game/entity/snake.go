package entity

import (
	"gridsnake/game/types"
)

// Snake keeps its body head first: Body[0] is the head.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
}

func NewSnake(startPos types.Point, dir types.Direction) *Snake {
	return &Snake{
		Body:      []types.Point{startPos},
		Direction: dir,
	}
}

// Grow pushes a new head; the body keeps its tail until RemoveTail.
func (s *Snake) Grow(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

// RemoveTail drops the last segment. A snake never shrinks below one segment.
func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) Head() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Next returns the cell the head would enter moving in dir
func (s *Snake) Next(dir types.Direction) types.Point {
	return s.Head().Add(dir.Delta())
}

func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// HitsBody checks p against every segment except the head
func (s *Snake) HitsBody(p types.Point) bool {
	for _, part := range s.Body[1:] {
		if part == p {
			return true
		}
	}
	return false
}

func (s *Snake) Cells() []types.Point {
	out := make([]types.Point, len(s.Body))
	copy(out, s.Body)
	return out
}
