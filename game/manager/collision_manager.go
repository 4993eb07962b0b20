package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
	ObstacleCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case ObstacleCollision:
		return "obstacle"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// Check tests the post-move head against walls, the rest of the body and obstacles, in that order
func (cm *CollisionManager) Check(head types.Point, snake *entity.Snake, obstacles []types.Point) CollisionType {
	if cm.isWallCollision(head) {
		return WallCollision
	}

	if snake.HitsBody(head) {
		return SelfCollision
	}

	if cm.isObstacleCollision(head, obstacles) {
		return ObstacleCollision
	}

	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

func (cm *CollisionManager) isObstacleCollision(pos types.Point, obstacles []types.Point) bool {
	for _, o := range obstacles {
		if pos == o {
			return true
		}
	}
	return false
}
