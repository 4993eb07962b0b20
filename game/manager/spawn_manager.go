package manager

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// SpawnManager picks random empty cells for food, power-ups and obstacles.
type SpawnManager struct {
	grid     types.Grid
	rng      *rand.Rand
	maxTries int
}

// NewSpawnManager seeds from the clock when seed is 0
func NewSpawnManager(grid types.Grid, seed uint64) *SpawnManager {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SpawnManager{
		grid:     grid,
		rng:      rand.New(rand.NewSource(seed)),
		maxTries: types.MaxPlacementTries,
	}
}

func (sm *SpawnManager) Reseed(seed uint64) {
	sm.rng.Seed(seed)
}

// Chance returns true with probability p
func (sm *SpawnManager) Chance(p float64) bool {
	return sm.rng.Float64() < p
}

// Place draws uniformly until a cell is not blocked. After maxTries draws it
// falls back to scanning the free cells, so exhaustion only happens on a full grid.
func (sm *SpawnManager) Place(blocked func(types.Point) bool) (types.Point, error) {
	for i := 0; i < sm.maxTries; i++ {
		p := types.Point{
			X: sm.rng.Intn(sm.grid.Width),
			Y: sm.rng.Intn(sm.grid.Height),
		}
		if !blocked(p) {
			return p, nil
		}
	}

	free := make([]types.Point, 0)
	for y := 0; y < sm.grid.Height; y++ {
		for x := 0; x < sm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if !blocked(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, errors.Wrapf(types.ErrNoSpaceAvailable, "%dx%d grid is full", sm.grid.Width, sm.grid.Height)
	}
	return free[sm.rng.Intn(len(free))], nil
}

// Food places food off the snake, obstacles and the optional power-up
func (sm *SpawnManager) Food(snake *entity.Snake, obstacles []types.Point, powerUp *types.Point) (types.Point, error) {
	return sm.Place(func(p types.Point) bool {
		return snake.Occupies(p) || contains(obstacles, p) || (powerUp != nil && *powerUp == p)
	})
}

func (sm *SpawnManager) PowerUp(snake *entity.Snake, obstacles []types.Point, food types.Point) (types.Point, error) {
	return sm.Place(func(p types.Point) bool {
		return snake.Occupies(p) || contains(obstacles, p) || p == food
	})
}

// Obstacles samples count distinct cells, none of them in excluded
func (sm *SpawnManager) Obstacles(count int, excluded ...types.Point) ([]types.Point, error) {
	obs := make([]types.Point, 0, count)
	for len(obs) < count {
		p, err := sm.Place(func(p types.Point) bool {
			return contains(excluded, p) || contains(obs, p)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "placing obstacle %d of %d", len(obs)+1, count)
		}
		obs = append(obs, p)
	}
	return obs, nil
}

func contains(points []types.Point, p types.Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
