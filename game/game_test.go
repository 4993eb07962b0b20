package game

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"
	"gridsnake/storage"
)

func newTestGame(t *testing.T, cfg Config, store Store) *Game {
	t.Helper()
	logger, _ := test.NewNullLogger()
	g, err := New(cfg, store, WithLogger(logger))
	require.NoError(t, err)
	return g
}

func seeded(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}

// clearBoard removes obstacles and parks food and power-up far from the snake
func clearBoard(g *Game) {
	g.obstacles = nil
	g.food = types.Point{X: 0, Y: 0}
	g.powerUp = nil
}

func TestNewGameInitialState(t *testing.T) {
	g := newTestGame(t, seeded(3), storage.NewMemoryStore())
	snap := g.Snapshot()

	assert.Equal(t, []types.Point{{X: 10, Y: 10}}, snap.Snake)
	assert.Equal(t, types.Right, snap.Direction)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 150*time.Millisecond, snap.Speed)
	assert.Nil(t, snap.PowerUp)
	assert.False(t, snap.Over)
	assert.NotEmpty(t, snap.Session)
	require.Len(t, snap.Obstacles, types.DefaultObstacles)

	for _, o := range snap.Obstacles {
		assert.NotEqual(t, types.Point{X: 10, Y: 10}, o)
		assert.NotEqual(t, types.Point{X: 11, Y: 10}, o, "cell ahead of the start stays clear")
		assert.NotEqual(t, snap.Food, o)
	}
	assert.NotEqual(t, types.Point{X: 10, Y: 10}, snap.Food)
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 2
	_, err := New(cfg, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cfg = DefaultConfig()
	cfg.PowerUpChance = 1.5
	_, err = New(cfg, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cfg = DefaultConfig()
	cfg.Obstacles = 400
	_, err = New(cfg, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	cfg = DefaultConfig()
	cfg.MinSpeed = 200 * time.Millisecond
	_, err = New(cfg, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestHighScoreReadAtConstruction(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(manager.HighScoreKey, 17))

	g := newTestGame(t, seeded(1), store)
	assert.Equal(t, 17, g.HighScore())
	assert.Equal(t, 17, g.Snapshot().HighScore)
}

func TestEatFoodScenario(t *testing.T) {
	g := newTestGame(t, seeded(5), storage.NewMemoryStore())
	clearBoard(g)
	g.food = types.Point{X: 11, Y: 10}

	report, err := g.Tick()
	require.NoError(t, err)

	assert.True(t, report.Alive)
	assert.Equal(t, AteFood, report.Ate)
	assert.Equal(t, 1, report.ScoreDelta)
	assert.Equal(t, 1, report.Score)
	assert.False(t, report.SpeedChanged)

	snap := g.Snapshot()
	assert.Equal(t, types.Point{X: 11, Y: 10}, snap.Snake[0])
	assert.Len(t, snap.Snake, 2)
	assert.NotEqual(t, types.Point{X: 11, Y: 10}, snap.Food)
	assert.False(t, g.snake.Occupies(snap.Food))
}

func TestEatPowerUp(t *testing.T) {
	g := newTestGame(t, seeded(5), storage.NewMemoryStore())
	clearBoard(g)
	g.powerUp = &types.Point{X: 11, Y: 10}

	report, err := g.Tick()
	require.NoError(t, err)

	assert.Equal(t, AtePowerUp, report.Ate)
	assert.Equal(t, 3, report.ScoreDelta)
	assert.Equal(t, 3, g.Score())
	assert.Nil(t, g.Snapshot().PowerUp)
	assert.Equal(t, 2, g.snake.Len())
}

func TestFoodTakesPriorityOverPowerUp(t *testing.T) {
	g := newTestGame(t, seeded(5), storage.NewMemoryStore())
	clearBoard(g)
	g.food = types.Point{X: 11, Y: 10}
	g.powerUp = &types.Point{X: 11, Y: 10}

	report, err := g.Tick()
	require.NoError(t, err)
	assert.Equal(t, AteFood, report.Ate)
	assert.Equal(t, 1, g.Score())
}

func TestPlainMoveKeepsLength(t *testing.T) {
	g := newTestGame(t, seeded(5), storage.NewMemoryStore())
	clearBoard(g)

	report, err := g.Tick()
	require.NoError(t, err)
	assert.True(t, report.Alive)
	assert.Equal(t, AteNothing, report.Ate)
	assert.Equal(t, 0, report.ScoreDelta)
	assert.Equal(t, []types.Point{{X: 11, Y: 10}}, g.Snapshot().Snake)
}

func TestReverseDirectionRejected(t *testing.T) {
	g := newTestGame(t, seeded(5), storage.NewMemoryStore())
	clearBoard(g)

	require.NoError(t, g.SetDirection(types.Left))
	_, err := g.Tick()
	require.NoError(t, err)

	snap := g.Snapshot()
	assert.Equal(t, types.Right, snap.Direction)
	assert.Equal(t, types.Point{X: 11, Y: 10}, snap.Snake[0])
}

func TestDirectionIsBufferedUntilTick(t *testing.T) {
	g := newTestGame(t, seeded(5), storage.NewMemoryStore())
	clearBoard(g)

	require.NoError(t, g.SetDirection(types.Up))
	assert.Equal(t, types.Right, g.Snapshot().Direction)

	// a reverse of the active direction does not clobber the buffered turn
	require.NoError(t, g.SetDirection(types.Left))

	_, err := g.Tick()
	require.NoError(t, err)
	snap := g.Snapshot()
	assert.Equal(t, types.Up, snap.Direction)
	assert.Equal(t, types.Point{X: 10, Y: 9}, snap.Snake[0])
}

func TestSetDirectionInvalidValue(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)

	assert.True(t, errors.Is(g.SetDirection(types.None), ErrInvalidInput))
	assert.True(t, errors.Is(g.SetDirection(types.Direction(42)), ErrInvalidInput))
}

func TestWallCollisionScenario(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(manager.HighScoreKey, 2))
	g := newTestGame(t, seeded(5), store)
	clearBoard(g)

	g.snake = &entity.Snake{
		Body:      []types.Point{{X: 19, Y: 5}, {X: 18, Y: 5}, {X: 17, Y: 5}},
		Direction: types.Right,
	}
	g.score = 4

	report, err := g.Tick()
	require.NoError(t, err)

	assert.False(t, report.Alive)
	assert.Equal(t, manager.WallCollision, report.Collision)
	assert.True(t, report.NewHighScore)
	assert.True(t, g.IsOver())

	v, err := store.Load(manager.HighScoreKey)
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 4, g.HighScore())
}

func TestGameOverBelowHighScoreDoesNotWrite(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(manager.HighScoreKey, 10))
	g := newTestGame(t, seeded(5), store)
	clearBoard(g)

	g.snake = &entity.Snake{Body: []types.Point{{X: 19, Y: 5}}, Direction: types.Right}
	g.score = 3

	report, err := g.Tick()
	require.NoError(t, err)
	assert.False(t, report.Alive)
	assert.False(t, report.NewHighScore)
	assert.Equal(t, 1, store.Saves(), "only the setup save")
}

func TestPersistenceFailureDoesNotFailTick(t *testing.T) {
	store := storage.NewMemoryStore()
	store.SaveErr = errors.New("store unavailable")
	g := newTestGame(t, seeded(5), store)
	clearBoard(g)

	g.snake = &entity.Snake{Body: []types.Point{{X: 19, Y: 5}}, Direction: types.Right}
	g.score = 6

	report, err := g.Tick()
	require.NoError(t, err)
	assert.False(t, report.Alive)
	assert.Equal(t, 6, g.HighScore())
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	clearBoard(g)

	// head at (5,5) turning left into its own body at (4,5)
	g.snake = &entity.Snake{
		Body:      []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}, {X: 4, Y: 4}},
		Direction: types.Up,
	}
	require.NoError(t, g.SetDirection(types.Left))

	report, err := g.Tick()
	require.NoError(t, err)
	assert.False(t, report.Alive)
	assert.Equal(t, manager.SelfCollision, report.Collision)
}

func TestMovingIntoVacatedTailIsSafe(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	clearBoard(g)

	g.snake = &entity.Snake{
		Body:      []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 4, Y: 6}, {X: 4, Y: 5}},
		Direction: types.Up,
	}
	require.NoError(t, g.SetDirection(types.Left))

	report, err := g.Tick()
	require.NoError(t, err)
	assert.True(t, report.Alive)
	assert.Equal(t, types.Point{X: 4, Y: 5}, g.snake.Head())
}

func TestObstacleCollision(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	clearBoard(g)
	g.obstacles = []types.Point{{X: 11, Y: 10}}

	report, err := g.Tick()
	require.NoError(t, err)
	assert.False(t, report.Alive)
	assert.Equal(t, manager.ObstacleCollision, report.Collision)
}

func TestOperationsAfterGameOver(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	clearBoard(g)
	g.snake = &entity.Snake{Body: []types.Point{{X: 19, Y: 5}}, Direction: types.Right}

	_, err := g.Tick()
	require.NoError(t, err)
	require.True(t, g.IsOver())

	before := g.Snapshot()
	_, err = g.Tick()
	assert.True(t, errors.Is(err, ErrAlreadyOver))
	assert.True(t, errors.Is(g.SetDirection(types.Up), ErrAlreadyOver))
	assert.Equal(t, before, g.Snapshot())

	require.NoError(t, g.Reset())
	assert.False(t, g.IsOver())
	assert.Equal(t, 0, g.Score())
	assert.NotEqual(t, before.Session, g.Session())
}

func TestSpeedUpEveryFivePoints(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	clearBoard(g)
	g.score = 4
	g.food = types.Point{X: 11, Y: 10}

	report, err := g.Tick()
	require.NoError(t, err)
	assert.True(t, report.SpeedChanged)
	assert.Equal(t, 140*time.Millisecond, report.Speed)
	assert.Equal(t, 140*time.Millisecond, g.Speed())

	g.score = 9
	g.food = types.Point{X: 12, Y: 10}
	report, err = g.Tick()
	require.NoError(t, err)
	assert.True(t, report.SpeedChanged)
	assert.Equal(t, 130*time.Millisecond, g.Speed())
}

func TestPowerUpSpawnsOnFood(t *testing.T) {
	cfg := seeded(5)
	cfg.PowerUpChance = 1
	g := newTestGame(t, cfg, nil)
	clearBoard(g)
	g.food = types.Point{X: 11, Y: 10}

	report, err := g.Tick()
	require.NoError(t, err)
	require.True(t, report.PowerUpSpawned)

	snap := g.Snapshot()
	require.NotNil(t, snap.PowerUp)
	assert.NotEqual(t, snap.Food, *snap.PowerUp)
	assert.False(t, g.snake.Occupies(*snap.PowerUp))

	// a second food does not replace the existing power-up
	first := *snap.PowerUp
	g.food = g.snake.Next(types.Right)
	if g.food == first {
		t.Skip("power-up landed directly ahead")
	}
	report, err = g.Tick()
	require.NoError(t, err)
	assert.False(t, report.PowerUpSpawned)
	assert.Equal(t, first, *g.Snapshot().PowerUp)
}

func TestPowerUpNeverSpawnsWithZeroChance(t *testing.T) {
	cfg := seeded(5)
	cfg.PowerUpChance = 0
	g := newTestGame(t, cfg, nil)
	clearBoard(g)

	for x := 11; x < 19; x++ {
		g.food = types.Point{X: x, Y: 10}
		report, err := g.Tick()
		require.NoError(t, err)
		assert.False(t, report.PowerUpSpawned)
	}
	assert.Nil(t, g.Snapshot().PowerUp)
}

func TestPowerUpPersistsWithoutLifetime(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	clearBoard(g)
	g.powerUp = &types.Point{X: 0, Y: 19}

	for i := 0; i < 5; i++ {
		report, err := g.Tick()
		require.NoError(t, err)
		assert.False(t, report.PowerUpExpired)
	}
	assert.NotNil(t, g.Snapshot().PowerUp)
}

func TestPowerUpExpires(t *testing.T) {
	cfg := seeded(5)
	cfg.PowerUpLifetime = 2
	g := newTestGame(t, cfg, nil)
	clearBoard(g)
	g.powerUp = &types.Point{X: 0, Y: 19}
	g.powerUpTTL = 2

	report, err := g.Tick()
	require.NoError(t, err)
	assert.False(t, report.PowerUpExpired)
	assert.NotNil(t, g.Snapshot().PowerUp)

	report, err = g.Tick()
	require.NoError(t, err)
	assert.True(t, report.PowerUpExpired)
	assert.Nil(t, g.Snapshot().PowerUp)
}

func TestGridFullEndsSession(t *testing.T) {
	cfg := seeded(5)
	cfg.GridSize = 3
	cfg.Obstacles = 0
	g := newTestGame(t, cfg, nil)

	g.snake = &entity.Snake{
		Body: []types.Point{
			{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1},
			{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
		},
		Direction: types.Left,
	}
	g.food = types.Point{X: 0, Y: 0}
	g.powerUp = nil

	report, err := g.Tick()
	assert.True(t, errors.Is(err, ErrNoSpaceAvailable))
	assert.False(t, report.Alive)
	assert.Equal(t, 1, report.Score)
	assert.True(t, g.IsOver())
}

func TestResetIsIdempotentWithSeed(t *testing.T) {
	g := newTestGame(t, seeded(99), nil)
	clearBoard(g)
	_, err := g.Tick()
	require.NoError(t, err)

	require.NoError(t, g.Reset())
	first := g.Snapshot()
	require.NoError(t, g.Reset())
	second := g.Snapshot()

	assert.NotEqual(t, first.Session, second.Session)
	first.Session, second.Session = "", ""
	assert.Equal(t, first, second)
}

func TestResetKeepsHighScore(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	clearBoard(g)
	g.snake = &entity.Snake{Body: []types.Point{{X: 19, Y: 5}}, Direction: types.Right}
	g.score = 8
	_, err := g.Tick()
	require.NoError(t, err)

	require.NoError(t, g.Reset())
	assert.Equal(t, 8, g.HighScore())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, types.BaseSpeed, g.Speed())
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(t, seeded(5), nil)
	g.powerUp = &types.Point{X: 1, Y: 1}

	snap := g.Snapshot()
	snap.Snake[0] = types.Point{X: 0, Y: 0}
	snap.Obstacles[0] = types.Point{X: 0, Y: 0}
	snap.PowerUp.X = 7

	fresh := g.Snapshot()
	assert.Equal(t, types.Point{X: 10, Y: 10}, fresh.Snake[0])
	assert.Equal(t, 1, fresh.PowerUp.X)
}

// Random play: checks the invariants that must hold in every settled state.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	cfg := seeded(2024)
	cfg.PowerUpChance = 0.5
	g := newTestGame(t, cfg, nil)
	rng := rand.New(rand.NewSource(7))
	dirs := []types.Direction{types.Up, types.Right, types.Down, types.Left}

	for round := 0; round < 20; round++ {
		require.NoError(t, g.Reset())
		grown := 0
		lastScore := 0

		for step := 0; step < 500 && !g.IsOver(); step++ {
			// steer towards the food most of the time to get some growth
			if rng.Float64() < 0.3 {
				require.NoError(t, g.SetDirection(dirs[rng.Intn(len(dirs))]))
			} else {
				require.NoError(t, g.SetDirection(towards(g.snake.Head(), g.food)))
			}

			report, err := g.Tick()
			require.NoError(t, err)
			if report.Ate != AteNothing {
				grown++
			}

			snap := g.Snapshot()
			assert.GreaterOrEqual(t, snap.Score, lastScore, "score never decreases")
			lastScore = snap.Score

			if !report.Alive {
				break
			}

			assert.Equal(t, 1+grown, len(snap.Snake))
			assertSettled(t, snap)
		}
	}
}

func assertSettled(t *testing.T, snap Snapshot) {
	t.Helper()
	seen := map[types.Point]string{}
	mark := func(p types.Point, what string) {
		if prev, ok := seen[p]; ok {
			t.Fatalf("%s overlaps %s at %v", what, prev, p)
		}
		seen[p] = what
	}
	for _, p := range snap.Snake {
		mark(p, "snake")
	}
	for _, p := range snap.Obstacles {
		mark(p, "obstacle")
	}
	mark(snap.Food, "food")
	if snap.PowerUp != nil {
		mark(*snap.PowerUp, "power-up")
	}
}

func towards(from, to types.Point) types.Direction {
	switch {
	case to.X > from.X:
		return types.Right
	case to.X < from.X:
		return types.Left
	case to.Y > from.Y:
		return types.Down
	default:
		return types.Up
	}
}
