package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"
)

var (
	ErrInvalidInput     = types.ErrInvalidInput
	ErrAlreadyOver      = types.ErrAlreadyOver
	ErrNoSpaceAvailable = types.ErrNoSpaceAvailable
)

// Store persists the high score between sessions
type Store = manager.Store

// Outcome is what the head consumed on a tick
type Outcome int

const (
	AteNothing Outcome = iota
	AteFood
	AtePowerUp
)

// TickReport describes the result of a single Tick
type TickReport struct {
	Alive        bool
	ScoreDelta   int
	Score        int
	SpeedChanged bool
	Speed        time.Duration
	Ate          Outcome
	Collision    manager.CollisionType
	NewHighScore bool
	// PowerUpSpawned and PowerUpExpired describe power-up changes not caused by eating it
	PowerUpSpawned bool
	PowerUpExpired bool
}

// Snapshot is a read-only copy of everything a renderer needs
type Snapshot struct {
	Session   string
	Grid      types.Grid
	Snake     []types.Point
	Direction types.Direction
	Food      types.Point
	PowerUp   *types.Point
	Obstacles []types.Point
	Score     int
	HighScore int
	Speed     time.Duration
	Over      bool
}

type Option func(*Game)

func WithLogger(logger log.FieldLogger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// Game is the whole simulation state. It owns no timer; a driver calls Tick
// at Speed() intervals and serialises Tick and SetDirection calls.
type Game struct {
	cfg  Config
	grid types.Grid

	snake      *entity.Snake
	pending    types.Direction
	food       types.Point
	powerUp    *types.Point
	powerUpTTL int
	obstacles  []types.Point
	score      int
	over       bool
	session    string

	collisions *manager.CollisionManager
	spawner    *manager.SpawnManager
	speed      *manager.SpeedManager
	state      *manager.StateManager
	logger     log.FieldLogger
}

// New validates cfg, reads the high score from store once and starts a fresh session.
// store may be nil, in which case the high score lives only in memory.
func New(cfg Config, store Store, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := types.NewGrid(cfg.GridSize)
	g := &Game{
		cfg:        cfg,
		grid:       grid,
		collisions: manager.NewCollisionManager(grid),
		spawner:    manager.NewSpawnManager(grid, cfg.Seed),
		speed:      manager.NewSpeedManager(cfg.BaseSpeed, cfg.SpeedStep, cfg.MinSpeed, cfg.SpeedUpEvery),
		logger:     log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.state = manager.NewStateManager(store, g.logger)

	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset starts a new session. The high score is kept.
func (g *Game) Reset() error {
	if g.cfg.Seed != 0 {
		g.spawner.Reseed(g.cfg.Seed)
	}

	start := g.grid.Centre()
	snake := entity.NewSnake(start, types.Right)

	obstacles, err := g.spawner.Obstacles(g.cfg.Obstacles, start, snake.Next(types.Right))
	if err != nil {
		g.over = true
		return errors.Wrap(err, "reset")
	}
	food, err := g.spawner.Food(snake, obstacles, nil)
	if err != nil {
		g.over = true
		return errors.Wrap(err, "reset")
	}

	g.snake = snake
	g.pending = types.None
	g.obstacles = obstacles
	g.food = food
	g.powerUp = nil
	g.powerUpTTL = 0
	g.score = 0
	g.speed.Reset()
	g.over = false
	g.session = uuid.NewString()

	g.logger.WithFields(log.Fields{
		"session":   g.session,
		"obstacles": len(obstacles),
	}).Info("session started")
	return nil
}

// SetDirection buffers a turn for the next tick. Reversing onto the neck is
// silently ignored.
func (g *Game) SetDirection(dir types.Direction) error {
	if !dir.Valid() {
		return errors.Wrapf(ErrInvalidInput, "direction %d", int(dir))
	}
	if g.over {
		return errors.Wrap(ErrAlreadyOver, "set direction")
	}
	if dir == g.snake.Direction.Opposite() {
		return nil
	}
	g.pending = dir
	return nil
}

// Tick advances the snake by one cell.
func (g *Game) Tick() (TickReport, error) {
	if g.over {
		return TickReport{Score: g.score, Speed: g.speed.Interval()}, errors.Wrap(ErrAlreadyOver, "tick")
	}

	if g.pending.Valid() && g.pending != g.snake.Direction.Opposite() {
		g.snake.Direction = g.pending
	}
	g.pending = types.None

	head := g.snake.Next(g.snake.Direction)
	report := TickReport{Alive: true}

	switch {
	case head == g.food:
		report.Ate = AteFood
		report.ScoreDelta = types.FoodScore
	case g.powerUp != nil && head == *g.powerUp:
		report.Ate = AtePowerUp
		report.ScoreDelta = types.PowerUpScore
		g.powerUp = nil
		g.powerUpTTL = 0
	}
	g.score += report.ScoreDelta

	g.snake.Grow(head)
	if report.Ate == AteNothing {
		g.snake.RemoveTail()
	}

	if g.powerUp != nil && g.cfg.PowerUpLifetime > 0 {
		g.powerUpTTL--
		if g.powerUpTTL <= 0 {
			g.powerUp = nil
			report.PowerUpExpired = true
		}
	}

	if report.Ate == AteFood {
		food, err := g.spawner.Food(g.snake, g.obstacles, g.powerUp)
		if err != nil {
			// the snake filled every free cell
			g.finish(&report, manager.NoCollision)
			return report, errors.Wrap(err, "respawning food")
		}
		g.food = food
		report.SpeedChanged = g.speed.OnScore(g.score)
		if g.powerUp == nil && g.spawner.Chance(g.cfg.PowerUpChance) {
			g.spawnPowerUp(&report)
		}
	}

	if collision := g.collisions.Check(head, g.snake, g.obstacles); collision != manager.NoCollision {
		g.finish(&report, collision)
	}

	report.Score = g.score
	report.Speed = g.speed.Interval()
	return report, nil
}

func (g *Game) spawnPowerUp(report *TickReport) {
	p, err := g.spawner.PowerUp(g.snake, g.obstacles, g.food)
	if err != nil {
		g.logger.WithError(err).Debug("skipping power-up")
		return
	}
	g.powerUp = &p
	g.powerUpTTL = g.cfg.PowerUpLifetime
	report.PowerUpSpawned = true
}

func (g *Game) finish(report *TickReport, collision manager.CollisionType) {
	g.over = true
	report.Alive = false
	report.Collision = collision
	report.Score = g.score
	report.Speed = g.speed.Interval()
	report.NewHighScore = g.state.Finalize(g.score)

	g.logger.WithFields(log.Fields{
		"session":   g.session,
		"score":     g.score,
		"length":    g.snake.Len(),
		"collision": collision.String(),
		"highScore": report.NewHighScore,
	}).Info("game over")
}

func (g *Game) IsOver() bool {
	return g.over
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) HighScore() int {
	return g.state.GetHighScore()
}

// Speed is the current tick interval
func (g *Game) Speed() time.Duration {
	return g.speed.Interval()
}

func (g *Game) Session() string {
	return g.session
}

func (g *Game) Grid() types.Grid {
	return g.grid
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Session:   g.session,
		Grid:      g.grid,
		Snake:     g.snake.Cells(),
		Direction: g.snake.Direction,
		Food:      g.food,
		Obstacles: make([]types.Point, len(g.obstacles)),
		Score:     g.score,
		HighScore: g.state.GetHighScore(),
		Speed:     g.speed.Interval(),
		Over:      g.over,
	}
	copy(snap.Obstacles, g.obstacles)
	if g.powerUp != nil {
		p := *g.powerUp
		snap.PowerUp = &p
	}
	return snap
}
