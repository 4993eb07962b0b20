package game

import (
	"time"

	"github.com/pkg/errors"

	"gridsnake/game/types"
)

// Config holds the per-game tunables. Zero values are not defaults; use DefaultConfig.
type Config struct {
	GridSize     int
	Obstacles    int
	BaseSpeed    time.Duration
	SpeedStep    time.Duration
	MinSpeed     time.Duration
	SpeedUpEvery int

	PowerUpChance float64
	// PowerUpLifetime is the number of ticks an uneaten power-up stays on the grid. 0 never expires.
	PowerUpLifetime int

	// Seed fixes the RNG. Every Reset reseeds, so a seeded game replays the same layout.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		GridSize:      types.DefaultGridSize,
		Obstacles:     types.DefaultObstacles,
		BaseSpeed:     types.BaseSpeed,
		SpeedStep:     types.SpeedStep,
		MinSpeed:      types.MinSpeed,
		SpeedUpEvery:  types.SpeedUpEvery,
		PowerUpChance: types.PowerUpChance,
	}
}

func (c Config) Validate() error {
	switch {
	case c.GridSize < 3:
		return errors.Wrapf(ErrInvalidInput, "grid size %d too small", c.GridSize)
	case c.Obstacles < 0:
		return errors.Wrapf(ErrInvalidInput, "negative obstacle count %d", c.Obstacles)
	// start cell, the cell ahead of it and the food need room
	case c.Obstacles > c.GridSize*c.GridSize-3:
		return errors.Wrapf(ErrInvalidInput, "%d obstacles do not fit a %dx%d grid", c.Obstacles, c.GridSize, c.GridSize)
	case c.MinSpeed <= 0 || c.BaseSpeed < c.MinSpeed:
		return errors.Wrapf(ErrInvalidInput, "base speed %s must be at least min speed %s", c.BaseSpeed, c.MinSpeed)
	case c.SpeedStep < 0:
		return errors.Wrapf(ErrInvalidInput, "negative speed step %s", c.SpeedStep)
	case c.SpeedUpEvery < 0:
		return errors.Wrapf(ErrInvalidInput, "negative speed-up threshold %d", c.SpeedUpEvery)
	case c.PowerUpChance < 0 || c.PowerUpChance > 1:
		return errors.Wrapf(ErrInvalidInput, "power-up chance %v out of [0,1]", c.PowerUpChance)
	case c.PowerUpLifetime < 0:
		return errors.Wrapf(ErrInvalidInput, "negative power-up lifetime %d", c.PowerUpLifetime)
	}
	return nil
}
