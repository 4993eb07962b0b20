// Package controller drives a game from a front-end loop: it owns the
// scheduler, buffers input between ticks and turns pause, resume and restart
// commands into scheduler changes.
package controller

import (
	"time"

	log "github.com/sirupsen/logrus"

	"gridsnake/clock"
	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/input"
	"gridsnake/stats"
)

// Step is what one Update call did
type Step struct {
	Ticked    bool
	Report    game.TickReport
	Finished  bool
	Restarted bool
}

// Driver picks a direction from the board just before each tick
type Driver func(game.Snapshot) types.Direction

// Controller serialises input and ticks for one game. It is not safe for
// concurrent use except Direction, which only touches the input queue.
type Controller struct {
	game   *game.Game
	sched  *clock.Scheduler
	queue  *input.Queue
	stats  *stats.GameStats
	logger log.FieldLogger

	paused       bool
	sessionStart time.Time
	finishedAt   time.Time

	driver      Driver
	autoRestart time.Duration
}

func New(g *game.Game, st *stats.GameStats, logger log.FieldLogger) *Controller {
	if st == nil {
		st = stats.NewGameStats()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Controller{
		game:   g,
		sched:  clock.NewScheduler(g.Speed()),
		queue:  input.NewQueue(input.DefaultQueueSize),
		stats:  st,
		logger: logger,
	}
}

// Drive hands steering to d. A positive restartAfter starts a new session
// that long after each game over.
func (c *Controller) Drive(d Driver, restartAfter time.Duration) {
	c.driver = d
	c.autoRestart = restartAfter
}

// Start begins ticking the current session
func (c *Controller) Start(now time.Time) {
	c.sessionStart = now
	c.sched.SetInterval(c.game.Speed(), now)
	if !c.paused && !c.game.IsOver() {
		c.sched.Start(now)
	}
}

// Direction queues a turn for the next tick
func (c *Controller) Direction(d types.Direction) {
	c.queue.Push(d)
}

// Pause stops the scheduler. The game state is left untouched.
func (c *Controller) Pause() {
	if c.paused || c.game.IsOver() {
		return
	}
	c.paused = true
	c.sched.Stop()
	c.logger.WithField("session", c.game.Session()).Debug("paused")
}

func (c *Controller) Resume(now time.Time) {
	if !c.paused || c.game.IsOver() {
		return
	}
	c.paused = false
	c.sched.Start(now)
	c.logger.WithField("session", c.game.Session()).Debug("resumed")
}

func (c *Controller) TogglePause(now time.Time) {
	if c.paused {
		c.Resume(now)
	} else {
		c.Pause()
	}
}

// Restart abandons the current session and starts a new one. A paused
// controller stays paused.
func (c *Controller) Restart(now time.Time) error {
	if err := c.game.Reset(); err != nil {
		c.sched.Stop()
		return err
	}
	c.queue.Clear()
	c.Start(now)
	return nil
}

// Update ticks the game when the scheduler is due
func (c *Controller) Update(now time.Time) (Step, error) {
	if c.game.IsOver() && c.autoRestart > 0 && !c.paused {
		if now.Sub(c.finishedAt) < c.autoRestart {
			return Step{}, nil
		}
		err := c.Restart(now)
		return Step{Restarted: err == nil}, err
	}
	if !c.sched.Due(now) {
		return Step{}, nil
	}

	if c.driver != nil {
		c.queue.Push(c.driver(c.game.Snapshot()))
	}

	c.queue.Drain(func(d types.Direction) {
		if err := c.game.SetDirection(d); err != nil {
			c.logger.WithError(err).Debug("dropping direction")
		}
	})

	report, err := c.game.Tick()
	step := Step{Ticked: true, Report: report}

	if report.SpeedChanged {
		c.sched.SetInterval(report.Speed, now)
	}
	if c.game.IsOver() {
		c.sched.Stop()
		c.stats.AddGame(c.game.Session(), report.Score, c.sessionStart, now)
		c.finishedAt = now
		step.Finished = true
	}
	return step, err
}

func (c *Controller) Paused() bool {
	return c.paused
}

func (c *Controller) Over() bool {
	return c.game.IsOver()
}

// Interval is the period the scheduler is currently armed with
func (c *Controller) Interval() time.Duration {
	return c.sched.Interval()
}

func (c *Controller) Snapshot() game.Snapshot {
	return c.game.Snapshot()
}

func (c *Controller) Stats() *stats.GameStats {
	return c.stats
}
