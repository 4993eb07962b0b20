package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"gridsnake/audio"
	"gridsnake/controller"
	"gridsnake/game/types"
	"gridsnake/input"
)

// frameInterval is how often the loop polls the scheduler and redraws
const frameInterval = 10 * time.Millisecond

// App runs a controller on a tcell screen
type App struct {
	screen   tcell.Screen
	ctrl     *controller.Controller
	renderer *Renderer
	sound    *audio.Player
	logger   log.FieldLogger
}

func NewApp(screen tcell.Screen, ctrl *controller.Controller, sound *audio.Player, logger log.FieldLogger) *App {
	if sound == nil {
		sound = audio.Disabled()
	}
	return &App{
		screen:   screen,
		ctrl:     ctrl,
		renderer: NewRenderer(screen),
		sound:    sound,
		logger:   logger,
	}
}

// Run blocks until the player quits or ctx is cancelled. The caller owns
// screen Init and Fini.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// screen finalised
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	a.ctrl.Start(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			quit, err := a.HandleEvent(ev, time.Now())
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case now := <-ticker.C:
			step, err := a.ctrl.Update(now)
			if err != nil {
				// a full board ends the session like any other death
				a.logger.WithError(err).Warn("session ended by the engine")
			}
			if step.Ticked {
				a.sound.PlayReport(step.Report)
			}
			a.renderer.Draw(a.ctrl.Snapshot(), a.ctrl.Paused(), a.ctrl.Stats())
		}
	}
}

// HandleEvent applies one terminal event. It returns true when the player asked to quit.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev, now)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false, nil
}

func (a *App) handleKey(ev *tcell.EventKey, now time.Time) (bool, error) {
	return a.applyKey(ev.Key(), ev.Rune(), now)
}

func (a *App) applyKey(key tcell.Key, r rune, now time.Time) (bool, error) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		a.ctrl.Direction(types.Up)
	case tcell.KeyDown:
		a.ctrl.Direction(types.Down)
	case tcell.KeyLeft:
		a.ctrl.Direction(types.Left)
	case tcell.KeyRight:
		a.ctrl.Direction(types.Right)
	case tcell.KeyEnter:
		if a.ctrl.Over() {
			return false, a.restart(now)
		}
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return true, nil
		case 'p', 'P', ' ':
			a.ctrl.TogglePause(now)
		case 'r', 'R':
			return false, a.restart(now)
		default:
			if d, ok := input.FromKey(string(r)); ok {
				a.ctrl.Direction(d)
			}
		}
	}
	return false, nil
}

func (a *App) restart(now time.Time) error {
	if err := a.ctrl.Restart(now); err != nil {
		return errors.Wrap(err, "restarting")
	}
	return nil
}
