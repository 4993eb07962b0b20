package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"gridsnake/audio"
	"gridsnake/autopilot"
	"gridsnake/controller"
	"gridsnake/game"
	"gridsnake/stats"
	"gridsnake/storage"
	"gridsnake/terminal"
	"gridsnake/ui"
)

const demoRestartDelay = 2 * time.Second

type options struct {
	cfg      game.Config
	dataDir  string
	term     bool
	sound    bool
	demo     bool
	logLevel string
	logFile  string
}

func parseFlags() options {
	defaults := game.DefaultConfig()
	var o options

	size := flag.Int("size", defaults.GridSize, "Grid size in cells (square)")
	obstacles := flag.Int("obstacles", defaults.Obstacles, "Obstacles placed per game")
	speed := flag.Int("speed", int(defaults.BaseSpeed.Milliseconds()), "Starting tick interval in milliseconds (lower = faster)")
	seed := flag.Uint64("seed", 0, "Random seed, 0 picks one from the clock")
	powerUpTTL := flag.Int("powerup-ttl", 0, "Ticks before an uneaten power-up vanishes, 0 never")
	flag.StringVar(&o.dataDir, "data", "data", "Directory holding the high score file")
	flag.BoolVar(&o.term, "term", false, "Play in the terminal instead of a window")
	flag.BoolVar(&o.sound, "sound", true, "Play sound effects")
	flag.BoolVar(&o.demo, "demo", false, "Let the autopilot play, restarting after each game over")
	flag.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&o.logFile, "log-file", "", "Log file, defaults to stderr (or <data>/snake.log with -term)")
	flag.Parse()

	o.cfg = defaults
	o.cfg.GridSize = *size
	o.cfg.Obstacles = *obstacles
	o.cfg.BaseSpeed = time.Duration(*speed) * time.Millisecond
	o.cfg.Seed = *seed
	o.cfg.PowerUpLifetime = *powerUpTTL
	if o.cfg.MinSpeed > o.cfg.BaseSpeed {
		o.cfg.MinSpeed = o.cfg.BaseSpeed
	}
	return o
}

// setupLogging returns a close func for the log file, if one was opened
func setupLogging(o options) (func(), error) {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return nil, errors.Wrap(err, "parsing log level")
	}
	log.SetLevel(level)

	path := o.logFile
	if path == "" && o.term {
		// stderr would scribble over the terminal UI
		path = filepath.Join(o.dataDir, "snake.log")
	}
	if path == "" {
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file %s", path)
	}
	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	return func() { f.Close() }, nil
}

func main() {
	o := parseFlags()

	closeLog, err := setupLogging(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(o); err != nil {
		log.WithError(err).Error("exiting")
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

func run(o options) error {
	store := storage.NewFileStore(filepath.Join(o.dataDir, "gamestats.json"))
	g, err := game.New(o.cfg, store)
	if err != nil {
		return errors.Wrap(err, "creating game")
	}
	ctrl := controller.New(g, stats.NewGameStats(), log.StandardLogger())
	if o.demo {
		ctrl.Drive(autopilot.Steer, demoRestartDelay)
	}

	sound := audio.Disabled()
	if o.sound {
		if sound, err = audio.NewPlayer(); err != nil {
			// Non-fatal, game can run without sound
			log.WithError(err).Warn("audio disabled")
		}
	}
	defer sound.Close()

	if o.term {
		return runTerminal(ctrl, sound)
	}
	return runWindow(ctrl, sound)
}

func runTerminal(ctrl *controller.Controller, sound *audio.Player) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "creating terminal screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "initialising terminal screen")
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = terminal.NewApp(screen, ctrl, sound, log.StandardLogger()).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runWindow(ctrl *controller.Controller, sound *audio.Player) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(800, 600, "Snake")
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer()
	in := ui.NewInput()
	ctrl.Start(time.Now())

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		now := time.Now()
		if err := in.Poll(ctrl, now); err != nil {
			return errors.Wrap(err, "restarting")
		}

		// Update game state when the scheduler says so
		step, err := ctrl.Update(now)
		if err != nil {
			log.WithError(err).Warn("session ended by the engine")
		}
		if step.Ticked {
			sound.PlayReport(step.Report)
		}

		renderer.Draw(ctrl.Snapshot(), ctrl.Paused(), ctrl.Stats())
	}
	return nil
}
